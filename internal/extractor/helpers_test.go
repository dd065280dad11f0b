package extractor

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func parsePage(t *testing.T, rawURL, html string) Page {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return NewPage(u, doc.Selection)
}

func newTestClassifier() (*Classifier, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(log.New(&buf)), &buf
}
