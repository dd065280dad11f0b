package app

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	urlqueue "portfolio_spider/internal/url_queue"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", normalizeText("  a\n\tb   c \n"))
	assert.Equal(t, "", normalizeText(" \n "))
}

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	pageURL, err := url.Parse("https://vc.example/company/orbital?ref=grid#team")
	require.NoError(t, err)
	now := time.Unix(1700000000, 0)

	doc, err := buildDocument([]byte(articlePage), pageURL, now)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, pageURL.String(), doc.URL)
	assert.Equal(t, urlqueue.NormalizeURL(pageURL.String()), doc.NormalizedURL)
	assert.Contains(t, doc.Title, "Orbital Freight")
	assert.Contains(t, doc.Content, "launch providers across three continents")
	assert.NotContains(t, doc.Content, "<p>")
	assert.Equal(t, urlqueue.ComputeContentHash(doc.Content), doc.ContentHash)
	assert.Equal(t, len(doc.Content), doc.ContentLength)
	assert.Equal(t, now.Unix(), doc.FirstScraped)
	assert.Equal(t, now.Unix(), doc.LastScraped)
	assert.Equal(t, 1, doc.ScrapedCount)
}
