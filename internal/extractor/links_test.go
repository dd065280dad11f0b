package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio_spider/internal/models"
)

func TestDiscoverLinks(t *testing.T) {
	t.Parallel()

	const html = `<html><body>
		<a href="https://b.com/portfolio">Other firm</a>
		<a href="https://a.com/portfolio/x">X</a>
		<a href="/companies/y">Y</a>
		<a href="/portfolio/x#founders">X again</a>
		<a href="mailto:hello@a.com">Mail</a>
		<a href="/about">About</a>
		<a href="/team/jane">Jane</a>
	</body></html>`

	c, _ := newTestClassifier()
	p := parsePage(t, "https://a.com/", html)

	t.Run("internal only", func(t *testing.T) {
		t.Parallel()
		links := c.DiscoverLinks(p, models.CrawlContext{StartHost: "a.com", FollowInternalOnly: true})
		assert.Equal(t, []models.LinkCandidate{
			{URL: "https://a.com/portfolio/x"},
			{URL: "https://a.com/companies/y"},
			{URL: "https://a.com/team/jane"},
		}, links)
	})

	t.Run("any host", func(t *testing.T) {
		t.Parallel()
		links := c.DiscoverLinks(p, models.CrawlContext{StartHost: "a.com"})
		assert.Equal(t, []models.LinkCandidate{
			{URL: "https://b.com/portfolio"},
			{URL: "https://a.com/portfolio/x"},
			{URL: "https://a.com/companies/y"},
			{URL: "https://a.com/team/jane"},
		}, links)
	})

	t.Run("unknown start host does not constrain", func(t *testing.T) {
		t.Parallel()
		links := c.DiscoverLinks(p, models.CrawlContext{FollowInternalOnly: true})
		assert.Len(t, links, 4)
	})
}
