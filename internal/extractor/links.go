package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"portfolio_spider/internal/models"
	urlqueue "portfolio_spider/internal/url_queue"
)

// DiscoverLinks returns the anchors worth enqueuing: absolute http(s) URLs
// matching the follow patterns and passing the host filter, in document order,
// without duplicates.
func (c *Classifier) DiscoverLinks(p Page, cctx models.CrawlContext) []models.LinkCandidate {
	filter := urlqueue.HostFilter{StartHost: cctx.StartHost, InternalOnly: cctx.FollowInternalOnly}
	seen := make(map[string]bool)
	var links []models.LinkCandidate

	p.DOM.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := p.URL.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}

		candidate := urlqueue.StripFragment(abs)
		if seen[candidate] {
			return
		}
		seen[candidate] = true

		if !c.Follow.Match(candidate) || !filter.Allow(candidate) {
			return
		}
		links = append(links, models.LinkCandidate{URL: candidate})
	})

	return links
}
