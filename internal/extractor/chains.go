package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls one candidate value out of a page. An empty string means
// "nothing here, try the next one".
type Extractor func(Page) string

// FirstNonEmpty tries chain in order and returns the first non-empty trimmed value.
func FirstNonEmpty(page Page, chain []Extractor) string {
	for _, extract := range chain {
		if v := strings.TrimSpace(extract(page)); v != "" {
			return v
		}
	}
	return ""
}

// MetaContent reads the content attribute of the first element matching selector.
func MetaContent(selector string) Extractor {
	return func(p Page) string {
		return strings.TrimSpace(p.DOM.Find(selector).First().AttrOr("content", ""))
	}
}

// FirstText returns the trimmed text of the first element matching selector.
func FirstText(selector string) Extractor {
	return func(p Page) string {
		return firstText(p.DOM, selector)
	}
}

func firstText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// PageURL is the last resort for values that fall back to the page itself.
func PageURL(p Page) string {
	return p.URL.String()
}

var excludedWebsiteHosts = []string{"twitter.com", "linkedin.com"}

// CompanyWebsite finds the first absolute link that looks like an outbound
// company domain rather than the page itself or a social profile.
func CompanyWebsite(p Page) string {
	self := p.URL.String()

	link := p.DOM.Find(`a[href^="http"]`).FilterFunction(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if href == "" || strings.Contains(href, self) || !strings.Contains(href, ".") {
			return false
		}
		for _, host := range excludedWebsiteHosts {
			if strings.Contains(href, host) {
				return false
			}
		}
		return true
	}).First()

	return link.AttrOr("href", "")
}

var (
	DefaultFirmName = []Extractor{
		MetaContent(`meta[property="og:site_name"]`),
		MetaContent(`meta[name="twitter:site"]`),
		FirstText(`h1, .company-name, header h1`),
	}

	DefaultCompanyName = []Extractor{
		FirstText("h1"),
		MetaContent(`meta[property="og:title"]`),
	}

	DefaultWebsite = []Extractor{
		CompanyWebsite,
		PageURL,
	}

	DefaultIndustry = []Extractor{
		FirstText(`[class*="industry"], [class*="sector"]`),
		MetaContent(`meta[name="keywords"]`),
	}

	DefaultDescription = []Extractor{
		MetaContent(`meta[name="description"]`),
		MetaContent(`meta[property="og:description"]`),
		FirstText("p"),
	}
)
