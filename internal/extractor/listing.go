package extractor

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"portfolio_spider/internal/models"
)

const (
	listingSelector = `[class*="portfolio"], [class*="companies"], [id*="portfolio"], ` +
		`.portfolio, .portfolio-list, .investments, .portfolio-grid`
	cardSelector     = "div, li, article, .card, .company"
	industrySelector = ".industry, .tag, .category"
	tagSelector      = ".tag, .tags, .category"

	// Shorter anchor texts are navigation arrows, bullets and the like.
	minAnchorTextLen = 2
)

var errSkipAnchor = errors.New("anchor skipped")

// CardExtractor reads one value out of the card container around a listing anchor.
type CardExtractor func(card *goquery.Selection) string

// CardListExtractor reads a list of values out of a card container.
type CardListExtractor func(card *goquery.Selection) []string

// CardText returns the trimmed text of the first card element matching selector.
func CardText(selector string) CardExtractor {
	return func(card *goquery.Selection) string {
		return firstText(card, selector)
	}
}

// CardTexts returns the trimmed text of every card element matching selector.
func CardTexts(selector string) CardListExtractor {
	return func(card *goquery.Selection) []string {
		return card.Find(selector).Map(func(_ int, s *goquery.Selection) string {
			return strings.TrimSpace(s.Text())
		})
	}
}

var (
	DefaultCardIndustry    = CardText(industrySelector)
	DefaultCardDescription = CardText("p")
	DefaultCardTags        = CardTexts(tagSelector)
)

// IsListingPage reports whether the page contains a portfolio/companies container.
func IsListingPage(p Page) bool {
	return p.DOM.Find(listingSelector).Length() > 0
}

// ListingRecords emits one record per qualifying anchor inside the listing
// containers. A failing anchor is logged and skipped; the rest still count.
func (c *Classifier) ListingRecords(p Page, firm string) []models.ExtractedRecord {
	var records []models.ExtractedRecord

	p.DOM.Find(listingSelector).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		var rec models.ExtractedRecord
		var err error

		if perr := guard(func() { rec, err = c.listingRecord(p, firm, a) }); perr != nil {
			err = perr
		}

		switch {
		case errors.Is(err, errSkipAnchor):
		case err != nil:
			c.logger.Warn("Anchor extraction error", "url", p.URL, "message", err)
		default:
			records = append(records, rec)
		}
	})

	return records
}

func (c *Classifier) listingRecord(p Page, firm string, a *goquery.Selection) (models.ExtractedRecord, error) {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	if href == "" {
		return models.ExtractedRecord{}, errSkipAnchor
	}
	ref, err := url.Parse(href)
	if err != nil {
		return models.ExtractedRecord{}, errSkipAnchor
	}

	text := strings.TrimSpace(a.Text())
	if utf8.RuneCountInString(text) < minAnchorTextLen {
		return models.ExtractedRecord{}, errSkipAnchor
	}

	card := a.Closest(cardSelector)

	tags := c.CardTags(card)
	if tags == nil {
		tags = []string{}
	}

	return models.ExtractedRecord{
		VCFirm:           firm,
		PortfolioCompany: text,
		CompanyURL:       p.URL.ResolveReference(ref).String(),
		Industry:         c.CardIndustry(card),
		Description:      c.CardDescription(card),
		Tags:             tags,
		SourceURL:        p.URL.String(),
	}, nil
}
