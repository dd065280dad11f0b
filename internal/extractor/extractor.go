// Package extractor classifies fetched pages of venture-capital sites as
// portfolio listings and/or company profiles and turns them into records.
//
// Classification is a pure function of the page: no network or storage access
// happens here, and the same page always yields the same records. Link
// discovery runs on every page, independently of classification.
package extractor

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"portfolio_spider/internal/models"
	urlqueue "portfolio_spider/internal/url_queue"
)

// Page is a fetched document ready for classification.
type Page struct {
	URL  *url.URL
	DOM  *goquery.Selection
	Text string // plain text of <body>
}

// NewPage wraps a parsed document. dom may be the document itself or its <html> element.
func NewPage(pageURL *url.URL, dom *goquery.Selection) Page {
	return Page{
		URL:  pageURL,
		DOM:  dom,
		Text: dom.Find("body").Text(),
	}
}

// Result is everything Classify found on one page.
type Result struct {
	Records []models.ExtractedRecord
	Links   []models.LinkCandidate
	Listing bool
	Profile bool
	// Err is the page-level extraction failure, if any. It has already been
	// logged; Records holds whatever was produced before it.
	Err error
}

// Classifier holds the ordered extractor chains. The zero value is not usable;
// build one with New.
type Classifier struct {
	Follow *urlqueue.FollowPatterns

	FirmName    []Extractor
	CompanyName []Extractor
	Website     []Extractor
	Industry    []Extractor
	Description []Extractor

	// Card-level extractors for listing anchors.
	CardIndustry    CardExtractor
	CardDescription CardExtractor
	CardTags        CardListExtractor

	Stage  Matcher
	Amount Matcher
	Date   Matcher

	logger *log.Logger
}

// New returns a Classifier with the default chains and matchers. A nil logger
// falls back to the package-level default.
func New(logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Classifier{
		Follow:      urlqueue.MustFollowPatterns(urlqueue.DefaultFollowPatterns),
		FirmName:    DefaultFirmName,
		CompanyName: DefaultCompanyName,
		Website:     DefaultWebsite,
		Industry:    DefaultIndustry,
		Description: DefaultDescription,

		CardIndustry:    DefaultCardIndustry,
		CardDescription: DefaultCardDescription,
		CardTags:        DefaultCardTags,

		Stage:  StageMatcher,
		Amount: AmountMatcher,
		Date:   DateMatcher,
		logger: logger,
	}
}

// Classify discovers follow-up links and extracts records from page. It never
// panics; failures are logged as warnings and reported in Result.Err.
func (c *Classifier) Classify(page Page, cctx models.CrawlContext) Result {
	var res Result

	if err := guard(func() { res.Links = c.DiscoverLinks(page, cctx) }); err != nil {
		c.logger.Warn("Link discovery error", "url", page.URL, "message", err)
	}

	res.Err = guard(func() { c.extract(page, &res) })
	if res.Err != nil {
		c.logger.Warn("Extraction error", "url", page.URL, "message", res.Err)
	}

	return res
}

func (c *Classifier) extract(page Page, res *Result) {
	firm := FirstNonEmpty(page, c.FirmName)

	if IsListingPage(page) {
		res.Listing = true
		res.Records = append(res.Records, c.ListingRecords(page, firm)...)
	}

	if IsProfilePage(page) {
		res.Profile = true
		res.Records = append(res.Records, c.ProfileRecord(page, firm))
	}
}

// guard runs fn and converts a panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	fn()
	return nil
}
