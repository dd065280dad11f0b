package extractor

import (
	"regexp"
	"strings"

	"portfolio_spider/internal/models"
)

const companyPathMarker = "/company"

var profileTextPattern = regexp.MustCompile(`(?i)company|about|portfolio`)

// IsProfilePage reports whether the page looks like it describes one company.
func IsProfilePage(p Page) bool {
	return strings.Contains(p.URL.Path, companyPathMarker) || profileTextPattern.MatchString(p.Text)
}

// ProfileRecord extracts the single record of a company profile page.
func (c *Classifier) ProfileRecord(p Page, firm string) models.ExtractedRecord {
	return models.ExtractedRecord{
		VCFirm:           firm,
		PortfolioCompany: FirstNonEmpty(p, c.CompanyName),
		CompanyURL:       FirstNonEmpty(p, c.Website),
		Industry:         FirstNonEmpty(p, c.Industry),
		Stage:            c.Stage.MatchOrEmpty(p.Text),
		InvestmentDate:   c.Date.MatchOrEmpty(p.Text),
		Amount:           c.Amount.MatchOrEmpty(p.Text),
		Description:      FirstNonEmpty(p, c.Description),
		Tags:             []string{},
		SourceURL:        p.URL.String(),
	}
}
