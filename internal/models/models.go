package models

// CrawlContext is the read-only, per-page view of the crawl the classifier receives.
type CrawlContext struct {
	RequestedURL       string
	ResolvedURL        string
	StartHost          string // host of the first seed URL, empty when it did not parse
	FollowInternalOnly bool
}

// ExtractedRecord is one portfolio company found on a page. Every field is always
// present; nothing is deduplicated here.
type ExtractedRecord struct {
	VCFirm           string   `json:"vc_firm" bson:"vc_firm"`
	PortfolioCompany string   `json:"portfolio_company" bson:"portfolio_company"`
	CompanyURL       string   `json:"company_url" bson:"company_url"`
	Industry         string   `json:"industry" bson:"industry"`
	Stage            string   `json:"stage" bson:"stage"`
	InvestmentDate   string   `json:"investment_date" bson:"investment_date"`
	Amount           string   `json:"amount" bson:"amount"`
	Description      string   `json:"description" bson:"description"`
	Tags             []string `json:"tags" bson:"tags"`
	SourceURL        string   `json:"source_url" bson:"source_url"`
}

// NormalizedTags returns the tags, never nil.
func (r *ExtractedRecord) NormalizedTags() []string {
	if r.Tags == nil {
		return []string{}
	}
	return r.Tags
}

type LinkCandidate struct {
	URL string
}

// Document is the archived readable text of a company profile page.
type Document struct {
	NormalizedURL string `bson:"normalized_url"`
	URL           string `bson:"url"`
	Title         string `bson:"title"`
	Content       string `bson:"content"`
	Excerpt       string `bson:"excerpt"`
	ContentHash   string `bson:"content_hash"`
	ContentLength int    `bson:"content_length"`
	FirstScraped  int64  `bson:"first_scraped"`
	LastScraped   int64  `bson:"last_scraped"`
	ScrapedCount  int    `bson:"scraped_count"`
}

type CrawlHistory struct {
	RunID        string `bson:"run_id"`
	URL          string `bson:"url"`
	Status       string `bson:"status"` // success, error
	StatusCode   int    `bson:"status_code"`
	Records      int    `bson:"records"`
	Links        int    `bson:"links"`
	Duration     int64  `bson:"duration_ms"`
	Timestamp    int64  `bson:"timestamp"`
	ErrorMessage string `bson:"error_message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type CrawlState struct {
	RunID          string   `bson:"run_id"`
	StartURLs      []string `bson:"start_urls"`
	TotalRequests  int64    `bson:"total_requests"`
	TotalProcessed int64    `bson:"total_processed"`
	TotalRecords   int64    `bson:"total_records"`
	TotalErrors    int64    `bson:"total_errors"`
	StartedAt      int64    `bson:"started_at"`
	FinishedAt     int64    `bson:"finished_at"`
}

// ExtractedArticle is the readable part of a page.
type ExtractedArticle struct {
	Title   string
	Text    string
	HTML    string
	Excerpt string
}
