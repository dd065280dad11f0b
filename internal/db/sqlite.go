package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"portfolio_spider/internal/config"
	"portfolio_spider/internal/models"
)

type SQLiteDB struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (creating if needed) the database file at cfg.Path.
func NewSQLite(cfg config.DBConfig) (*SQLiteDB, error) {
	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection serialises writers, so concurrent saves never hit SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteDB{db: sqlDB, path: cfg.Path}, nil
}

func (d *SQLiteDB) Path() string {
	return d.path
}

func (d *SQLiteDB) SaveRecord(rec *models.ExtractedRecord) error {
	tags, err := json.Marshal(rec.NormalizedTags())
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO records (vc_firm, portfolio_company, company_url, industry, stage,
			investment_date, amount, description, tags, source_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.VCFirm, rec.PortfolioCompany, rec.CompanyURL, rec.Industry, rec.Stage,
		rec.InvestmentDate, rec.Amount, rec.Description, string(tags), rec.SourceURL,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (d *SQLiteDB) SaveDocument(doc *models.Document) error {
	_, err := d.db.Exec(`
		INSERT INTO documents (normalized_url, url, title, content, excerpt, content_hash,
			content_length, first_scraped, last_scraped, scraped_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(normalized_url) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			content = excluded.content,
			excerpt = excluded.excerpt,
			content_hash = excluded.content_hash,
			content_length = excluded.content_length,
			last_scraped = excluded.last_scraped,
			scraped_count = documents.scraped_count + 1`,
		doc.NormalizedURL, doc.URL, doc.Title, doc.Content, doc.Excerpt, doc.ContentHash,
		doc.ContentLength, doc.FirstScraped, doc.LastScraped,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (d *SQLiteDB) SaveCrawlHistory(h *models.CrawlHistory) error {
	_, err := d.db.Exec(`
		INSERT INTO crawl_history (run_id, url, status, status_code, records, links,
			duration_ms, timestamp, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.RunID, h.URL, h.Status, h.StatusCode, h.Records, h.Links,
		h.Duration, h.Timestamp, h.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert crawl history: %w", err)
	}
	return nil
}

func (d *SQLiteDB) SaveCrawlState(s *models.CrawlState) error {
	startURLs, err := json.Marshal(s.StartURLs)
	if err != nil {
		return fmt.Errorf("encode start urls: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO crawl_state (run_id, start_urls, total_requests, total_processed,
			total_records, total_errors, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			start_urls = excluded.start_urls,
			total_requests = excluded.total_requests,
			total_processed = excluded.total_processed,
			total_records = excluded.total_records,
			total_errors = excluded.total_errors,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at`,
		s.RunID, string(startURLs), s.TotalRequests, s.TotalProcessed,
		s.TotalRecords, s.TotalErrors, s.StartedAt, s.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert crawl state: %w", err)
	}
	return nil
}

// Records returns every stored record in insertion order.
func (d *SQLiteDB) Records() ([]models.ExtractedRecord, error) {
	rows, err := d.db.Query(`
		SELECT vc_firm, portfolio_company, company_url, industry, stage,
			investment_date, amount, description, tags, source_url
		FROM records ORDER BY record_id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []models.ExtractedRecord
	for rows.Next() {
		var rec models.ExtractedRecord
		var tags string
		if err := rows.Scan(&rec.VCFirm, &rec.PortfolioCompany, &rec.CompanyURL, &rec.Industry,
			&rec.Stage, &rec.InvestmentDate, &rec.Amount, &rec.Description, &tags, &rec.SourceURL); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		rec.Tags = rec.NormalizedTags()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Document returns the archived page for normalizedURL, or nil when absent.
func (d *SQLiteDB) Document(normalizedURL string) (*models.Document, error) {
	var doc models.Document
	err := d.db.QueryRow(`
		SELECT normalized_url, url, title, content, excerpt, content_hash, content_length,
			first_scraped, last_scraped, scraped_count
		FROM documents WHERE normalized_url = ?`, normalizedURL).
		Scan(&doc.NormalizedURL, &doc.URL, &doc.Title, &doc.Content, &doc.Excerpt, &doc.ContentHash,
			&doc.ContentLength, &doc.FirstScraped, &doc.LastScraped, &doc.ScrapedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return &doc, nil
}

// CrawlHistory returns the history rows of one run.
func (d *SQLiteDB) CrawlHistory(runID string) ([]models.CrawlHistory, error) {
	rows, err := d.db.Query(`
		SELECT run_id, url, status, status_code, records, links, duration_ms, timestamp,
			COALESCE(error_message, '')
		FROM crawl_history WHERE run_id = ? ORDER BY history_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query crawl history: %w", err)
	}
	defer rows.Close()

	var history []models.CrawlHistory
	for rows.Next() {
		var h models.CrawlHistory
		if err := rows.Scan(&h.RunID, &h.URL, &h.Status, &h.StatusCode, &h.Records, &h.Links,
			&h.Duration, &h.Timestamp, &h.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan crawl history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// CrawlState returns the summary of one run, or nil when absent.
func (d *SQLiteDB) CrawlState(runID string) (*models.CrawlState, error) {
	var s models.CrawlState
	var startURLs string
	err := d.db.QueryRow(`
		SELECT run_id, start_urls, total_requests, total_processed, total_records,
			total_errors, started_at, finished_at
		FROM crawl_state WHERE run_id = ?`, runID).
		Scan(&s.RunID, &startURLs, &s.TotalRequests, &s.TotalProcessed, &s.TotalRecords,
			&s.TotalErrors, &s.StartedAt, &s.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query crawl state: %w", err)
	}
	if err := json.Unmarshal([]byte(startURLs), &s.StartURLs); err != nil {
		return nil, fmt.Errorf("decode start urls: %w", err)
	}
	return &s, nil
}

func (d *SQLiteDB) Close() error {
	return d.db.Close()
}
