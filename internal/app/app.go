package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gocolly/colly"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"portfolio_spider/internal/config"
	"portfolio_spider/internal/db"
	"portfolio_spider/internal/extractor"
	"portfolio_spider/internal/models"
	urlqueue "portfolio_spider/internal/url_queue"
)

const recordBuffer = 1000

// SpiderApp runs one crawl: colly fetches and schedules pages, the classifier
// turns them into records, and a single writer drains records into the sink.
type SpiderApp struct {
	config     *config.SpiderConfig
	sink       db.Sink
	classifier *extractor.Classifier
	logger     *log.Logger

	runID     string
	startHost string

	records  chan *models.ExtractedRecord
	inflight sync.Map // request ID -> pendingRequest
	pages    sync.Map // request ID -> pageResult, set by the html callback

	requests  int64
	processed int64
	saved     int64
	errors    int64
}

type pendingRequest struct {
	url     string
	started time.Time
}

// pageResult is what classification produced for one HTML response.
type pageResult struct {
	records int
	links   int
	err     error
}

func NewSpiderApp(cfg *config.SpiderConfig, sink db.Sink, logger *log.Logger) *SpiderApp {
	if logger == nil {
		logger = log.Default()
	}
	return &SpiderApp{
		config:     cfg,
		sink:       sink,
		classifier: extractor.New(logger),
		logger:     logger,
		runID:      uuid.NewString(),
	}
}

func (s *SpiderApp) RunID() string {
	return s.runID
}

// Run crawls until the frontier is exhausted, the request budget is spent or
// ctx is cancelled. Pages already being fetched when ctx is cancelled finish
// normally. The sink is left open.
func (s *SpiderApp) Run(ctx context.Context) error {
	startURLs := s.config.Input.StartURLs
	if len(startURLs) == 0 {
		return config.ErrNoStartURLs
	}
	// Malformed first seed: no host constraint.
	s.startHost = urlqueue.HostOf(startURLs[0])

	state := &models.CrawlState{
		RunID:     s.runID,
		StartURLs: startURLs,
		StartedAt: time.Now().Unix(),
	}
	if err := s.sink.SaveCrawlState(state); err != nil {
		s.logger.Error("Failed to save crawl state", "run_id", s.runID, "err", err)
	}

	s.logger.Info("Starting crawl",
		"run_id", s.runID,
		"start_urls", startURLs,
		"max_requests", s.config.Input.MaxRequestsPerCrawl,
		"follow_internal_only", s.config.Input.FollowInternal(),
	)

	g, gctx := errgroup.WithContext(ctx)

	collector, err := s.newCollector(gctx)
	if err != nil {
		return err
	}

	s.records = make(chan *models.ExtractedRecord, recordBuffer)

	g.Go(func() error {
		s.writeRecords()
		return nil
	})

	g.Go(func() error {
		defer close(s.records)
		return s.crawl(collector, startURLs)
	})

	runErr := g.Wait()

	state.TotalRequests = min(atomic.LoadInt64(&s.requests), int64(s.config.Input.MaxRequestsPerCrawl))
	state.TotalProcessed = atomic.LoadInt64(&s.processed)
	state.TotalRecords = atomic.LoadInt64(&s.saved)
	state.TotalErrors = atomic.LoadInt64(&s.errors)
	state.FinishedAt = time.Now().Unix()
	if err := s.sink.SaveCrawlState(state); err != nil {
		s.logger.Error("Failed to save crawl state", "run_id", s.runID, "err", err)
	}

	s.logger.Info("Crawl finished",
		"run_id", s.runID,
		"pages", state.TotalProcessed,
		"records", state.TotalRecords,
		"errors", state.TotalErrors,
		"elapsed", time.Since(time.Unix(state.StartedAt, 0)).Round(time.Second),
	)

	return runErr
}

func (s *SpiderApp) crawl(c *colly.Collector, startURLs []string) error {
	var errs []error
	for _, u := range startURLs {
		if err := c.Visit(u); err != nil {
			s.logger.Warn("Cannot visit start url", "url", u, "err", err)
			errs = append(errs, fmt.Errorf("visit %s: %w", u, err))
		}
	}

	c.Wait()

	if len(errs) == len(startURLs) {
		return fmt.Errorf("no start url could be visited: %w", errors.Join(errs...))
	}
	return nil
}

// writeRecords drains the record channel until it is closed. Failed writes are
// logged and counted; they never stop the crawl.
func (s *SpiderApp) writeRecords() {
	for rec := range s.records {
		if err := s.sink.SaveRecord(rec); err != nil {
			atomic.AddInt64(&s.errors, 1)
			s.logger.Error("Error saving record", "url", rec.SourceURL, "company", rec.PortfolioCompany, "err", err)
			continue
		}
		atomic.AddInt64(&s.saved, 1)
	}
}
