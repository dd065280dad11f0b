package app

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"sync/atomic"
	"time"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/gocolly/colly/proxy"
	"golang.org/x/net/publicsuffix"

	"portfolio_spider/internal/extractor"
	"portfolio_spider/internal/models"
)

func (s *SpiderApp) newCollector(ctx context.Context) (*colly.Collector, error) {
	logic := s.config.Logic

	opts := []func(*colly.Collector){colly.Async(true)}
	if logic.UserAgent != "" {
		opts = append(opts, colly.UserAgent(logic.UserAgent))
	}
	if logic.MaxDepth > 0 {
		opts = append(opts, colly.MaxDepth(logic.MaxDepth))
	}

	c := colly.NewCollector(opts...)
	c.IgnoreRobotsTxt = logic.IgnoreRobotsTxt

	if logic.UserAgent == "" {
		extensions.RandomUserAgent(c)
	}
	extensions.Referer(c)

	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: logic.MaxConcurrentWorkers,
		Delay:       time.Duration(logic.DelayMS) * time.Millisecond,
		RandomDelay: time.Duration(logic.DelayMS/2) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("limit rule: %w", err)
	}

	c.SetRequestTimeout(time.Duration(logic.TimeoutSec) * time.Second)

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c.SetCookieJar(jar)

	if len(logic.ProxyURLs) > 0 {
		switcher, err := proxy.RoundRobinProxySwitcher(logic.ProxyURLs...)
		if err != nil {
			return nil, fmt.Errorf("proxy switcher: %w", err)
		}
		c.SetProxyFunc(switcher)
	}

	s.setupCollector(ctx, c)
	return c, nil
}

func (s *SpiderApp) setupCollector(ctx context.Context, c *colly.Collector) {
	maxRequests := int64(s.config.Input.MaxRequestsPerCrawl)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		if atomic.AddInt64(&s.requests, 1) > maxRequests {
			r.Abort()
			return
		}
		s.inflight.Store(r.ID, pendingRequest{url: r.URL.String(), started: time.Now()})
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		s.handlePage(e)
	})

	// OnScraped fires for every successful response, HTML or not.
	c.OnScraped(func(r *colly.Response) {
		pending := s.finish(r.Request)

		h := &models.CrawlHistory{
			URL:        r.Request.URL.String(),
			Status:     models.StatusSuccess,
			StatusCode: r.StatusCode,
			Duration:   time.Since(pending.started).Milliseconds(),
		}
		if v, ok := s.pages.LoadAndDelete(r.Request.ID); ok {
			page := v.(pageResult)
			h.Records = page.records
			h.Links = page.links
			if page.err != nil {
				h.ErrorMessage = page.err.Error()
			}
		} else {
			s.logger.Debug("Skipped non-HTML response", "url", r.Request.URL, "content_type", r.Headers.Get("Content-Type"))
		}
		s.saveHistory(h)
	})

	c.OnError(func(r *colly.Response, err error) {
		atomic.AddInt64(&s.errors, 1)

		pending := s.finish(r.Request)
		s.logger.Warn("Request failed", "url", r.Request.URL, "status", r.StatusCode, "err", err)

		s.saveHistory(&models.CrawlHistory{
			URL:          pending.url,
			Status:       models.StatusError,
			StatusCode:   r.StatusCode,
			Duration:     time.Since(pending.started).Milliseconds(),
			ErrorMessage: err.Error(),
		})
	})
}

// handlePage classifies an HTML page, enqueues its links and queues its
// records. History is written by the OnScraped callback.
func (s *SpiderApp) handlePage(e *colly.HTMLElement) {
	pageURL := e.Request.URL
	pending := s.pending(e.Request)

	s.logger.Info("Processing", "url", pageURL)
	atomic.AddInt64(&s.processed, 1)

	cctx := models.CrawlContext{
		RequestedURL:       pending.url,
		ResolvedURL:        pageURL.String(),
		StartHost:          s.startHost,
		FollowInternalOnly: s.config.Input.FollowInternal(),
	}

	res := s.classifier.Classify(extractor.NewPage(pageURL, e.DOM), cctx)
	if res.Err != nil {
		atomic.AddInt64(&s.errors, 1)
	}

	for _, link := range res.Links {
		if err := e.Request.Visit(link.URL); err != nil {
			s.logger.Debug("Not enqueued", "url", link.URL, "reason", err)
		}
	}

	for i := range res.Records {
		s.records <- &res.Records[i]
	}

	if s.config.Logic.ArchivePages && res.Profile {
		s.archivePage(e.Response.Body, pageURL)
	}

	s.pages.Store(e.Request.ID, pageResult{
		records: len(res.Records),
		links:   len(res.Links),
		err:     res.Err,
	})
}

// pending returns what OnRequest recorded for r without forgetting it.
func (s *SpiderApp) pending(r *colly.Request) pendingRequest {
	if v, ok := s.inflight.Load(r.ID); ok {
		return v.(pendingRequest)
	}
	return pendingRequest{url: r.URL.String(), started: time.Now()}
}

// finish forgets an in-flight request and returns what OnRequest recorded for it.
func (s *SpiderApp) finish(r *colly.Request) pendingRequest {
	if v, ok := s.inflight.LoadAndDelete(r.ID); ok {
		return v.(pendingRequest)
	}
	return pendingRequest{url: r.URL.String(), started: time.Now()}
}

func (s *SpiderApp) saveHistory(h *models.CrawlHistory) {
	h.RunID = s.runID
	h.Timestamp = time.Now().Unix()
	if err := s.sink.SaveCrawlHistory(h); err != nil {
		s.logger.Error("Error saving crawl history", "url", h.URL, "err", err)
	}
}
