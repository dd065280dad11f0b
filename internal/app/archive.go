package app

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"portfolio_spider/internal/models"
	urlqueue "portfolio_spider/internal/url_queue"
)

var reWhitespace = regexp.MustCompile(`\s+`)

func normalizeText(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

func extractContent(rawHTML []byte, pageURL *url.URL) (*models.ExtractedArticle, error) {
	article, err := readability.FromReader(bytes.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, figure, aside").Remove()

	return &models.ExtractedArticle{
		Title:   article.Title,
		Text:    normalizeText(doc.Text()),
		HTML:    article.Content,
		Excerpt: article.Excerpt,
	}, nil
}

// buildDocument turns a profile page into an archive entry. It returns nil when
// the page has no readable text.
func buildDocument(rawHTML []byte, pageURL *url.URL, now time.Time) (*models.Document, error) {
	article, err := extractContent(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}
	if article.Text == "" {
		return nil, nil
	}

	return &models.Document{
		NormalizedURL: urlqueue.NormalizeURL(pageURL.String()),
		URL:           pageURL.String(),
		Title:         article.Title,
		Content:       article.Text,
		Excerpt:       article.Excerpt,
		ContentHash:   urlqueue.ComputeContentHash(article.Text),
		ContentLength: len(article.Text),
		FirstScraped:  now.Unix(),
		LastScraped:   now.Unix(),
		ScrapedCount:  1,
	}, nil
}

func (s *SpiderApp) archivePage(rawHTML []byte, pageURL *url.URL) {
	doc, err := buildDocument(rawHTML, pageURL, time.Now())
	if err != nil {
		s.logger.Warn("Cannot extract readable text", "url", pageURL, "err", err)
		return
	}
	if doc == nil {
		return
	}
	if err := s.sink.SaveDocument(doc); err != nil {
		s.logger.Error("Error saving document", "url", pageURL, "err", err)
	}
}
