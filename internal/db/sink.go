package db

import (
	"fmt"

	"portfolio_spider/internal/config"
	"portfolio_spider/internal/models"
)

// Sink persists crawl output. Implementations must accept concurrent calls;
// records arrive in no particular order.
type Sink interface {
	SaveRecord(rec *models.ExtractedRecord) error
	SaveDocument(doc *models.Document) error
	SaveCrawlHistory(history *models.CrawlHistory) error
	SaveCrawlState(state *models.CrawlState) error
	Close() error
}

func NewSink(cfg config.DBConfig) (Sink, error) {
	var (
		sink Sink
		err  error
	)
	switch cfg.Driver {
	case config.DriverMongo:
		sink, err = NewMongoDB(cfg)
	case config.DriverSQLite:
		sink, err = NewSQLite(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return sink, nil
}
