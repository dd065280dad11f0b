package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio_spider/internal/config"
	"portfolio_spider/internal/models"
)

type MongoDB struct {
	client       *mongo.Client
	database     *mongo.Database
	records      *mongo.Collection
	documents    *mongo.Collection
	crawlHistory *mongo.Collection
	crawlState   *mongo.Collection
}

func NewMongoDB(cfg config.DBConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Connection))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("can't ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	d := &MongoDB{
		client:       client,
		database:     db,
		records:      db.Collection(cfg.Collections.Records),
		documents:    db.Collection(cfg.Collections.Documents),
		crawlHistory: db.Collection(cfg.Collections.CrawlHistory),
		crawlState:   db.Collection(cfg.Collections.CrawlState),
	}

	if err := d.createIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("can't create indexes: %w", err)
	}

	return d, nil
}

func (d *MongoDB) createIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{d.documents, mongo.IndexModel{
			Keys:    bson.D{{Key: "normalized_url", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{d.records, mongo.IndexModel{Keys: bson.D{{Key: "source_url", Value: 1}}}},
		{d.crawlHistory, mongo.IndexModel{Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "timestamp", Value: 1}}}},
		{d.crawlState, mongo.IndexModel{
			Keys:    bson.D{{Key: "run_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (d *MongoDB) SaveRecord(rec *models.ExtractedRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stored := *rec
	stored.Tags = rec.NormalizedTags()

	_, err := d.records.InsertOne(ctx, &stored)
	return err
}

// SaveDocument upserts by normalized URL and counts how often the page was archived.
func (d *MongoDB) SaveDocument(doc *models.Document) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"normalized_url": doc.NormalizedURL}

	update := bson.M{
		"$set": bson.M{
			"url":            doc.URL,
			"title":          doc.Title,
			"content":        doc.Content,
			"excerpt":        doc.Excerpt,
			"content_hash":   doc.ContentHash,
			"content_length": doc.ContentLength,
			"last_scraped":   doc.LastScraped,
		},
		"$setOnInsert": bson.M{"first_scraped": doc.FirstScraped},
		"$inc":         bson.M{"scraped_count": 1},
	}

	_, err := d.documents.UpdateOne(ctx, filter, update, opts)
	return err
}

func (d *MongoDB) SaveCrawlHistory(history *models.CrawlHistory) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := d.crawlHistory.InsertOne(ctx, history)
	return err
}

func (d *MongoDB) SaveCrawlState(state *models.CrawlState) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"run_id": state.RunID}
	update := bson.M{"$set": state}

	_, err := d.crawlState.UpdateOne(ctx, filter, update, opts)
	return err
}

func (d *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}
