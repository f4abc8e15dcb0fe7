package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelleal24/stock/internal/adapters/mongo/document"
	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/logger"
	"github.com/rafaelleal24/stock/internal/core/port"
	"github.com/rafaelleal24/stock/internal/core/serviceerrors"
)

const stockCollection = "stocks"

type StockRepository struct {
	*BaseRepository[document.StockDocument]
	collection *mongo.Collection
}

func NewStockRepository(db *mongo.Database) port.StockPort {
	repo := &StockRepository{
		BaseRepository: NewBaseRepository[document.StockDocument](db, stockCollection),
		collection:     db.Collection(stockCollection),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": stockCollection,
		})
	}

	return repo
}

func (r *StockRepository) createIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *StockRepository) FindBySku(ctx context.Context, sku string) (*domain.Stock, error) {
	doc, err := notFoundAsNil(r.FindOne(ctx, bson.M{"sku": sku}))
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *StockRepository) FindByID(ctx context.Context, id domain.ID) (*domain.Stock, error) {
	doc, err := notFoundAsNil(r.BaseRepository.FindByID(ctx, string(id)))
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *StockRepository) FindAll(ctx context.Context) ([]*domain.Stock, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sku", Value: 1}}))
	if err != nil {
		return nil, err
	}

	stocks := make([]*domain.Stock, len(docs))
	for i, doc := range docs {
		stocks[i] = doc.ToDomain()
	}

	return stocks, nil
}

// Save inserts a stock that has never been stored (Version 0) and otherwise
// replaces it only if the stored version still matches. Version is bumped on
// success.
func (r *StockRepository) Save(ctx context.Context, stock *domain.Stock) error {
	now := time.Now()
	if stock.CreatedAt.IsZero() {
		stock.CreatedAt = now
	}
	if stock.UpdatedAt.IsZero() {
		stock.UpdatedAt = now
	}

	doc := document.ToStockDocument(stock)
	doc.Version = stock.Version + 1

	if stock.Version == 0 {
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return serviceerrors.NewConflictError("stock for sku already exists")
			}
			return parseError(err)
		}
		stock.Version = doc.Version
		return nil
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": stock.Version}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return serviceerrors.NewConflictError("stock for sku already exists")
		}
		return parseError(err)
	}
	if result.MatchedCount == 0 {
		return serviceerrors.NewConflictError("stock was modified concurrently")
	}

	stock.Version = doc.Version
	return nil
}

func (r *StockRepository) DeleteByID(ctx context.Context, id domain.ID) error {
	return r.BaseRepository.DeleteByID(ctx, string(id))
}
