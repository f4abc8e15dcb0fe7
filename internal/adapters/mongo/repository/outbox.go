package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelleal24/stock/internal/adapters/mongo/document"
	"github.com/rafaelleal24/stock/internal/adapters/outbox"
	"github.com/rafaelleal24/stock/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const outboxCollection = "outbox"

type OutboxRepository struct {
	*BaseRepository[document.OutboxDocument]
}

func NewOutboxRepository(db *mongo.Database) outbox.Repository {
	return &OutboxRepository{
		BaseRepository: NewBaseRepository[document.OutboxDocument](db, outboxCollection),
	}
}

// Insert joins the transaction carried by ctx, if any.
func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	doc := document.ToOutboxDocument(uuid.NewString(), entry, time.Now().UTC())
	return r.Create(ctx, &doc)
}

// FetchPending returns the oldest entries first so consumers see stock
// events in the order they were committed.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]outbox.Entry, len(docs))
	for i, doc := range docs {
		entries[i] = doc.ToEntry()
	}
	return entries, nil
}

func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	return r.DeleteByID(ctx, id)
}

// MarkFailed keeps the entry pending and records the publish failure.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id string, cause error) error {
	update := bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"last_error": cause.Error()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return parseError(err)
	}
	if result.MatchedCount == 0 {
		return serviceerrors.NewNotFoundError(fmt.Sprintf("outbox entry not found with id: %s", id))
	}
	return nil
}
