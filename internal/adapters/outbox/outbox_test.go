package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/stock/internal/adapters/outbox"
	outboxmock "github.com/rafaelleal24/stock/internal/adapters/outbox/mock"
	"github.com/rafaelleal24/stock/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxmock.NewMockRepository(ctrl)
	recorder := outbox.NewRecorder(repo)

	stock := &domain.Stock{ID: "id-1", Sku: "SKU1", Name: "Widget", Quantity: 15, UpdatedAt: time.Now()}
	event := domain.NewStockAdjustedEvent(stock, domain.StockOperationIncrease, 5, 10)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry outbox.Entry) error {
			if entry.EventName != "stock.adjusted" || entry.EntityName != "stock" {
				t.Fatalf("unexpected entry %s/%s", entry.EventName, entry.EntityName)
			}
			var payload map[string]any
			if err := json.Unmarshal(entry.EventData, &payload); err != nil {
				t.Fatalf("expected json payload, got %v", err)
			}
			if payload["sku"] != "SKU1" || payload["old_quantity"] != float64(10) || payload["quantity"] != float64(15) {
				t.Fatalf("unexpected payload %v", payload)
			}
			return nil
		})

	if err := recorder.Record(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRecorder_RecordPropagatesInsertError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxmock.NewMockRepository(ctrl)
	recorder := outbox.NewRecorder(repo)

	failure := errors.New("insert failed")
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure)

	err := recorder.Record(context.Background(), domain.NewStockDeletedEvent(&domain.Stock{ID: "id-1", Sku: "SKU1"}, time.Now()))
	if !errors.Is(err, failure) {
		t.Fatalf("expected %v, got %v", failure, err)
	}
}
