package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	mongoadapter "github.com/rafaelleal24/stock/internal/adapters/mongo"
	"github.com/rafaelleal24/stock/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/port"
	"github.com/rafaelleal24/stock/internal/core/serviceerrors"
)

func newTestStock(t *testing.T, sku string, quantity int) *domain.Stock {
	t.Helper()
	stock, err := domain.NewStock(domain.ID(uuid.NewString()), sku, "Widget "+sku, quantity)
	if err != nil {
		t.Fatalf("setup: new stock failed: %v", err)
	}
	return stock
}

func createTestStock(t *testing.T, repo port.StockPort, sku string, quantity int) *domain.Stock {
	t.Helper()
	stock := newTestStock(t, sku, quantity)
	if err := repo.Save(context.Background(), stock); err != nil {
		t.Fatalf("setup: save stock failed: %v", err)
	}
	return stock
}

func TestStockRepository_Save(t *testing.T) {
	repo := repository.NewStockRepository(testClient.Database("test_stock_save"))
	ctx := context.Background()

	t.Run("inserts a new stock and sets version", func(t *testing.T) {
		stock := newTestStock(t, "SAVE-1", 10)

		if err := repo.Save(ctx, stock); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stock.Version != 1 {
			t.Fatalf("expected version 1, got %d", stock.Version)
		}
	})

	t.Run("rejects a duplicate sku", func(t *testing.T) {
		createTestStock(t, repo, "SAVE-DUP", 1)

		err := repo.Save(ctx, newTestStock(t, "SAVE-DUP", 5))
		if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			t.Fatalf("expected KindConflict, got %v", err)
		}
	})

	t.Run("updates when the version matches", func(t *testing.T) {
		stock := createTestStock(t, repo, "SAVE-UPD", 10)
		if err := stock.Increase(5); err != nil {
			t.Fatalf("setup: increase failed: %v", err)
		}

		if err := repo.Save(ctx, stock); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stock.Version != 2 {
			t.Fatalf("expected version 2, got %d", stock.Version)
		}

		found, _ := repo.FindBySku(ctx, "SAVE-UPD")
		if found.Quantity != 15 {
			t.Fatalf("expected quantity 15, got %d", found.Quantity)
		}
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		createTestStock(t, repo, "SAVE-STALE", 10)

		first, _ := repo.FindBySku(ctx, "SAVE-STALE")
		second, _ := repo.FindBySku(ctx, "SAVE-STALE")

		_ = first.Decrease(3)
		if err := repo.Save(ctx, first); err != nil {
			t.Fatalf("expected first writer to win, got %v", err)
		}

		_ = second.Decrease(8)
		err := repo.Save(ctx, second)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			t.Fatalf("expected KindConflict, got %v", err)
		}

		found, _ := repo.FindBySku(ctx, "SAVE-STALE")
		if found.Quantity != 7 {
			t.Fatalf("expected quantity 7, got %d", found.Quantity)
		}
	})
}

func TestStockRepository_FindBySku(t *testing.T) {
	repo := repository.NewStockRepository(testClient.Database("test_stock_find"))
	ctx := context.Background()

	t.Run("returns stock by sku", func(t *testing.T) {
		created := createTestStock(t, repo, "FIND-1", 4)

		found, err := repo.FindBySku(ctx, "FIND-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found.ID != created.ID || found.Name != created.Name || found.Quantity != 4 {
			t.Fatalf("unexpected stock %+v", found)
		}
	})

	t.Run("returns nil for unknown sku", func(t *testing.T) {
		found, err := repo.FindBySku(ctx, "missing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found != nil {
			t.Fatalf("expected nil, got %+v", found)
		}
	})
}

func TestStockRepository_FindByID(t *testing.T) {
	repo := repository.NewStockRepository(testClient.Database("test_stock_find_id"))
	ctx := context.Background()

	created := createTestStock(t, repo, "ID-1", 4)

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found.Sku != "ID-1" {
		t.Fatalf("expected sku ID-1, got %s", found.Sku)
	}

	missing, err := repo.FindByID(ctx, "not-a-stock")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", missing, err)
	}
}

func TestStockRepository_FindAll(t *testing.T) {
	repo := repository.NewStockRepository(testClient.Database("test_stock_find_all"))
	ctx := context.Background()

	t.Run("returns empty list when no stocks", func(t *testing.T) {
		stocks, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(stocks) != 0 {
			t.Fatalf("expected 0 stocks, got %d", len(stocks))
		}
	})

	t.Run("returns all stocks ordered by sku", func(t *testing.T) {
		createTestStock(t, repo, "B", 1)
		createTestStock(t, repo, "A", 2)

		stocks, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(stocks) != 2 {
			t.Fatalf("expected 2 stocks, got %d", len(stocks))
		}
		if stocks[0].Sku != "A" || stocks[1].Sku != "B" {
			t.Fatalf("expected A then B, got %s then %s", stocks[0].Sku, stocks[1].Sku)
		}
	})
}

func TestStockRepository_DeleteByID(t *testing.T) {
	repo := repository.NewStockRepository(testClient.Database("test_stock_delete"))
	ctx := context.Background()

	t.Run("deletes stock", func(t *testing.T) {
		created := createTestStock(t, repo, "DEL-1", 1)

		if err := repo.DeleteByID(ctx, created.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		found, _ := repo.FindBySku(ctx, "DEL-1")
		if found != nil {
			t.Fatal("expected stock to be gone")
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		err := repo.DeleteByID(ctx, "unknown")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestTransactionManager_WithTransaction(t *testing.T) {
	db := testClient.Database("test_stock_tx")
	repo := repository.NewStockRepository(db)
	txManager := mongoadapter.NewTransactionManager(testClient)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		stock := newTestStock(t, "TX-OK", 3)

		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return repo.Save(txCtx, stock)
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		found, _ := repo.FindBySku(ctx, "TX-OK")
		if found == nil {
			t.Fatal("expected stock to be committed")
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		stock := newTestStock(t, "TX-FAIL", 3)
		failure := errors.New("outbox insert failed")

		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := repo.Save(txCtx, stock); err != nil {
				return err
			}
			return failure
		})
		if !errors.Is(err, failure) {
			t.Fatalf("expected %v, got %v", failure, err)
		}

		found, _ := repo.FindBySku(ctx, "TX-FAIL")
		if found != nil {
			t.Fatal("expected insert to be rolled back")
		}
	})
}
