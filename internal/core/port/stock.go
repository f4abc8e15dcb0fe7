package port

import (
	"context"

	"github.com/rafaelleal24/stock/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// StockPort is the persistence contract of the stock use cases. Lookups
// return (nil, nil) when nothing matches.
type StockPort interface {
	FindBySku(ctx context.Context, sku string) (*domain.Stock, error)
	FindByID(ctx context.Context, id domain.ID) (*domain.Stock, error)
	FindAll(ctx context.Context) ([]*domain.Stock, error)
	Save(ctx context.Context, stock *domain.Stock) error
	DeleteByID(ctx context.Context, id domain.ID) error
}
