package service

import (
	"fmt"

	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/serviceerrors"
)

// applyAdjustment mutates stock in memory only. A decrease larger than the
// available quantity is rejected before the entity is touched.
func applyAdjustment(stock *domain.Stock, operation domain.StockOperation, amount int) error {
	switch operation {
	case domain.StockOperationIncrease:
		return serviceerrors.FromDomain(stock.Increase(amount))
	case domain.StockOperationDecrease:
		if amount > stock.Quantity {
			return serviceerrors.NewInvalidRequestError(fmt.Sprintf("stock for sku:%s is less than required: %d", stock.Sku, amount))
		}
		return serviceerrors.FromDomain(stock.Decrease(amount))
	default:
		return serviceerrors.NewInvalidRequestError("no operation informed")
	}
}
