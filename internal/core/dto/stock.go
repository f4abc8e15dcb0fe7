package dto

import "github.com/rafaelleal24/stock/internal/core/domain"

type CreateStockRequest struct {
	Sku      string `json:"sku" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

type AdjustStockRequest struct {
	Operation domain.StockOperation `json:"stock_operation"`
	Quantity  int                   `json:"quantity"`
}
