package domain

import "time"

const stockEntityName = "stock"

type StockCreatedEvent struct {
	StockID   ID        `json:"stock_id"`
	Sku       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *StockCreatedEvent) GetName() string {
	return "stock.created"
}

func (e *StockCreatedEvent) GetEntityName() string {
	return stockEntityName
}

func NewStockCreatedEvent(stock *Stock) *StockCreatedEvent {
	return &StockCreatedEvent{
		StockID:   stock.ID,
		Sku:       stock.Sku,
		Name:      stock.Name,
		Quantity:  stock.Quantity,
		CreatedAt: stock.CreatedAt,
	}
}

type StockAdjustedEvent struct {
	StockID     ID             `json:"stock_id"`
	Sku         string         `json:"sku"`
	Operation   StockOperation `json:"operation"`
	Amount      int            `json:"amount"`
	OldQuantity int            `json:"old_quantity"`
	Quantity    int            `json:"quantity"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (e *StockAdjustedEvent) GetName() string {
	return "stock.adjusted"
}

func (e *StockAdjustedEvent) GetEntityName() string {
	return stockEntityName
}

func NewStockAdjustedEvent(stock *Stock, operation StockOperation, amount, oldQuantity int) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		StockID:     stock.ID,
		Sku:         stock.Sku,
		Operation:   operation,
		Amount:      amount,
		OldQuantity: oldQuantity,
		Quantity:    stock.Quantity,
		UpdatedAt:   stock.UpdatedAt,
	}
}

type StockDeletedEvent struct {
	StockID   ID        `json:"stock_id"`
	Sku       string    `json:"sku"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *StockDeletedEvent) GetName() string {
	return "stock.deleted"
}

func (e *StockDeletedEvent) GetEntityName() string {
	return stockEntityName
}

func NewStockDeletedEvent(stock *Stock, deletedAt time.Time) *StockDeletedEvent {
	return &StockDeletedEvent{
		StockID:   stock.ID,
		Sku:       stock.Sku,
		DeletedAt: deletedAt,
	}
}
