package document

import (
	"time"

	"github.com/rafaelleal24/stock/internal/core/domain"
)

type StockDocument struct {
	ID        string    `bson:"_id"`
	Sku       string    `bson:"sku"`
	Name      string    `bson:"name"`
	Quantity  int       `bson:"quantity"`
	Version   int       `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (doc StockDocument) GetID() string {
	return doc.ID
}

func (doc *StockDocument) ToDomain() *domain.Stock {
	return &domain.Stock{
		ID:        domain.ID(doc.ID),
		Sku:       doc.Sku,
		Name:      doc.Name,
		Quantity:  doc.Quantity,
		Version:   doc.Version,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func ToStockDocument(s *domain.Stock) *StockDocument {
	return &StockDocument{
		ID:        string(s.ID),
		Sku:       s.Sku,
		Name:      s.Name,
		Quantity:  s.Quantity,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
