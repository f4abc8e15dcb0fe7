package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/dto"
	"github.com/rafaelleal24/stock/internal/core/logger"
	"github.com/rafaelleal24/stock/internal/core/port"
	"github.com/rafaelleal24/stock/internal/core/serviceerrors"
	"github.com/rafaelleal24/stock/internal/core/utils"
)

const defaultStockCacheTTL = 15 * time.Minute

type StockService struct {
	stockRepository port.StockPort
	events          port.EventPort
	txManager       port.TransactionManager
	stockCache      port.CachePort[domain.Stock]
	idempotency     *IdempotencyService[domain.Stock]
	cacheTTL        time.Duration
	newID           func() domain.ID
}

func NewStockService(
	stockRepository port.StockPort,
	events port.EventPort,
	txManager port.TransactionManager,
	stockCache port.CachePort[domain.Stock],
	idempotency *IdempotencyService[domain.Stock],
	cacheTTL time.Duration,
) *StockService {
	if cacheTTL <= 0 {
		cacheTTL = defaultStockCacheTTL
	}
	return &StockService{
		stockRepository: stockRepository,
		events:          events,
		txManager:       txManager,
		stockCache:      stockCache,
		idempotency:     idempotency,
		cacheTTL:        cacheTTL,
		newID:           func() domain.ID { return domain.ID(uuid.NewString()) },
	}
}

func (s *StockService) getCacheKey(sku string) string {
	return fmt.Sprintf("stock:%s", sku)
}

// CreateStock registers a new SKU. The lookup below is an early exit; the
// unique sku index in the store is what rejects a concurrent duplicate.
func (s *StockService) CreateStock(ctx context.Context, idempotencyKey string, request *dto.CreateStockRequest) (*domain.Stock, error) {
	if idempotencyKey == "" || s.idempotency == nil {
		return s.createStock(ctx, request)
	}

	payloadHash, err := utils.HashJSON(request)
	if err != nil {
		return nil, err
	}

	return s.idempotency.Do(ctx, idempotencyKey, payloadHash, func(ctx context.Context) (*domain.Stock, error) {
		return s.createStock(ctx, request)
	})
}

// createStock checks the sku before validating the rest of the request, so an
// existing sku is reported as a conflict whatever else is wrong.
func (s *StockService) createStock(ctx context.Context, request *dto.CreateStockRequest) (*domain.Stock, error) {
	sku := strings.TrimSpace(request.Sku)

	existing, err := s.stockRepository.FindBySku(ctx, sku)
	if err != nil {
		logger.Error(ctx, "stock: lookup by sku failed", err, map[string]any{"sku": sku})
		return nil, err
	}
	if existing != nil {
		logger.Warn(ctx, "stock: sku already exists", map[string]any{"sku": sku})
		return nil, serviceerrors.NewConflictError("stock for sku already exists")
	}

	stock, err := domain.NewStock(s.newID(), sku, request.Name, request.Quantity)
	if err != nil {
		return nil, serviceerrors.FromDomain(err)
	}

	err = s.persist(ctx, stock, domain.NewStockCreatedEvent(stock))
	if err != nil {
		logger.Error(ctx, "stock: create failed", err, map[string]any{
			"sku":      stock.Sku,
			"name":     stock.Name,
			"quantity": stock.Quantity,
		})
		return nil, err
	}

	logger.Info(ctx, "Stock created", map[string]any{"stock_id": stock.ID, "sku": stock.Sku})
	return stock, nil
}

// FindStock reads through the cache. Entries are only filled here; writes
// evict them.
func (s *StockService) FindStock(ctx context.Context, sku string) (*domain.Stock, error) {
	sku = strings.TrimSpace(sku)
	cached, err := s.stockCache.Get(ctx, s.getCacheKey(sku))
	if err != nil {
		logger.Error(ctx, "cache: get stock failed", err, map[string]any{"sku": sku})
	}
	if cached != nil {
		return cached, nil
	}

	stock, err := s.stockRepository.FindBySku(ctx, sku)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("stock not found with sku: %s", sku))
	}

	s.cacheStock(ctx, stock)
	return stock, nil
}

func (s *StockService) FindAllStocks(ctx context.Context) ([]*domain.Stock, error) {
	stocks, err := s.stockRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if stocks == nil {
		stocks = []*domain.Stock{}
	}

	logger.Debug(ctx, "Stocks listed", map[string]any{"count": len(stocks)})
	return stocks, nil
}

// AdjustStock is a read-modify-write; the version check in Save turns a lost
// update into a conflict.
func (s *StockService) AdjustStock(ctx context.Context, sku string, request *dto.AdjustStockRequest) (*domain.Stock, error) {
	sku = strings.TrimSpace(sku)
	stock, err := s.stockRepository.FindBySku(ctx, sku)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("stock not found for sku: %s", sku))
	}

	oldQuantity := stock.Quantity
	if err := applyAdjustment(stock, request.Operation, request.Quantity); err != nil {
		return nil, err
	}

	event := domain.NewStockAdjustedEvent(stock, request.Operation, request.Quantity, oldQuantity)
	if err := s.persist(ctx, stock, event); err != nil {
		logger.Error(ctx, "stock: adjust failed", err, map[string]any{
			"sku":       sku,
			"operation": string(request.Operation),
			"quantity":  request.Quantity,
		})
		return nil, err
	}

	s.evictStock(ctx, stock.Sku)

	logger.Info(ctx, "Stock adjusted", map[string]any{
		"sku":          sku,
		"operation":    string(request.Operation),
		"old_quantity": oldQuantity,
		"new_quantity": stock.Quantity,
	})
	return stock, nil
}

func (s *StockService) DeleteStock(ctx context.Context, id domain.ID) error {
	stock, err := s.stockRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if stock == nil {
		return serviceerrors.NewNotFoundError(fmt.Sprintf("stock not found with id: %s", id))
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.stockRepository.DeleteByID(txCtx, id); err != nil {
			return err
		}
		return s.events.Record(txCtx, domain.NewStockDeletedEvent(stock, time.Now()))
	})
	if err != nil {
		logger.Error(ctx, "stock: delete failed", err, map[string]any{"stock_id": id})
		return err
	}

	s.evictStock(ctx, stock.Sku)

	logger.Info(ctx, "Stock deleted", map[string]any{"stock_id": id, "sku": stock.Sku})
	return nil
}

// persist saves the stock and records its event in one transaction.
func (s *StockService) persist(ctx context.Context, stock *domain.Stock, event domain.Event) error {
	version := stock.Version
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// the body may be retried on a transient error, Save must start from the loaded version
		stock.Version = version
		if err := s.stockRepository.Save(txCtx, stock); err != nil {
			return err
		}
		return s.events.Record(txCtx, event)
	})
}

func (s *StockService) cacheStock(ctx context.Context, stock *domain.Stock) {
	if err := s.stockCache.Set(ctx, s.getCacheKey(stock.Sku), stock, s.cacheTTL); err != nil {
		logger.Error(ctx, "cache: set stock failed", err, map[string]any{"sku": stock.Sku})
	}
}

func (s *StockService) evictStock(ctx context.Context, sku string) {
	if err := s.stockCache.Del(ctx, s.getCacheKey(sku)); err != nil {
		logger.Error(ctx, "cache: evict stock failed", err, map[string]any{"sku": sku})
	}
}
