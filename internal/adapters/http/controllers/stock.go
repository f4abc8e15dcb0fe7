package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/dto"
	"github.com/rafaelleal24/stock/internal/core/service"
	"github.com/rafaelleal24/stock/internal/core/serviceerrors"
)

type StockController struct {
	stockService *service.StockService
}

type StockResponse struct {
	ID        string    `json:"id"`
	Sku       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewStockResponse(stock *domain.Stock) StockResponse {
	return StockResponse{
		ID:        string(stock.ID),
		Sku:       stock.Sku,
		Name:      stock.Name,
		Quantity:  stock.Quantity,
		CreatedAt: stock.CreatedAt,
		UpdatedAt: stock.UpdatedAt,
	}
}

func NewStockController(stockService *service.StockService) *StockController {
	return &StockController{stockService: stockService}
}

// CreateStock godoc
// @Summary     Create a stock
// @Description Registers a new SKU with its initial quantity
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "Idempotency key"
// @Param       request         body     dto.CreateStockRequest true  "Stock data"
// @Success     201             {object} StockResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /api/v1/stocks [post]
func (sc *StockController) CreateStock(c *gin.Context) {
	var request dto.CreateStockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	stock, err := sc.stockService.CreateStock(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewStockResponse(stock))
}

// GetStock godoc
// @Summary     Get a stock by SKU
// @Tags        stocks
// @Produce     json
// @Param       sku path     string true "SKU"
// @Success     200 {object} StockResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/stocks/{sku} [get]
func (sc *StockController) GetStock(c *gin.Context) {
	stock, err := sc.stockService.FindStock(c.Request.Context(), c.Param("sku"))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStockResponse(stock))
}

// GetAll godoc
// @Summary     List all stocks
// @Tags        stocks
// @Produce     json
// @Success     200 {array}  StockResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/stocks [get]
func (sc *StockController) GetAll(c *gin.Context) {
	stocks, err := sc.stockService.FindAllStocks(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]StockResponse, len(stocks))
	for i, stock := range stocks {
		response[i] = NewStockResponse(stock)
	}

	c.JSON(http.StatusOK, response)
}

// AdjustStock godoc
// @Summary     Adjust the quantity of a stock
// @Description Increases or decreases the quantity held for a SKU
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Param       sku     path     string                 true "SKU"
// @Param       request body     dto.AdjustStockRequest true "Operation and amount"
// @Success     200     {object} StockResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /api/v1/stocks/{sku} [put]
func (sc *StockController) AdjustStock(c *gin.Context) {
	var request dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	request.Operation = domain.StockOperation(strings.ToUpper(string(request.Operation)))

	stock, err := sc.stockService.AdjustStock(c.Request.Context(), c.Param("sku"), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStockResponse(stock))
}

// DeleteStock godoc
// @Summary     Delete a stock
// @Tags        stocks
// @Param       id  path     string true "Stock ID"
// @Success     204
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/stocks/{id} [delete]
func (sc *StockController) DeleteStock(c *gin.Context) {
	if err := sc.stockService.DeleteStock(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
