package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"github.com/rafaelleal24/stock/internal/adapters/config"
	"github.com/rafaelleal24/stock/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stock/internal/adapters/http/handlers"
	"github.com/rafaelleal24/stock/internal/adapters/http/middleware"
)

type Router struct {
	healthController *controllers.HealthController
	stockController  *controllers.StockController
	rateLimiter      middleware.RateLimiter
	rateLimit        config.RateLimitConfig
}

func NewRouter(
	healthController *controllers.HealthController,
	stockController *controllers.StockController,
	rateLimiter middleware.RateLimiter,
	rateLimit config.RateLimitConfig,
) *Router {
	return &Router{
		healthController: healthController,
		stockController:  stockController,
		rateLimiter:      rateLimiter,
		rateLimit:        rateLimit,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	limited := middleware.RateLimit(r.rateLimiter, r.rateLimit.Limit, r.rateLimit.Window)

	router.GET("/swagger/doc.json", serveSwaggerDoc)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.POST("/stocks", limited, r.stockController.CreateStock)
		v1Group.GET("/stocks", r.stockController.GetAll)
		v1Group.GET("/stocks/:sku", r.stockController.GetStock)
		v1Group.PUT("/stocks/:sku", limited, r.stockController.AdjustStock)
		v1Group.DELETE("/stocks/:id", r.stockController.DeleteStock)
	}
}

func serveSwaggerDoc(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: "api documentation not registered"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.Default()
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
