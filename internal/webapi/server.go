// Package webapi exposes the catalog and exchange rate endpoints over
// HTTP using echo.
package webapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kysrn-ww/mathi-phone/internal/catalog"
	"github.com/kysrn-ww/mathi-phone/internal/store"
)

type Server struct {
	catalog *catalog.Service
	store   store.Store
}

func NewServer(cs *catalog.Service, st store.Store) *Server {
	return &Server{catalog: cs, store: st}
}

// Echo builds the router with all API routes registered under /api.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	api.GET("/info", s.info)

	api.GET("/products", s.listProducts)
	api.POST("/products", s.createProduct)
	api.GET("/products/:id", s.getProduct)
	api.PUT("/products/:id", s.updateProduct)
	api.DELETE("/products/:id", s.deleteProduct)

	api.GET("/exchange-rates", s.getExchangeRates)

	api.POST("/status", s.createStatusCheck)
	api.GET("/status", s.listStatusChecks)

	return e
}

func (s *Server) info(c echo.Context) error {
	return ok(c, map[string]string{
		"message": "Mathi Phone API",
		"version": "1.0.0",
	})
}
