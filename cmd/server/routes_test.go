package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"refpool.backend/internal/interfaces/http/handlers"
)

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		poolHandler:      &handlers.PoolHandler{},
		affiliateHandler: &handlers.AffiliateHandler{},
		saleHandler:      &handlers.SaleHandler{},
		ledgerHandler:    &handlers.LedgerHandler{},
		authMiddleware: func(c *gin.Context) {
			c.Next()
		},
	})

	routes := r.Routes()
	if len(routes) < 15 {
		t.Fatalf("expected all routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/pools"},
		{"GET", "/api/v1/pools"},
		{"GET", "/api/v1/pools/:address"},
		{"PATCH", "/api/v1/pools/:address/commission"},
		{"PATCH", "/api/v1/pools/:address/relayer"},
		{"POST", "/api/v1/pools/:address/deactivate"},
		{"GET", "/api/v1/pools/:address/events"},
		{"POST", "/api/v1/pools/:address/escrow/deposit"},
		{"POST", "/api/v1/pools/:address/escrow/withdraw"},
		{"POST", "/api/v1/pools/:address/affiliates"},
		{"GET", "/api/v1/pools/:address/affiliates/:wallet"},
		{"POST", "/api/v1/pools/:address/affiliates/:wallet/remove"},
		{"POST", "/api/v1/pools/:address/affiliates/:wallet/sales"},
		{"GET", "/api/v1/ledger/balance"},
		{"GET", "/api/v1/ledger/balances/:wallet"},
		{"POST", "/api/v1/ledger/mint"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_RouteResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		poolHandler:      &handlers.PoolHandler{},
		affiliateHandler: &handlers.AffiliateHandler{},
		saleHandler:      &handlers.SaleHandler{},
		ledgerHandler:    &handlers.LedgerHandler{},
		authMiddleware:   func(c *gin.Context) { c.Next() },
	})

	// Smoke: unrelated helper route still works after route registration.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
