package main

import (
	"github.com/gin-gonic/gin"

	"refpool.backend/internal/interfaces/http/handlers"
	"refpool.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	poolHandler      *handlers.PoolHandler
	affiliateHandler *handlers.AffiliateHandler
	saleHandler      *handlers.SaleHandler
	ledgerHandler    *handlers.LedgerHandler
	authMiddleware   gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware)
	{
		// Pool routes
		pools := v1.Group("/pools")
		{
			pools.POST("", d.poolHandler.InitializePool)
			pools.GET("", d.poolHandler.ListPools)
			pools.GET("/:address", d.poolHandler.GetPool)
			pools.PATCH("/:address/commission", d.poolHandler.UpdateCommission)
			pools.PATCH("/:address/relayer", d.poolHandler.UpdateRelayer)
			pools.POST("/:address/deactivate", d.poolHandler.Deactivate)
			pools.GET("/:address/events", d.poolHandler.ListEvents)

			// Escrow money movement (idempotent)
			pools.POST("/:address/escrow/deposit", middleware.IdempotencyMiddleware(), d.poolHandler.DepositEscrow)
			pools.POST("/:address/escrow/withdraw", middleware.IdempotencyMiddleware(), d.poolHandler.WithdrawEscrow)

			// Affiliate routes
			pools.POST("/:address/affiliates", d.affiliateHandler.AddAffiliate)
			pools.GET("/:address/affiliates", d.affiliateHandler.ListAffiliates)
			pools.GET("/:address/affiliates/:wallet", d.affiliateHandler.GetAffiliate)
			pools.POST("/:address/affiliates/:wallet/remove", d.affiliateHandler.RemoveAffiliate)

			// Sale reporting (idempotent)
			pools.POST("/:address/affiliates/:wallet/sales", middleware.IdempotencyMiddleware(), d.saleHandler.ProcessSale)
		}

		// Ledger routes
		ledger := v1.Group("/ledger")
		{
			ledger.GET("/balance", d.ledgerHandler.GetOwnBalance)
			ledger.GET("/balances/:wallet", d.ledgerHandler.GetBalance)
			ledger.POST("/mint", middleware.RequireAdmin(), d.ledgerHandler.Mint)
		}
	}
}
