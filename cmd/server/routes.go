package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wallet-ledger.backend/internal/interfaces/http/handlers"
	"wallet-ledger.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	walletHandler *handlers.WalletHandler
	txHandler     *handlers.TransactionHandler
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		wallets := v1.Group("/wallets")
		{
			wallets.POST("", d.walletHandler.CreateWallet)
			wallets.GET("", d.walletHandler.ListWallets)
			wallets.POST("/transfer", middleware.IdempotencyMiddleware(), d.walletHandler.Transfer)
			wallets.GET("/:id", d.walletHandler.GetWallet)
			wallets.PATCH("/:id", d.walletHandler.UpdateWallet)
			wallets.DELETE("/:id", d.walletHandler.DeleteWallet)
			wallets.GET("/:id/balance", d.walletHandler.GetBalance)
			wallets.POST("/:id/deposit", middleware.IdempotencyMiddleware(), d.walletHandler.Deposit)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", d.txHandler.CreateTransaction)
			transactions.GET("", d.txHandler.ListTransactions)
			transactions.GET("/:id", d.txHandler.GetTransaction)
			transactions.PATCH("/:id", d.txHandler.AmendTransaction)
			transactions.DELETE("/:id", d.txHandler.DeleteTransaction)
		}
	}
}
