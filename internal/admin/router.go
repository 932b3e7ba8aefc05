package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handler "auction-service/services/auction/handler"
)

// SetupRouter configures the read-only admin API. It observes the same
// ledger the TCP sessions bid against but never mutates it.
func SetupRouter(service handler.AuctionServiceInterface) *gin.Engine {
	router := gin.New() // no default middleware, logging stays under our control

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(service)

	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winning", auctionHandler.GetWinningBidHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
