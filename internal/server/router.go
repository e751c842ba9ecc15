package server

import (
	"net/http"

	bidding "fanmeet-engine/internal/biddingService"
	"fanmeet-engine/internal/eventlog"
	"fanmeet-engine/internal/lifecycle"
	"fanmeet-engine/internal/metrics"
	biddinghandler "fanmeet-engine/services/bidding/handler"
	meetinghandler "fanmeet-engine/services/meeting/handler"
	"fanmeet-engine/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.BiddingService, lifecycleService *lifecycle.Service, events *eventlog.Log) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(PrometheusMiddleware)

	biddingHandler := biddinghandler.NewBiddingHandler(biddingService, lifecycleService)
	meetingHandler := meetinghandler.NewMeetingHandler(lifecycleService, events)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", biddingHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", biddingHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsHandler)
		auctions.GET("/:auction_id/leader", biddingHandler.GetLeaderHandler)
		auctions.GET("/:auction_id/bidders/:bidder_id", biddingHandler.GetBidderStandingHandler)
		auctions.POST("/:auction_id/close", biddingHandler.CloseAuctionHandler)
		auctions.GET("/:auction_id/meeting", meetingHandler.GetAuctionMeetingHandler)
		auctions.GET("/:auction_id/events", meetingHandler.GetAuctionEventsHandler)
	}

	meetings := router.Group("/meetings")
	{
		meetings.GET("/:meeting_id", meetingHandler.GetMeetingHandler)
		meetings.POST("/:meeting_id/start", meetingHandler.StartMeetingHandler)
		meetings.POST("/:meeting_id/join", meetingHandler.JoinMeetingHandler)
		meetings.POST("/:meeting_id/end", meetingHandler.EndMeetingHandler)
		meetings.POST("/:meeting_id/cancel", meetingHandler.CancelMeetingHandler)
		meetings.GET("/:meeting_id/events", meetingHandler.GetMeetingEventsHandler)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/sweep", meetingHandler.SweepHandler)
	}

	router.GET("/metrics", gin.WrapH(metrics.NewHandler()))
	router.GET("/healthz", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"healthy": true}, "ok")
	})

	return router
}
