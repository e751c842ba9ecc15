package handler

import (
	"context"
	"net/http"

	bidding "fanmeet-engine/internal/biddingService"
	"fanmeet-engine/internal/lifecycle"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/services/helpers"
	"fanmeet-engine/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	CreateAuction(ctx context.Context, auction model.Auction) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (model.Bid, error)
	GetBids(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetLeader(ctx context.Context, auctionID string) (bidding.Standing, error)
	GetBidderStanding(ctx context.Context, auctionID, bidderID string) (bidding.BidderStanding, error)
}

// AuctionFinalizer closes an auction and schedules its meeting
type AuctionFinalizer interface {
	FinalizeAuction(ctx context.Context, auctionID string) (lifecycle.Finalization, error)
}

type BiddingHandler struct {
	service   BiddingServiceInterface
	finalizer AuctionFinalizer
}

func NewBiddingHandler(service BiddingServiceInterface, finalizer AuctionFinalizer) *BiddingHandler {
	return &BiddingHandler{service: service, finalizer: finalizer}
}

// CreateAuctionHandler handles POST /auctions
func (h *BiddingHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), model.Auction{
		CreatorID:              req.CreatorID,
		BasePrice:              req.BasePrice,
		BiddingClosesAt:        req.BiddingClosesAt,
		MeetingScheduledAt:     req.MeetingScheduledAt,
		MeetingDurationMinutes: req.MeetingDurationMinutes,
	})
	if err != nil {
		helpers.RespondServiceError(c, "CreateAuctionHandler", err, map[string]any{"creator_id": req.CreatorID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(auction), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"creator_id": auction.CreatorID,
		"base_price": auction.BasePrice,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), auctionID, req.BidderID, req.Amount)
	if err != nil {
		helpers.RespondServiceError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"bidder_id":  req.BidderID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"bidder_id":  req.BidderID,
		"amount":     bid.Amount,
	})
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBids(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "GetBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetLeaderHandler handles GET /auctions/:auction_id/leader
func (h *BiddingHandler) GetLeaderHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	standing, err := h.service.GetLeader(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "GetLeaderHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, standing, "leader retrieved successfully")
}

// GetBidderStandingHandler handles GET /auctions/:auction_id/bidders/:bidder_id
func (h *BiddingHandler) GetBidderStandingHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bidderID := c.Param("bidder_id")
	standing, err := h.service.GetBidderStanding(c.Request.Context(), auctionID, bidderID)
	if err != nil {
		helpers.RespondServiceError(c, "GetBidderStandingHandler", err, map[string]any{"auction_id": auctionID, "bidder_id": bidderID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, standing, "bidder standing retrieved successfully")
}

// CloseAuctionHandler handles POST /auctions/:auction_id/close
func (h *BiddingHandler) CloseAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	result, err := h.finalizer.FinalizeAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "CloseAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, result, "auction closed successfully")
	fields := map[string]any{"auction_id": auctionID, "losers": len(result.LosingBids)}
	if result.WinningBid != nil {
		fields["winning_bid_id"] = result.WinningBid.BidID
	}
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", fields)
}
