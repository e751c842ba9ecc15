package helpers

import (
	"time"

	model "fanmeet-engine/internal/models"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	CreatorID              string    `json:"creator_id" binding:"required"`
	BasePrice              int64     `json:"base_price" binding:"required,gt=0"`
	BiddingClosesAt        time.Time `json:"bidding_closes_at" binding:"required"`
	MeetingScheduledAt     time.Time `json:"meeting_scheduled_at" binding:"required"`
	MeetingDurationMinutes int       `json:"meeting_duration_minutes" binding:"required,gt=0"`
}

type PlaceBidRequest struct {
	BidderID string `json:"bidder_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

type AuctionResponse struct {
	AuctionID              string `json:"auction_id"`
	CreatorID              string `json:"creator_id"`
	BasePrice              int64  `json:"base_price"`
	BiddingClosesAt        string `json:"bidding_closes_at"`
	MeetingScheduledAt     string `json:"meeting_scheduled_at"`
	MeetingDurationMinutes int    `json:"meeting_duration_minutes"`
	Status                 string `json:"status"`
	ClosedAt               string `json:"closed_at,omitempty"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	AuctionID string `json:"auction_id"`
	BidderID  string `json:"bidder_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	PlacedAt  string `json:"placed_at"`
	RefundID  string `json:"refund_id,omitempty"`
}

type StartMeetingRequest struct {
	CreatorID string `json:"creator_id" binding:"required"`
}

type ParticipantRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

type CancelMeetingRequest struct {
	Reason string `json:"reason"`
}

// NewAuctionResponse renders an auction with RFC3339 times
func NewAuctionResponse(a model.Auction) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:              a.AuctionID,
		CreatorID:              a.CreatorID,
		BasePrice:              a.BasePrice,
		BiddingClosesAt:        a.BiddingClosesAt.UTC().Format(time.RFC3339),
		MeetingScheduledAt:     a.MeetingScheduledAt.UTC().Format(time.RFC3339),
		MeetingDurationMinutes: a.MeetingDurationMinutes,
		Status:                 string(a.Status),
	}
	if a.ClosedAt != nil {
		resp.ClosedAt = a.ClosedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// NewBidResponse renders a bid with an RFC3339 placement time
func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		Status:    string(b.Status),
		PlacedAt:  b.PlacedAt.UTC().Format(time.RFC3339Nano),
		RefundID:  b.RefundID,
	}
}
