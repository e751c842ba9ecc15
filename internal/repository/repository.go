package repository

//go:generate mockgen -destination=mock_repository.go -package=repository fanmeet-engine/internal/repository AuctionDB,MeetingDB,EventLogDB

import (
	"context"
	"time"

	model "fanmeet-engine/internal/models"
)

// AuctionDB defines the auction and bid storage interface. Bid writes are
// conditional on the auction version so validation and insert commit together.
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	RecordBid(ctx context.Context, bid model.Bid, expectedVersion int64, retireBidID string) error
	FinalizeAuction(ctx context.Context, auctionID string, expectedVersion int64, winnerBidID string, closedAt time.Time) error
	SetBidRefund(ctx context.Context, bidID, refundID string) error
	ListAuctionsDue(ctx context.Context, now time.Time) ([]model.Auction, error)
	ListUnrefundedLostBids(ctx context.Context) ([]model.Bid, error)
}

// MeetingDB defines the meeting storage interface. UpdateMeeting is a
// compare-and-swap on the meeting version.
type MeetingDB interface {
	CreateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error)
	GetMeeting(ctx context.Context, meetingID string) (model.Meeting, error)
	GetMeetingByEvent(ctx context.Context, eventID string) (model.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting model.Meeting, expectedVersion int64) (model.Meeting, error)
	ListScheduledBefore(ctx context.Context, cutoff time.Time) ([]model.Meeting, error)
	ListLiveEndedBy(ctx context.Context, now time.Time) ([]model.Meeting, error)
	ListUnsettled(ctx context.Context) ([]model.Meeting, error)
	ListWinnersWithoutMeeting(ctx context.Context) ([]model.Bid, error)
}

// EventLogDB is the append-only store behind the event log
type EventLogDB interface {
	AppendLogEntry(ctx context.Context, entry model.LogEntry) error
	GetLogEntriesByMeeting(ctx context.Context, meetID string) ([]model.LogEntry, error)
	GetLogEntriesByAuction(ctx context.Context, auctionID string) ([]model.LogEntry, error)
}

// Store bundles every storage concern of the engine
type Store interface {
	AuctionDB
	MeetingDB
	EventLogDB
	Close() error
}
