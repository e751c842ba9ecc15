package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fanmeet-engine/internal/engineerrors"
	model "fanmeet-engine/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of Store
type MemoryRepo struct {
	mu             sync.RWMutex
	auctions       map[string]model.Auction // key: auctionID -> value: auction
	bids           map[string][]model.Bid   // key: auctionID -> value: bids in insertion order
	bidAuction     map[string]string        // key: bidID -> value: auctionID
	meetings       map[string]model.Meeting // key: meetingID -> value: meeting
	meetingByEvent map[string]string        // key: eventID -> value: meetingID
	logEntries     []model.LogEntry
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:       make(map[string]model.Auction),
		bids:           make(map[string][]model.Bid),
		bidAuction:     make(map[string]string),
		meetings:       make(map[string]model.Meeting),
		meetingByEvent: make(map[string]string),
	}
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(_ context.Context, auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, engineerrors.ErrConflict)
	}
	r.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, engineerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// GetBidsByAuction returns every bid row of an auction in placement order
func (r *MemoryRepo) GetBidsByAuction(_ context.Context, auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, engineerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid(nil), r.bids[auctionID]...), nil
}

// RecordBid inserts a bid and retires the bidder's previous active row, provided
// the auction is still open at expectedVersion
func (r *MemoryRepo) RecordBid(_ context.Context, bid model.Bid, expectedVersion int64, retireBidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, engineerrors.ErrAuctionNotFound)
	}
	if auction.Status != model.AuctionOpen {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, engineerrors.ErrAuctionClosed)
	}
	if auction.Version != expectedVersion {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, engineerrors.ErrConflict)
	}

	bids := r.bids[bid.AuctionID]
	if retireBidID != "" {
		idx := -1
		for i := range bids {
			if bids[i].BidID == retireBidID && bids[i].Status == model.BidActive {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("retire bid %s: %w", retireBidID, engineerrors.ErrConflict)
		}
		bids[idx].Status = model.BidOutbid
	}

	auction.Version++
	r.auctions[bid.AuctionID] = auction
	r.bids[bid.AuctionID] = append(bids, bid)
	r.bidAuction[bid.BidID] = bid.AuctionID
	return nil
}

// FinalizeAuction closes the auction and resolves every active bid to won or lost
func (r *MemoryRepo) FinalizeAuction(_ context.Context, auctionID string, expectedVersion int64, winnerBidID string, closedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("finalize auction %s: %w", auctionID, engineerrors.ErrAuctionNotFound)
	}
	if auction.Version != expectedVersion || auction.Status != model.AuctionOpen {
		return fmt.Errorf("finalize auction %s: %w", auctionID, engineerrors.ErrConflict)
	}

	bids := r.bids[auctionID]
	for i := range bids {
		if bids[i].Status != model.BidActive {
			continue
		}
		if bids[i].BidID == winnerBidID {
			bids[i].Status = model.BidWon
		} else {
			bids[i].Status = model.BidLost
		}
	}

	closed := closedAt
	auction.Status = model.AuctionClosed
	auction.ClosedAt = &closed
	auction.Version++
	r.auctions[auctionID] = auction
	return nil
}

// SetBidRefund stores the refund reference of a bid once; later calls are ignored
func (r *MemoryRepo) SetBidRefund(_ context.Context, bidID, refundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auctionID, ok := r.bidAuction[bidID]
	if !ok {
		return fmt.Errorf("set refund for bid %s: %w", bidID, engineerrors.ErrNoBids)
	}
	bids := r.bids[auctionID]
	for i := range bids {
		if bids[i].BidID == bidID && bids[i].RefundID == "" {
			bids[i].RefundID = refundID
		}
	}
	return nil
}

// ListAuctionsDue returns open auctions whose bidding window has passed
func (r *MemoryRepo) ListAuctionsDue(_ context.Context, now time.Time) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []model.Auction
	for _, a := range r.auctions {
		if a.Status == model.AuctionOpen && !now.Before(a.BiddingClosesAt) {
			due = append(due, a)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].BiddingClosesAt.Before(due[j].BiddingClosesAt) })
	return due, nil
}

// ListUnrefundedLostBids returns lost bids that have no refund reference yet
func (r *MemoryRepo) ListUnrefundedLostBids(_ context.Context) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []model.Bid
	for _, bids := range r.bids {
		for _, b := range bids {
			if b.Status == model.BidLost && b.RefundID == "" {
				pending = append(pending, b)
			}
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].PlacedBefore(pending[j]) })
	return pending, nil
}

// CreateMeeting stores a meeting; an existing meeting for the same event is returned instead
func (r *MemoryRepo) CreateMeeting(_ context.Context, meeting model.Meeting) (model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.meetingByEvent[meeting.EventID]; ok {
		return r.meetings[id], nil
	}
	r.meetings[meeting.MeetingID] = meeting
	r.meetingByEvent[meeting.EventID] = meeting.MeetingID
	return meeting, nil
}

// GetMeeting returns a meeting by id
func (r *MemoryRepo) GetMeeting(_ context.Context, meetingID string) (model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.meetings[meetingID]
	if !ok {
		return model.Meeting{}, fmt.Errorf("get meeting %s: %w", meetingID, engineerrors.ErrMeetingNotFound)
	}
	return m, nil
}

// GetMeetingByEvent returns the meeting created for an event
func (r *MemoryRepo) GetMeetingByEvent(_ context.Context, eventID string) (model.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.meetingByEvent[eventID]
	if !ok {
		return model.Meeting{}, fmt.Errorf("get meeting for event %s: %w", eventID, engineerrors.ErrMeetingNotFound)
	}
	return r.meetings[id], nil
}

// UpdateMeeting replaces the meeting only if its stored version equals expectedVersion
func (r *MemoryRepo) UpdateMeeting(_ context.Context, meeting model.Meeting, expectedVersion int64) (model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.meetings[meeting.MeetingID]
	if !ok {
		return model.Meeting{}, fmt.Errorf("update meeting %s: %w", meeting.MeetingID, engineerrors.ErrMeetingNotFound)
	}
	if current.Version != expectedVersion {
		return model.Meeting{}, fmt.Errorf("update meeting %s: %w", meeting.MeetingID, engineerrors.ErrConflict)
	}

	meeting.Version = expectedVersion + 1
	r.meetings[meeting.MeetingID] = meeting
	return meeting, nil
}

// ListScheduledBefore returns scheduled meetings whose start is at or before cutoff
func (r *MemoryRepo) ListScheduledBefore(_ context.Context, cutoff time.Time) ([]model.Meeting, error) {
	return r.filterMeetings(func(m model.Meeting) bool {
		return m.Status == model.MeetingScheduled && !m.ScheduledAt.After(cutoff)
	}), nil
}

// ListLiveEndedBy returns live meetings whose scheduled end is at or before now
func (r *MemoryRepo) ListLiveEndedBy(_ context.Context, now time.Time) ([]model.Meeting, error) {
	return r.filterMeetings(func(m model.Meeting) bool {
		return m.Status == model.MeetingLive && !m.EndsAt.After(now)
	}), nil
}

// ListUnsettled returns terminal meetings whose money movement has not been recorded
func (r *MemoryRepo) ListUnsettled(_ context.Context) ([]model.Meeting, error) {
	return r.filterMeetings(func(m model.Meeting) bool {
		return (m.Status == model.MeetingCancelledNoShowCreator && m.RefundID == "") ||
			(m.Status == model.MeetingCompleted && m.PayoutID == "")
	}), nil
}

// ListWinnersWithoutMeeting returns won bids whose auction has no meeting yet
func (r *MemoryRepo) ListWinnersWithoutMeeting(_ context.Context) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orphaned []model.Bid
	for auctionID, bids := range r.bids {
		if _, ok := r.meetingByEvent[auctionID]; ok {
			continue
		}
		for _, b := range bids {
			if b.Status == model.BidWon {
				orphaned = append(orphaned, b)
			}
		}
	}
	sort.Slice(orphaned, func(i, j int) bool { return orphaned[i].PlacedBefore(orphaned[j]) })
	return orphaned, nil
}

func (r *MemoryRepo) filterMeetings(keep func(model.Meeting) bool) []model.Meeting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Meeting
	for _, m := range r.meetings {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

// AppendLogEntry appends an entry to the event log
func (r *MemoryRepo) AppendLogEntry(_ context.Context, entry model.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logEntries = append(r.logEntries, entry)
	return nil
}

// GetLogEntriesByMeeting returns the entries of a meeting in append order
func (r *MemoryRepo) GetLogEntriesByMeeting(_ context.Context, meetID string) ([]model.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.LogEntry
	for _, e := range r.logEntries {
		if e.MeetID == meetID {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetLogEntriesByAuction returns the entries of an auction in append order
func (r *MemoryRepo) GetLogEntriesByAuction(_ context.Context, auctionID string) ([]model.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.LogEntry
	for _, e := range r.logEntries {
		if e.AuctionID == auctionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store
func (r *MemoryRepo) Close() error { return nil }
