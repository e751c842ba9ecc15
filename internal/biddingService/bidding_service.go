package bidding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"fanmeet-engine/internal/engineerrors"
	"fanmeet-engine/internal/metrics"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/internal/repository"
	"fanmeet-engine/utils"
)

const (
	DefaultBidStep     = 50
	DefaultMaxAttempts = 5
)

// EventRecorder receives auction events for the audit log
type EventRecorder interface {
	AuctionEvent(ctx context.Context, auctionID, eventType string, metadata map[string]string)
}

type noopRecorder struct{}

func (noopRecorder) AuctionEvent(context.Context, string, string, map[string]string) {}

// BiddingService is the auction ledger: bid validation, derived leader and finalization
type BiddingService struct {
	repo     repository.AuctionDB
	events   EventRecorder
	bidStep  int64
	attempts int
	now      func() time.Time
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithBidStep sets the increment every raise must be a multiple of
func WithBidStep(step int64) Option {
	return func(s *BiddingService) { s.bidStep = step }
}

// WithMaxAttempts bounds how often a write is re-validated after losing a race
func WithMaxAttempts(n int) Option {
	return func(s *BiddingService) { s.attempts = n }
}

// WithEventRecorder sends auction events to rec
func WithEventRecorder(rec EventRecorder) Option {
	return func(s *BiddingService) { s.events = rec }
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) { s.now = now }
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:     repo,
		events:   noopRecorder{},
		bidStep:  DefaultBidStep,
		attempts: DefaultMaxAttempts,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bidStep <= 0 {
		s.bidStep = DefaultBidStep
	}
	if s.attempts <= 0 {
		s.attempts = DefaultMaxAttempts
	}
	return s
}

// BidStep returns the configured increment
func (s *BiddingService) BidStep() int64 { return s.bidStep }

// CreateAuction opens bidding for an event
func (s *BiddingService) CreateAuction(ctx context.Context, auction model.Auction) (model.Auction, error) {
	if err := validateAuction(auction); err != nil {
		return model.Auction{}, err
	}
	if auction.AuctionID == "" {
		auction.AuctionID = utils.GenerateID()
	}
	auction.Status = model.AuctionOpen
	auction.ClosedAt = nil
	auction.Version = 0
	auction.CreatedAt = s.now()
	auction.BiddingClosesAt = auction.BiddingClosesAt.UTC()
	auction.MeetingScheduledAt = auction.MeetingScheduledAt.UTC()

	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to create auction %s: %w", auction.AuctionID, err)
	}
	return auction, nil
}

func validateAuction(a model.Auction) error {
	switch {
	case a.CreatorID == "":
		return fmt.Errorf("service: %w - missing creatorID", engineerrors.ErrInvalidAuction)
	case a.BasePrice <= 0:
		return fmt.Errorf("service: %w - base price must be positive", engineerrors.ErrInvalidAuction)
	case a.BiddingClosesAt.IsZero():
		return fmt.Errorf("service: %w - missing bidding close time", engineerrors.ErrInvalidAuction)
	case a.MeetingDurationMinutes <= 0:
		return fmt.Errorf("service: %w - meeting duration must be positive", engineerrors.ErrInvalidAuction)
	case a.MeetingScheduledAt.Before(a.BiddingClosesAt):
		return fmt.Errorf("service: %w - meeting must be scheduled after bidding closes", engineerrors.ErrInvalidAuction)
	}
	return nil
}

// PlaceBid validates and records a bidder's cumulative amount for an auction
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (model.Bid, error) {
	bid, err := s.placeBid(ctx, auctionID, bidderID, amount)
	metrics.BidsPlaced.WithLabelValues(bidResult(err)).Inc()
	return bid, err
}

func (s *BiddingService) placeBid(ctx context.Context, auctionID, bidderID string, amount int64) (model.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", engineerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", engineerrors.ErrInvalidBid)
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		auction, bids, err := s.load(ctx, auctionID)
		if err != nil {
			return model.Bid{}, err
		}

		now := s.now()
		prior, err := s.validateBid(auction, bids, bidderID, amount, now)
		if err != nil {
			return model.Bid{}, err
		}

		bid := model.Bid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    amount,
			Status:    model.BidActive,
			PlacedAt:  now,
			Seq:       auction.Version + 1,
		}
		retire := ""
		if prior != nil {
			retire = prior.BidID
		}

		err = s.repo.RecordBid(ctx, bid, auction.Version, retire)
		if errors.Is(err, engineerrors.ErrConflict) {
			continue
		}
		if err != nil {
			return model.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by bidder %s: %w", auctionID, bidderID, err)
		}

		s.events.AuctionEvent(ctx, auctionID, model.EventBidPlaced, map[string]string{
			"bid_id":    bid.BidID,
			"bidder_id": bidderID,
			"amount":    strconv.FormatInt(amount, 10),
		})
		return bid, nil
	}

	return model.Bid{}, fmt.Errorf("service: bid for auction %s by bidder %s: %w", auctionID, bidderID, engineerrors.ErrConflict)
}

// validateBid applies the ledger rules and returns the bidder's active row, if any
func (s *BiddingService) validateBid(auction model.Auction, bids []model.Bid, bidderID string, amount int64, now time.Time) (*model.Bid, error) {
	if auction.Status != model.AuctionOpen || !now.Before(auction.BiddingClosesAt) {
		return nil, fmt.Errorf("service: %w - bidding for %s closed at %s", engineerrors.ErrAuctionClosed, auction.AuctionID, auction.BiddingClosesAt.Format(time.RFC3339))
	}

	prior := activeBidOf(bids, bidderID)
	if prior == nil {
		if amount != auction.BasePrice {
			return nil, fmt.Errorf("service: %w - first bid must be %d", engineerrors.ErrInvalidFirstBid, auction.BasePrice)
		}
	} else {
		raise := amount - prior.Amount
		if raise <= 0 || raise%s.bidStep != 0 {
			return nil, fmt.Errorf("service: %w - current amount %d, step %d", engineerrors.ErrInvalidIncrement, prior.Amount, s.bidStep)
		}
	}

	if leading := LeadingAmount(auction, bids); amount < leading {
		return nil, fmt.Errorf("service: %w - current highest bid is %d", engineerrors.ErrBidTooLow, leading)
	}
	return prior, nil
}

func activeBidOf(bids []model.Bid, bidderID string) *model.Bid {
	for i := range bids {
		if bids[i].BidderID == bidderID && bids[i].Status == model.BidActive {
			return &bids[i]
		}
	}
	return nil
}

// Leader returns the highest active bid; the earliest bid at an amount wins ties
func Leader(bids []model.Bid) *model.Bid {
	var leader *model.Bid
	for i := range bids {
		b := &bids[i]
		if b.Status != model.BidActive {
			continue
		}
		if leader == nil || b.Amount > leader.Amount || (b.Amount == leader.Amount && b.PlacedBefore(*leader)) {
			leader = b
		}
	}
	return leader
}

// LeadingAmount is max(basePrice, highest active amount)
func LeadingAmount(auction model.Auction, bids []model.Bid) int64 {
	if leader := Leader(bids); leader != nil && leader.Amount > auction.BasePrice {
		return leader.Amount
	}
	return auction.BasePrice
}

func (s *BiddingService) load(ctx context.Context, auctionID string) (model.Auction, []model.Bid, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, nil, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	bids, err := s.repo.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return auction, bids, nil
}

// CloseAuction marks the leader won and every other active bid lost. Calling
// it again returns the stored outcome without writing.
func (s *BiddingService) CloseAuction(ctx context.Context, auctionID string) (model.FinalizationResult, error) {
	if auctionID == "" {
		return model.FinalizationResult{}, fmt.Errorf("service: %w - empty auction ID", engineerrors.ErrInvalidAuction)
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		auction, bids, err := s.load(ctx, auctionID)
		if err != nil {
			return model.FinalizationResult{}, err
		}
		if auction.Status == model.AuctionClosed {
			return finalizationFromRows(auctionID, bids), nil
		}

		winnerID := ""
		if leader := Leader(bids); leader != nil {
			winnerID = leader.BidID
		}

		err = s.repo.FinalizeAuction(ctx, auctionID, auction.Version, winnerID, s.now())
		if errors.Is(err, engineerrors.ErrConflict) {
			continue
		}
		if err != nil {
			return model.FinalizationResult{}, fmt.Errorf("service: failed to finalize auction %s: %w", auctionID, err)
		}

		_, bids, err = s.load(ctx, auctionID)
		if err != nil {
			return model.FinalizationResult{}, err
		}
		result := finalizationFromRows(auctionID, bids)

		meta := map[string]string{"losers": strconv.Itoa(len(result.LosingBids))}
		if result.WinningBid != nil {
			meta["winning_bid_id"] = result.WinningBid.BidID
			meta["winner_id"] = result.WinningBid.BidderID
			meta["amount"] = strconv.FormatInt(result.WinningBid.Amount, 10)
		}
		s.events.AuctionEvent(ctx, auctionID, model.EventAuctionClosed, meta)
		utils.Info("auction closed", map[string]any{"auction_id": auctionID, "winner_bid_id": winnerID, "losers": len(result.LosingBids)})
		return result, nil
	}

	return model.FinalizationResult{}, fmt.Errorf("service: close auction %s: %w", auctionID, engineerrors.ErrConflict)
}

func finalizationFromRows(auctionID string, bids []model.Bid) model.FinalizationResult {
	result := model.FinalizationResult{AuctionID: auctionID, LosingBids: []model.Bid{}}
	for i := range bids {
		switch bids[i].Status {
		case model.BidWon:
			won := bids[i]
			result.WinningBid = &won
		case model.BidLost:
			result.LosingBids = append(result.LosingBids, bids[i])
		}
	}
	sort.SliceStable(result.LosingBids, func(i, j int) bool {
		return result.LosingBids[i].PlacedBefore(result.LosingBids[j])
	})
	return result
}

// GetAuction returns an auction by id
func (s *BiddingService) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", engineerrors.ErrInvalidAuction)
	}
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// GetBids returns every bid row for an auction
func (s *BiddingService) GetBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", engineerrors.ErrInvalidAuction)
	}
	bids, err := s.repo.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// Standing is the derived current state of an auction
type Standing struct {
	AuctionID     string     `json:"auction_id"`
	Status        string     `json:"status"`
	LeadingAmount int64      `json:"leading_amount"`
	Leader        *model.Bid `json:"leader"`
	ActiveBids    int        `json:"active_bids"`
}

// GetLeader computes the current highest bid on read
func (s *BiddingService) GetLeader(ctx context.Context, auctionID string) (Standing, error) {
	auction, bids, err := s.load(ctx, auctionID)
	if err != nil {
		return Standing{}, err
	}

	standing := Standing{
		AuctionID:     auctionID,
		Status:        string(auction.Status),
		LeadingAmount: LeadingAmount(auction, bids),
	}
	for _, b := range bids {
		if b.Status == model.BidActive {
			standing.ActiveBids++
		}
	}
	if auction.Status == model.AuctionClosed {
		result := finalizationFromRows(auctionID, bids)
		standing.Leader = result.WinningBid
		if result.WinningBid != nil {
			standing.LeadingAmount = result.WinningBid.Amount
		}
		return standing, nil
	}
	if leader := Leader(bids); leader != nil {
		l := *leader
		standing.Leader = &l
	}
	return standing, nil
}

// BidderStanding tells a bidder whether they lead; outbid is derived, not stored
type BidderStanding struct {
	AuctionID     string     `json:"auction_id"`
	BidderID      string     `json:"bidder_id"`
	Bid           *model.Bid `json:"bid"`
	Leading       bool       `json:"leading"`
	Outbid        bool       `json:"outbid"`
	LeadingAmount int64      `json:"leading_amount"`
	NextMinimum   int64      `json:"next_minimum"`
}

// GetBidderStanding derives a bidder's position from the current rows
func (s *BiddingService) GetBidderStanding(ctx context.Context, auctionID, bidderID string) (BidderStanding, error) {
	if bidderID == "" {
		return BidderStanding{}, fmt.Errorf("service: %w - empty bidder ID", engineerrors.ErrInvalidBid)
	}
	auction, bids, err := s.load(ctx, auctionID)
	if err != nil {
		return BidderStanding{}, err
	}

	standing := BidderStanding{
		AuctionID:     auctionID,
		BidderID:      bidderID,
		LeadingAmount: LeadingAmount(auction, bids),
		NextMinimum:   auction.BasePrice,
	}

	var own *model.Bid
	for i := range bids {
		if bids[i].BidderID != bidderID {
			continue
		}
		switch bids[i].Status {
		case model.BidActive, model.BidWon, model.BidLost:
			b := bids[i]
			own = &b
		}
	}
	if own == nil {
		return standing, nil
	}

	standing.Bid = own
	switch own.Status {
	case model.BidWon:
		standing.Leading = true
	case model.BidLost:
		standing.Outbid = true
	default:
		leader := Leader(bids)
		standing.Leading = leader != nil && leader.BidID == own.BidID
		standing.Outbid = !standing.Leading
		standing.NextMinimum = nextRaise(own.Amount, standing.LeadingAmount, s.bidStep)
	}
	return standing, nil
}

// nextRaise is the smallest own+k*step that reaches the leading amount
func nextRaise(own, leading, step int64) int64 {
	if own >= leading {
		return own + step
	}
	k := (leading - own + step - 1) / step
	return own + k*step
}

// ListDueAuctions returns open auctions whose bidding window has passed
func (s *BiddingService) ListDueAuctions(ctx context.Context) ([]model.Auction, error) {
	due, err := s.repo.ListAuctionsDue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("service: failed to list due auctions: %w", err)
	}
	return due, nil
}

// ListUnrefundedLostBids returns lost bids still waiting for their refund
func (s *BiddingService) ListUnrefundedLostBids(ctx context.Context) ([]model.Bid, error) {
	bids, err := s.repo.ListUnrefundedLostBids(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list unrefunded bids: %w", err)
	}
	return bids, nil
}

// RecordBidRefund stores the refund reference of a lost bid
func (s *BiddingService) RecordBidRefund(ctx context.Context, bidID, refundID string) error {
	if err := s.repo.SetBidRefund(ctx, bidID, refundID); err != nil {
		return fmt.Errorf("service: failed to record refund for bid %s: %w", bidID, err)
	}
	return nil
}

func bidResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, engineerrors.ErrAuctionClosed):
		return "auction_closed"
	case errors.Is(err, engineerrors.ErrInvalidFirstBid):
		return "invalid_first_bid"
	case errors.Is(err, engineerrors.ErrInvalidIncrement):
		return "invalid_increment"
	case errors.Is(err, engineerrors.ErrBidTooLow):
		return "too_low"
	case errors.Is(err, engineerrors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
