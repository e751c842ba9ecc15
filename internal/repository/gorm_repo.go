package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fanmeet-engine/internal/engineerrors"
	model "fanmeet-engine/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepo is the relational implementation of Store. Every state change is a
// conditional UPDATE whose RowsAffected decides between success and conflict.
type GormRepo struct {
	db *gorm.DB
}

// OpenGorm opens a sqlite or mysql database and migrates the engine tables
func OpenGorm(driver, dsn string) (*GormRepo, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("open database: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite" {
		// a single connection keeps writers serialized and shares one in-memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return NewGormRepo(db)
}

// NewGormRepo wraps an open gorm handle and migrates the engine tables
func NewGormRepo(db *gorm.DB) (*GormRepo, error) {
	if err := db.AutoMigrate(&model.Auction{}, &model.Bid{}, &model.Meeting{}, &model.LogEntry{}); err != nil {
		return nil, fmt.Errorf("migrate tables: %w", err)
	}
	return &GormRepo{db: db}, nil
}

// CreateAuction stores a new auction
func (r *GormRepo) CreateAuction(ctx context.Context, auction model.Auction) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Auction{}).Where("auction_id = ?", auction.AuctionID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, engineerrors.ErrConflict)
	}
	return r.db.WithContext(ctx).Create(&auction).Error
}

// GetAuction returns an auction by id
func (r *GormRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	return getAuction(r.db.WithContext(ctx), auctionID)
}

func getAuction(db *gorm.DB, auctionID string) (model.Auction, error) {
	var auction model.Auction
	if err := db.Take(&auction, "auction_id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, engineerrors.ErrAuctionNotFound)
		}
		return model.Auction{}, err
	}
	return auction, nil
}

// GetBidsByAuction returns every bid row of an auction in placement order
func (r *GormRepo) GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}

	var bids []model.Bid
	if err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("placed_at ASC, seq ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// auctionMiss explains why a conditional auction update matched no row
func auctionMiss(db *gorm.DB, auctionID, op string) error {
	auction, err := getAuction(db, auctionID)
	if err != nil {
		return err
	}
	if auction.Status != model.AuctionOpen {
		return fmt.Errorf("%s for auction %s: %w", op, auctionID, engineerrors.ErrAuctionClosed)
	}
	return fmt.Errorf("%s for auction %s: %w", op, auctionID, engineerrors.ErrConflict)
}

// RecordBid inserts a bid and retires the bidder's previous active row in one
// transaction, provided the auction is still open at expectedVersion
func (r *GormRepo) RecordBid(ctx context.Context, bid model.Bid, expectedVersion int64, retireBidID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Auction{}).
			Where("auction_id = ? AND version = ? AND status = ?", bid.AuctionID, expectedVersion, model.AuctionOpen).
			Update("version", gorm.Expr("version + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return auctionMiss(tx, bid.AuctionID, "record bid")
		}

		if retireBidID != "" {
			res = tx.Model(&model.Bid{}).
				Where("bid_id = ? AND status = ?", retireBidID, model.BidActive).
				Update("status", model.BidOutbid)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("retire bid %s: %w", retireBidID, engineerrors.ErrConflict)
			}
		}

		return tx.Create(&bid).Error
	})
}

// FinalizeAuction closes the auction and resolves every active bid to won or lost
func (r *GormRepo) FinalizeAuction(ctx context.Context, auctionID string, expectedVersion int64, winnerBidID string, closedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Auction{}).
			Where("auction_id = ? AND version = ? AND status = ?", auctionID, expectedVersion, model.AuctionOpen).
			Updates(map[string]any{
				"status":    model.AuctionClosed,
				"closed_at": closedAt,
				"version":   gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if _, err := getAuction(tx, auctionID); err != nil {
				return err
			}
			return fmt.Errorf("finalize auction %s: %w", auctionID, engineerrors.ErrConflict)
		}

		if winnerBidID != "" {
			if err := tx.Model(&model.Bid{}).
				Where("bid_id = ? AND status = ?", winnerBidID, model.BidActive).
				Update("status", model.BidWon).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Bid{}).
			Where("auction_id = ? AND status = ?", auctionID, model.BidActive).
			Update("status", model.BidLost).Error
	})
}

// SetBidRefund stores the refund reference of a bid once; later calls are ignored
func (r *GormRepo) SetBidRefund(ctx context.Context, bidID, refundID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Bid{}).Where("bid_id = ?", bidID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("set refund for bid %s: %w", bidID, engineerrors.ErrNoBids)
	}

	return r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("bid_id = ? AND refund_id = ?", bidID, "").
		Update("refund_id", refundID).Error
}

// ListAuctionsDue returns open auctions whose bidding window has passed
func (r *GormRepo) ListAuctionsDue(ctx context.Context, now time.Time) ([]model.Auction, error) {
	var due []model.Auction
	if err := r.db.WithContext(ctx).
		Where("status = ? AND bidding_closes_at <= ?", model.AuctionOpen, now).
		Order("bidding_closes_at ASC").
		Find(&due).Error; err != nil {
		return nil, err
	}
	return due, nil
}

// ListUnrefundedLostBids returns lost bids that have no refund reference yet
func (r *GormRepo) ListUnrefundedLostBids(ctx context.Context) ([]model.Bid, error) {
	var pending []model.Bid
	if err := r.db.WithContext(ctx).
		Where("status = ? AND refund_id = ?", model.BidLost, "").
		Order("placed_at ASC, seq ASC").
		Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

// CreateMeeting stores a meeting; an existing meeting for the same event is returned instead
func (r *GormRepo) CreateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	var stored model.Meeting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Take(&stored, "event_id = ?", meeting.EventID).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		stored = meeting
		return tx.Create(&stored).Error
	})
	if err != nil {
		return model.Meeting{}, fmt.Errorf("create meeting for event %s: %w", meeting.EventID, err)
	}
	return stored, nil
}

// GetMeeting returns a meeting by id
func (r *GormRepo) GetMeeting(ctx context.Context, meetingID string) (model.Meeting, error) {
	var m model.Meeting
	if err := r.db.WithContext(ctx).Take(&m, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Meeting{}, fmt.Errorf("get meeting %s: %w", meetingID, engineerrors.ErrMeetingNotFound)
		}
		return model.Meeting{}, err
	}
	return m, nil
}

// GetMeetingByEvent returns the meeting created for an event
func (r *GormRepo) GetMeetingByEvent(ctx context.Context, eventID string) (model.Meeting, error) {
	var m model.Meeting
	if err := r.db.WithContext(ctx).Take(&m, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Meeting{}, fmt.Errorf("get meeting for event %s: %w", eventID, engineerrors.ErrMeetingNotFound)
		}
		return model.Meeting{}, err
	}
	return m, nil
}

// UpdateMeeting writes every mutable column only if the stored version equals expectedVersion
func (r *GormRepo) UpdateMeeting(ctx context.Context, meeting model.Meeting, expectedVersion int64) (model.Meeting, error) {
	next := meeting
	next.Version = expectedVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("meeting_id = ? AND version = ?", meeting.MeetingID, expectedVersion).
		Select("*").
		Omit("meeting_id", "event_id", "created_at").
		Updates(&next)
	if res.Error != nil {
		return model.Meeting{}, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetMeeting(ctx, meeting.MeetingID); err != nil {
			return model.Meeting{}, err
		}
		return model.Meeting{}, fmt.Errorf("update meeting %s: %w", meeting.MeetingID, engineerrors.ErrConflict)
	}
	return next, nil
}

// ListScheduledBefore returns scheduled meetings whose start is at or before cutoff
func (r *GormRepo) ListScheduledBefore(ctx context.Context, cutoff time.Time) ([]model.Meeting, error) {
	return r.listMeetings(ctx, "status = ? AND scheduled_at <= ?", model.MeetingScheduled, cutoff)
}

// ListLiveEndedBy returns live meetings whose scheduled end is at or before now
func (r *GormRepo) ListLiveEndedBy(ctx context.Context, now time.Time) ([]model.Meeting, error) {
	return r.listMeetings(ctx, "status = ? AND ends_at <= ?", model.MeetingLive, now)
}

// ListUnsettled returns terminal meetings whose money movement has not been recorded
func (r *GormRepo) ListUnsettled(ctx context.Context) ([]model.Meeting, error) {
	return r.listMeetings(ctx,
		"(status = ? AND refund_id = ?) OR (status = ? AND payout_id = ?)",
		model.MeetingCancelledNoShowCreator, "", model.MeetingCompleted, "")
}

// ListWinnersWithoutMeeting returns won bids whose auction has no meeting yet
func (r *GormRepo) ListWinnersWithoutMeeting(ctx context.Context) ([]model.Bid, error) {
	var orphaned []model.Bid
	if err := r.db.WithContext(ctx).
		Where("status = ? AND NOT EXISTS (SELECT 1 FROM meetings WHERE meetings.event_id = bids.auction_id)", model.BidWon).
		Order("placed_at ASC, seq ASC").
		Find(&orphaned).Error; err != nil {
		return nil, err
	}
	return orphaned, nil
}

func (r *GormRepo) listMeetings(ctx context.Context, query string, args ...any) ([]model.Meeting, error) {
	var out []model.Meeting
	if err := r.db.WithContext(ctx).Where(query, args...).Order("scheduled_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AppendLogEntry appends an entry to the event log
func (r *GormRepo) AppendLogEntry(ctx context.Context, entry model.LogEntry) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// GetLogEntriesByMeeting returns the entries of a meeting in time order
func (r *GormRepo) GetLogEntriesByMeeting(ctx context.Context, meetID string) ([]model.LogEntry, error) {
	var out []model.LogEntry
	if err := r.db.WithContext(ctx).Where("meet_id = ?", meetID).Order("timestamp ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetLogEntriesByAuction returns the entries of an auction in time order
func (r *GormRepo) GetLogEntriesByAuction(ctx context.Context, auctionID string) ([]model.LogEntry, error) {
	var out []model.LogEntry
	if err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Order("timestamp ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the underlying connection pool
func (r *GormRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
