// Package eventlog appends immutable lifecycle and auction records and
// forwards them to the push channel. Nothing in the engine reads the log back
// to make a decision.
package eventlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	model "fanmeet-engine/internal/models"
	"fanmeet-engine/internal/repository"
	"fanmeet-engine/pkg/rabbitmq"
	"fanmeet-engine/utils"
)

const DefaultExchange = "meeting_events"

// Log is the shared-write event log
type Log struct {
	store     repository.EventLogDB
	publisher rabbitmq.Publisher
	exchange  string
	now       func() time.Time
}

// New creates a Log; a nil publisher disables the push channel
func New(store repository.EventLogDB, publisher rabbitmq.Publisher, exchange string) *Log {
	if publisher == nil {
		publisher = rabbitmq.FallbackPublisher{}
	}
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Log{
		store:     store,
		publisher: publisher,
		exchange:  exchange,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Append stores the entry and publishes it. A publish failure is logged only,
// the stored entry stays the record of truth for audit.
func (l *Log) Append(ctx context.Context, entry model.LogEntry) (model.LogEntry, error) {
	if entry.EntryID == "" {
		entry.EntryID = utils.GenerateID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]string{}
	}

	if err := l.store.AppendLogEntry(ctx, entry); err != nil {
		return model.LogEntry{}, fmt.Errorf("eventlog: append %s: %w", entry.EventType, err)
	}

	if err := l.publisher.Publish(ctx, l.exchange, routingKey(entry), entry); err != nil {
		utils.Warn("eventlog: publish failed", map[string]any{
			"entry_id":   entry.EntryID,
			"event_type": entry.EventType,
			"error":      err.Error(),
		})
	}
	return entry, nil
}

func routingKey(entry model.LogEntry) string {
	prefix := "meeting"
	if entry.MeetID == "" {
		prefix = "auction"
	}
	return prefix + "." + strings.ToLower(entry.EventType)
}

// MeetingEvent appends an entry for a meeting, logging instead of returning a failure
func (l *Log) MeetingEvent(ctx context.Context, meetID, eventType string, metadata map[string]string) {
	l.record(ctx, model.LogEntry{MeetID: meetID, EventType: eventType, Metadata: metadata})
}

// AuctionEvent appends an entry for an auction, logging instead of returning a failure
func (l *Log) AuctionEvent(ctx context.Context, auctionID, eventType string, metadata map[string]string) {
	l.record(ctx, model.LogEntry{AuctionID: auctionID, EventType: eventType, Metadata: metadata})
}

func (l *Log) record(ctx context.Context, entry model.LogEntry) {
	if _, err := l.Append(ctx, entry); err != nil {
		utils.Error("eventlog: entry lost", map[string]any{
			"meet_id":    entry.MeetID,
			"auction_id": entry.AuctionID,
			"event_type": entry.EventType,
			"error":      err.Error(),
		})
	}
}

// ListForMeeting returns the audit trail of a meeting
func (l *Log) ListForMeeting(ctx context.Context, meetID string) ([]model.LogEntry, error) {
	entries, err := l.store.GetLogEntriesByMeeting(ctx, meetID)
	if err != nil {
		return nil, fmt.Errorf("eventlog: list meeting %s: %w", meetID, err)
	}
	return entries, nil
}

// ListForAuction returns the audit trail of an auction
func (l *Log) ListForAuction(ctx context.Context, auctionID string) ([]model.LogEntry, error) {
	entries, err := l.store.GetLogEntriesByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("eventlog: list auction %s: %w", auctionID, err)
	}
	return entries, nil
}
