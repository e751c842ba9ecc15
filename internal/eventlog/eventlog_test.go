package eventlog

import (
	"context"
	"errors"
	"sync"
	"testing"

	model "fanmeet-engine/internal/models"
	"fanmeet-engine/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, routingKey string
	body                 any
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, exchange, routingKey string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{exchange: exchange, routingKey: routingKey, body: body})
	return p.err
}

func (p *recordingPublisher) Close() {}

func TestLog_Append(t *testing.T) {
	repo := repository.NewMemoryRepo()
	pub := &recordingPublisher{}
	log := New(repo, pub, "")
	ctx := context.Background()

	entry, err := log.Append(ctx, model.LogEntry{MeetID: "m1", EventType: model.EventCreatorStarted})
	require.NoError(t, err)
	require.NotEmpty(t, entry.EntryID)
	require.False(t, entry.Timestamp.IsZero())
	require.NotNil(t, entry.Metadata)

	log.AuctionEvent(ctx, "a1", model.EventAuctionClosed, map[string]string{"losers": "2"})

	require.Len(t, pub.sent, 2)
	require.Equal(t, DefaultExchange, pub.sent[0].exchange)
	require.Equal(t, "meeting.creator_stream_started", pub.sent[0].routingKey)
	require.Equal(t, "auction.auction_closed", pub.sent[1].routingKey)

	entries, err := log.ListForMeeting(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entry.EntryID, entries[0].EntryID)

	entries, err = log.ListForAuction(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "2", entries[0].Metadata["losers"])
}

func TestLog_PublishFailureKeepsEntry(t *testing.T) {
	repo := repository.NewMemoryRepo()
	log := New(repo, &recordingPublisher{err: errors.New("broker down")}, "custom")

	_, err := log.Append(context.Background(), model.LogEntry{MeetID: "m1", EventType: model.EventFanJoined})
	require.NoError(t, err)

	entries, err := log.ListForMeeting(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLog_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := repository.NewMockEventLogDB(ctrl)
	pub := &recordingPublisher{}
	log := New(store, pub, "")

	store.EXPECT().AppendLogEntry(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(2)

	_, err := log.Append(context.Background(), model.LogEntry{MeetID: "m1", EventType: model.EventFanJoined})
	require.Error(t, err)

	// the convenience writers swallow the failure
	log.MeetingEvent(context.Background(), "m1", model.EventFanJoined, nil)
	require.Empty(t, pub.sent, "nothing is published for an entry that was not stored")

	store.EXPECT().GetLogEntriesByMeeting(gomock.Any(), "m1").Return(nil, errors.New("read failed"))
	_, err = log.ListForMeeting(context.Background(), "m1")
	require.Error(t, err)
}

func TestNew_NilPublisher(t *testing.T) {
	log := New(repository.NewMemoryRepo(), nil, "")
	_, err := log.Append(context.Background(), model.LogEntry{AuctionID: "a1", EventType: model.EventBidPlaced})
	require.NoError(t, err)
}
