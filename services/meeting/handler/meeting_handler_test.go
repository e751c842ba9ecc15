package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"fanmeet-engine/internal/engineerrors"
	"fanmeet-engine/internal/lifecycle"
	"fanmeet-engine/internal/meeting"
	model "fanmeet-engine/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var sweepTime = time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *MockMeetingServiceInterface, *MockEventLogReader) {
	ctrl := gomock.NewController(t)
	mockService := NewMockMeetingServiceInterface(ctrl)
	mockEvents := NewMockEventLogReader(ctrl)
	handler := NewMeetingHandler(mockService, mockEvents)

	router := gin.New()
	router.GET("/meetings/:meeting_id", handler.GetMeetingHandler)
	router.GET("/auctions/:auction_id/meeting", handler.GetAuctionMeetingHandler)
	router.POST("/meetings/:meeting_id/start", handler.StartMeetingHandler)
	router.POST("/meetings/:meeting_id/join", handler.JoinMeetingHandler)
	router.POST("/meetings/:meeting_id/end", handler.EndMeetingHandler)
	router.POST("/meetings/:meeting_id/cancel", handler.CancelMeetingHandler)
	router.GET("/meetings/:meeting_id/events", handler.GetMeetingEventsHandler)
	router.GET("/auctions/:auction_id/events", handler.GetAuctionEventsHandler)
	router.POST("/admin/sweep", handler.SweepHandler)
	return router, mockService, mockEvents
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func liveMeeting() model.Meeting {
	started := time.Date(2026, 3, 1, 17, 59, 0, 0, time.UTC)
	return model.Meeting{
		MeetingID:        "meet1",
		EventID:          "auction1",
		CreatorID:        "creator1",
		FanID:            "fanX",
		WinningAmount:    150,
		Status:           model.MeetingLive,
		CreatorStartedAt: &started,
		Version:          1,
	}
}

// Test StartMeetingHandler
func TestStartMeetingHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(m *MockMeetingServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success",
			body: `{"creator_id":"creator1"}`,
			mockSetup: func(m *MockMeetingServiceInterface) {
				m.EXPECT().AttemptStart(gomock.Any(), "meet1", "creator1").
					Return(lifecycle.Result{Meeting: liveMeeting(), Outcome: meeting.OutcomeLive, Applied: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "meeting started",
		},
		{
			name:           "missing_creator_id",
			body:           `{}`,
			mockSetup:      func(*MockMeetingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "not_the_creator",
			body: `{"creator_id":"fanX"}`,
			mockSetup: func(m *MockMeetingServiceInterface) {
				m.EXPECT().AttemptStart(gomock.Any(), "meet1", "fanX").
					Return(lifecycle.Result{}, engineerrors.ErrNotParticipant)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "not a participant",
		},
		{
			name: "past_end_time",
			body: `{"creator_id":"creator1"}`,
			mockSetup: func(m *MockMeetingServiceInterface) {
				m.EXPECT().AttemptStart(gomock.Any(), "meet1", "creator1").
					Return(lifecycle.Result{}, engineerrors.ErrPastEndTime)
			},
			expectedStatus: http.StatusGone,
			expectedMsg:    "after its scheduled end",
		},
		{
			name: "cancelled_meeting",
			body: `{"creator_id":"creator1"}`,
			mockSetup: func(m *MockMeetingServiceInterface) {
				m.EXPECT().AttemptStart(gomock.Any(), "meet1", "creator1").
					Return(lifecycle.Result{}, engineerrors.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "transition not allowed",
		},
		{
			name: "contention_exhausted",
			body: `{"creator_id":"creator1"}`,
			mockSetup: func(m *MockMeetingServiceInterface) {
				m.EXPECT().AttemptStart(gomock.Any(), "meet1", "creator1").
					Return(lifecycle.Result{}, engineerrors.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "record changed concurrently",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService, _ := newTestRouter(t)
			tc.mockSetup(mockService)

			status, resp := perform(t, router, http.MethodPost, "/meetings/meet1/start", tc.body)
			require.Equal(t, tc.expectedStatus, status)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if status == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, "live", data["outcome"])
				require.Equal(t, true, data["applied"])
				require.Equal(t, "live", data["meeting"].(map[string]any)["status"])
			}
		})
	}
}

// Test JoinMeetingHandler
func TestJoinMeetingHandler(t *testing.T) {
	tests := []struct {
		name            string
		participant     string
		result          lifecycle.Result
		err             error
		expectedStatus  int
		expectedOutcome string
	}{
		{
			name:            "fan_waits_before_start",
			participant:     "fanX",
			result:          lifecycle.Result{Outcome: meeting.OutcomeWaitingRoom},
			expectedStatus:  http.StatusOK,
			expectedOutcome: "waiting_room",
		},
		{
			name:            "fan_joins_live",
			participant:     "fanX",
			result:          lifecycle.Result{Meeting: liveMeeting(), Outcome: meeting.OutcomeCanJoin, Applied: true},
			expectedStatus:  http.StatusOK,
			expectedOutcome: "can_join",
		},
		{
			name:            "creator_must_start",
			participant:     "creator1",
			result:          lifecycle.Result{Outcome: meeting.OutcomeStartRequired},
			expectedStatus:  http.StatusOK,
			expectedOutcome: "start_required",
		},
		{
			name:           "stranger",
			participant:    "someone",
			err:            engineerrors.ErrNotParticipant,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "meeting_over",
			participant:    "fanX",
			err:            engineerrors.ErrMeetingEnded,
			expectedStatus: http.StatusGone,
		},
		{
			name:           "unknown_meeting",
			participant:    "fanX",
			err:            engineerrors.ErrMeetingNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService, _ := newTestRouter(t)
			mockService.EXPECT().AttemptJoin(gomock.Any(), "meet1", tc.participant).Return(tc.result, tc.err)

			status, resp := perform(t, router, http.MethodPost, "/meetings/meet1/join", `{"participant_id":"`+tc.participant+`"}`)
			require.Equal(t, tc.expectedStatus, status)
			if tc.expectedOutcome != "" {
				require.Equal(t, tc.expectedOutcome, resp["data"].(map[string]any)["outcome"])
			}
		})
	}
}

func TestEndMeetingHandler(t *testing.T) {
	router, mockService, _ := newTestRouter(t)

	completed := liveMeeting()
	completed.Status = model.MeetingCompleted
	completed.PayoutID = "pay-1"
	mockService.EXPECT().EndMeeting(gomock.Any(), "meet1", "fanX").
		Return(lifecycle.Result{Meeting: completed, Outcome: meeting.OutcomeCompleted, Applied: true}, nil)

	status, resp := perform(t, router, http.MethodPost, "/meetings/meet1/end", `{"participant_id":"fanX"}`)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, "completed", data["outcome"])
	require.Equal(t, "pay-1", data["meeting"].(map[string]any)["payout_id"])

	mockService.EXPECT().EndMeeting(gomock.Any(), "meet1", "fanX").Return(lifecycle.Result{}, engineerrors.ErrTooEarly)
	status, _ = perform(t, router, http.MethodPost, "/meetings/meet1/end", `{"participant_id":"fanX"}`)
	require.Equal(t, http.StatusConflict, status)

	status, resp = perform(t, router, http.MethodPost, "/meetings/meet1/end", `not json`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, resp["message"], "invalid request payload")
}

func TestCancelMeetingHandler(t *testing.T) {
	router, mockService, _ := newTestRouter(t)

	cancelled := liveMeeting()
	cancelled.Status = model.MeetingCancelled
	cancelled.CancellationReason = "CREATOR_SICK"
	mockService.EXPECT().CancelMeeting(gomock.Any(), "meet1", "CREATOR_SICK").
		Return(lifecycle.Result{Meeting: cancelled, Outcome: meeting.OutcomeCancelled, Applied: true}, nil)

	status, resp := perform(t, router, http.MethodPost, "/meetings/meet1/cancel", `{"reason":"CREATOR_SICK"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "cancelled", resp["data"].(map[string]any)["outcome"])

	// an empty body cancels with the default reason
	mockService.EXPECT().CancelMeeting(gomock.Any(), "meet2", "").
		Return(lifecycle.Result{Outcome: meeting.OutcomeCancelled}, nil)
	status, _ = perform(t, router, http.MethodPost, "/meetings/meet2/cancel", "")
	require.Equal(t, http.StatusOK, status)
}

func TestGetMeetingHandlers(t *testing.T) {
	router, mockService, _ := newTestRouter(t)

	mockService.EXPECT().GetMeeting(gomock.Any(), "meet1").Return(liveMeeting(), nil)
	status, resp := perform(t, router, http.MethodGet, "/meetings/meet1", "")
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, "meet1", data["meeting_id"])
	require.Equal(t, "2026-03-01T17:59:00Z", data["creator_started_at"])

	mockService.EXPECT().GetMeeting(gomock.Any(), "missing").Return(model.Meeting{}, engineerrors.ErrMeetingNotFound)
	status, resp = perform(t, router, http.MethodGet, "/meetings/missing", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, resp["message"], "meeting not found")

	mockService.EXPECT().GetMeetingByAuction(gomock.Any(), "auction1").Return(liveMeeting(), nil)
	status, resp = perform(t, router, http.MethodGet, "/auctions/auction1/meeting", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "auction1", resp["data"].(map[string]any)["event_id"])
}

func TestGetMeetingEventsHandler(t *testing.T) {
	router, mockService, mockEvents := newTestRouter(t)

	mockService.EXPECT().GetMeeting(gomock.Any(), "meet1").Return(liveMeeting(), nil).Times(2)
	mockEvents.EXPECT().ListForMeeting(gomock.Any(), "meet1").Return([]model.LogEntry{
		{EntryID: "e1", MeetID: "meet1", EventType: model.EventMeetingCreated},
		{EntryID: "e2", MeetID: "meet1", EventType: model.EventCreatorStarted},
	}, nil)

	status, resp := perform(t, router, http.MethodGet, "/meetings/meet1/events", "")
	require.Equal(t, http.StatusOK, status)
	entries := resp["data"].([]any)
	require.Len(t, entries, 2)
	require.Equal(t, model.EventCreatorStarted, entries[1].(map[string]any)["event_type"])

	mockEvents.EXPECT().ListForMeeting(gomock.Any(), "meet1").Return(nil, errors.New("disk full"))
	status, resp = perform(t, router, http.MethodGet, "/meetings/meet1/events", "")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Contains(t, resp["message"], "internal server error")

	mockService.EXPECT().GetMeeting(gomock.Any(), "missing").Return(model.Meeting{}, engineerrors.ErrMeetingNotFound)
	status, _ = perform(t, router, http.MethodGet, "/meetings/missing/events", "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestGetAuctionEventsHandler(t *testing.T) {
	router, _, mockEvents := newTestRouter(t)

	mockEvents.EXPECT().ListForAuction(gomock.Any(), "auction1").Return([]model.LogEntry{
		{EntryID: "e1", AuctionID: "auction1", EventType: model.EventBidPlaced},
		{EntryID: "e2", AuctionID: "auction1", EventType: model.EventAuctionClosed},
	}, nil)
	status, resp := perform(t, router, http.MethodGet, "/auctions/auction1/events", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp["data"].([]any), 2)

	mockEvents.EXPECT().ListForAuction(gomock.Any(), "auction2").Return(nil, nil)
	status, resp = perform(t, router, http.MethodGet, "/auctions/auction2/events", "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, resp["data"].([]any))
}

func TestSweepHandler(t *testing.T) {
	router, mockService, _ := newTestRouter(t)

	mockService.EXPECT().Now().Return(sweepTime).Times(2)
	mockService.EXPECT().Sweep(gomock.Any(), sweepTime).Return(lifecycle.SweepReport{NoShowCancelled: 1, Completed: 2}, nil)
	status, resp := perform(t, router, http.MethodPost, "/admin/sweep", "")
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, 1.0, data["no_show_cancelled"])
	require.Equal(t, 2.0, data["completed"])

	mockService.EXPECT().Sweep(gomock.Any(), sweepTime).Return(lifecycle.SweepReport{}, errors.New("db down"))
	status, _ = perform(t, router, http.MethodPost, "/admin/sweep", "")
	require.Equal(t, http.StatusInternalServerError, status)
}
