package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	model "fanmeet-engine/internal/models"
	"fanmeet-engine/services/helpers"

	"github.com/stretchr/testify/require"
)

// wonMeeting runs an auction to completion and returns the winner's meeting id
func wonMeeting(t *testing.T, env *TestEnv) string {
	t.Helper()

	auctionID := createAuction(t, env)
	placeBid(t, env, auctionID, "fanX", 100)
	placeBid(t, env, auctionID, "fanY", 100)
	placeBid(t, env, auctionID, "fanX", 150)

	env.Clock.Set(T.Add(-24 * time.Hour))
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, fmt.Sprintf("/auctions/%s/close", auctionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	return Data(t, resp)["meeting"].(map[string]any)["meeting_id"].(string)
}

func meetingAction(t *testing.T, env *TestEnv, meetingID, action string, body any) (map[string]any, int) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, fmt.Sprintf("/meetings/%s/%s", meetingID, action), body)
	return resp, w.Code
}

func eventTypes(t *testing.T, env *TestEnv, meetingID string) []string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodGet, fmt.Sprintf("/meetings/%s/events", meetingID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var types []string
	for _, e := range resp["data"].([]any) {
		types = append(types, e.(map[string]any)["event_type"].(string))
	}
	return types
}

func TestMeetingHappyPath(t *testing.T) {
	env := SetupTestRouter(t)
	meetingID := wonMeeting(t, env)

	env.Clock.Set(T.Add(-5 * time.Minute))
	resp, code := meetingAction(t, env, meetingID, "join", helpers.ParticipantRequest{ParticipantID: "fanX"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "waiting_room", Data(t, resp)["outcome"])

	resp, code = meetingAction(t, env, meetingID, "join", helpers.ParticipantRequest{ParticipantID: "creator1"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "start_required", Data(t, resp)["outcome"])

	resp, code = meetingAction(t, env, meetingID, "start", helpers.StartMeetingRequest{CreatorID: "creator1"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "live", Data(t, resp)["outcome"])
	require.Equal(t, true, Data(t, resp)["applied"])

	resp, code = meetingAction(t, env, meetingID, "start", helpers.StartMeetingRequest{CreatorID: "creator1"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, Data(t, resp)["applied"], "a repeated start is a no-op")

	env.Clock.Set(T.Add(time.Minute))
	resp, code = meetingAction(t, env, meetingID, "join", helpers.ParticipantRequest{ParticipantID: "fanX"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "can_join", Data(t, resp)["outcome"])

	_, code = meetingAction(t, env, meetingID, "join", helpers.ParticipantRequest{ParticipantID: "fanY"})
	require.Equal(t, http.StatusForbidden, code)

	env.Clock.Set(T.Add(11 * time.Minute))
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/admin/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1.0, Data(t, resp)["completed"])

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/meetings/"+meetingID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	m := Data(t, resp)
	require.Equal(t, string(model.MeetingCompleted), m["status"])
	require.NotEmpty(t, m["payout_id"])

	payouts := env.Gateway.Payouts()
	require.Len(t, payouts, 1)
	require.Equal(t, int64(135), payouts[0].Amount)
	require.Equal(t, int64(15), payouts[0].Commission)

	require.Equal(t, []string{
		model.EventMeetingCreated,
		model.EventCreatorStarted,
		model.EventFanJoined,
		model.EventRecordingStarted,
		model.EventRecordingStopped,
		model.EventMeetingCompleted,
		model.EventPayoutIssued,
	}, eventTypes(t, env, meetingID))
}

func TestCreatorNoShow(t *testing.T) {
	env := SetupTestRouter(t)
	meetingID := wonMeeting(t, env)

	env.Clock.Set(T.Add(-time.Minute))
	resp, code := meetingAction(t, env, meetingID, "join", helpers.ParticipantRequest{ParticipantID: "fanX"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "waiting_room", Data(t, resp)["outcome"])

	env.Clock.Set(T.Add(time.Second))
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/admin/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1.0, Data(t, resp)["no_show_cancelled"])

	_, code = meetingAction(t, env, meetingID, "start", helpers.StartMeetingRequest{CreatorID: "creator1"})
	require.Equal(t, http.StatusGone, code)

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/meetings/"+meetingID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	m := Data(t, resp)
	require.Equal(t, string(model.MeetingCancelledNoShowCreator), m["status"])
	require.Equal(t, model.CancellationCreatorNoShow, m["cancellation_reason"])
	require.NotEmpty(t, m["refund_id"])

	var noShowRefund int64
	for _, r := range env.Gateway.Refunds() {
		if r.FanID == "fanX" {
			noShowRefund = r.Amount
		}
	}
	require.Equal(t, int64(150), noShowRefund)

	types := eventTypes(t, env, meetingID)
	require.Contains(t, types, model.EventCancelledNoShow)
	require.Contains(t, types, model.EventFanJoinStatus)
	require.Contains(t, types, model.EventRefundIssued)
}

func TestStartAfterEndRejected(t *testing.T) {
	env := SetupTestRouter(t)
	meetingID := wonMeeting(t, env)

	env.Clock.Set(T.Add(10 * time.Minute))
	_, code := meetingAction(t, env, meetingID, "start", helpers.StartMeetingRequest{CreatorID: "creator1"})
	require.Equal(t, http.StatusGone, code)
}

func TestOperatorCancel(t *testing.T) {
	env := SetupTestRouter(t)
	meetingID := wonMeeting(t, env)

	resp, code := meetingAction(t, env, meetingID, "cancel", helpers.CancelMeetingRequest{Reason: "CREATOR_SICK"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "CREATOR_SICK", Data(t, resp)["meeting"].(map[string]any)["cancellation_reason"])

	env.Clock.Set(T.Add(time.Hour))
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/admin/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0.0, Data(t, resp)["no_show_cancelled"])
	require.Empty(t, env.Gateway.Payouts())
}

func TestHealthAndMetrics(t *testing.T) {
	env := SetupTestRouter(t)

	_, w := ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec := ExecuteRequest(t, env.Router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}
