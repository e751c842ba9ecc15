package handler

import (
	"context"
	"net/http"
	"time"

	"fanmeet-engine/internal/lifecycle"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/services/helpers"
	"fanmeet-engine/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=meeting_handler.go -destination=mock_meeting_handler.go -package=handler

type MeetingServiceInterface interface {
	GetMeeting(ctx context.Context, meetingID string) (model.Meeting, error)
	GetMeetingByAuction(ctx context.Context, auctionID string) (model.Meeting, error)
	AttemptStart(ctx context.Context, meetingID, creatorID string) (lifecycle.Result, error)
	AttemptJoin(ctx context.Context, meetingID, participantID string) (lifecycle.Result, error)
	EndMeeting(ctx context.Context, meetingID, participantID string) (lifecycle.Result, error)
	CancelMeeting(ctx context.Context, meetingID, reason string) (lifecycle.Result, error)
	Sweep(ctx context.Context, now time.Time) (lifecycle.SweepReport, error)
	Now() time.Time
}

// EventLogReader reads the audit trail of meetings and auctions
type EventLogReader interface {
	ListForMeeting(ctx context.Context, meetID string) ([]model.LogEntry, error)
	ListForAuction(ctx context.Context, auctionID string) ([]model.LogEntry, error)
}

type MeetingHandler struct {
	service MeetingServiceInterface
	events  EventLogReader
}

func NewMeetingHandler(service MeetingServiceInterface, events EventLogReader) *MeetingHandler {
	return &MeetingHandler{service: service, events: events}
}

// GetMeetingHandler handles GET /meetings/:meeting_id
func (h *MeetingHandler) GetMeetingHandler(c *gin.Context) {
	meetingID := c.Param("meeting_id")
	m, err := h.service.GetMeeting(c.Request.Context(), meetingID)
	if err != nil {
		helpers.RespondServiceError(c, "GetMeetingHandler", err, map[string]any{"meeting_id": meetingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, m, "meeting retrieved successfully")
}

// GetAuctionMeetingHandler handles GET /auctions/:auction_id/meeting
func (h *MeetingHandler) GetAuctionMeetingHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	m, err := h.service.GetMeetingByAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "GetAuctionMeetingHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, m, "meeting retrieved successfully")
}

// StartMeetingHandler handles POST /meetings/:meeting_id/start
func (h *MeetingHandler) StartMeetingHandler(c *gin.Context) {
	meetingID := c.Param("meeting_id")

	var req helpers.StartMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "StartMeetingHandler", err)
		return
	}

	res, err := h.service.AttemptStart(c.Request.Context(), meetingID, req.CreatorID)
	if err != nil {
		helpers.RespondServiceError(c, "StartMeetingHandler", err, map[string]any{"meeting_id": meetingID, "creator_id": req.CreatorID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "meeting started")
	helpers.LogSuccess("StartMeetingHandler", "meeting started", map[string]any{
		"meeting_id": meetingID,
		"applied":    res.Applied,
	})
}

// JoinMeetingHandler handles POST /meetings/:meeting_id/join
func (h *MeetingHandler) JoinMeetingHandler(c *gin.Context) {
	meetingID := c.Param("meeting_id")

	var req helpers.ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "JoinMeetingHandler", err)
		return
	}

	res, err := h.service.AttemptJoin(c.Request.Context(), meetingID, req.ParticipantID)
	if err != nil {
		helpers.RespondServiceError(c, "JoinMeetingHandler", err, map[string]any{"meeting_id": meetingID, "participant_id": req.ParticipantID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "join attempt processed")
	helpers.LogSuccess("JoinMeetingHandler", "join attempt processed", map[string]any{
		"meeting_id":     meetingID,
		"participant_id": req.ParticipantID,
		"outcome":        res.Outcome,
	})
}

// EndMeetingHandler handles POST /meetings/:meeting_id/end
func (h *MeetingHandler) EndMeetingHandler(c *gin.Context) {
	meetingID := c.Param("meeting_id")

	var req helpers.ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EndMeetingHandler", err)
		return
	}

	res, err := h.service.EndMeeting(c.Request.Context(), meetingID, req.ParticipantID)
	if err != nil {
		helpers.RespondServiceError(c, "EndMeetingHandler", err, map[string]any{"meeting_id": meetingID, "participant_id": req.ParticipantID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "meeting ended")
	helpers.LogSuccess("EndMeetingHandler", "meeting ended", map[string]any{"meeting_id": meetingID, "applied": res.Applied})
}

// CancelMeetingHandler handles POST /meetings/:meeting_id/cancel
func (h *MeetingHandler) CancelMeetingHandler(c *gin.Context) {
	meetingID := c.Param("meeting_id")

	var req helpers.CancelMeetingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "CancelMeetingHandler", err)
			return
		}
	}

	res, err := h.service.CancelMeeting(c.Request.Context(), meetingID, req.Reason)
	if err != nil {
		helpers.RespondServiceError(c, "CancelMeetingHandler", err, map[string]any{"meeting_id": meetingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, res, "meeting cancelled")
}

// GetMeetingEventsHandler handles GET /meetings/:meeting_id/events
func (h *MeetingHandler) GetMeetingEventsHandler(c *gin.Context) {
	meetingID := c.Param("meeting_id")
	if _, err := h.service.GetMeeting(c.Request.Context(), meetingID); err != nil {
		helpers.RespondServiceError(c, "GetMeetingEventsHandler", err, map[string]any{"meeting_id": meetingID})
		return
	}

	entries, err := h.events.ListForMeeting(c.Request.Context(), meetingID)
	if err != nil {
		helpers.RespondServiceError(c, "GetMeetingEventsHandler", err, map[string]any{"meeting_id": meetingID})
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, entries, "meeting events retrieved successfully")
}

// GetAuctionEventsHandler handles GET /auctions/:auction_id/events
func (h *MeetingHandler) GetAuctionEventsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	entries, err := h.events.ListForAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondServiceError(c, "GetAuctionEventsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, entries, "auction events retrieved successfully")
}

// SweepHandler handles POST /admin/sweep. It runs outside the scheduler lock.
func (h *MeetingHandler) SweepHandler(c *gin.Context) {
	report, err := h.service.Sweep(c.Request.Context(), h.service.Now())
	if err != nil {
		helpers.RespondServiceError(c, "SweepHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, report, "sweep completed")
	helpers.LogSuccess("SweepHandler", "sweep completed", map[string]any{
		"no_show_cancelled": report.NoShowCancelled,
		"completed":         report.Completed,
		"failures":          report.Failures,
	})
}
