package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	bidding "fanmeet-engine/internal/biddingService"
	"fanmeet-engine/internal/engineerrors"
	"fanmeet-engine/internal/lifecycle"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/services/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, *MockBiddingServiceInterface, *MockAuctionFinalizer) {
	ctrl := gomock.NewController(t)
	mockService := NewMockBiddingServiceInterface(ctrl)
	mockFinalizer := NewMockAuctionFinalizer(ctrl)
	handler := NewBiddingHandler(mockService, mockFinalizer)

	router := gin.New()
	router.POST("/auctions", handler.CreateAuctionHandler)
	router.GET("/auctions/:auction_id", handler.GetAuctionHandler)
	router.POST("/auctions/:auction_id/bids", handler.PlaceBidHandler)
	router.GET("/auctions/:auction_id/bids", handler.GetBidsHandler)
	router.GET("/auctions/:auction_id/leader", handler.GetLeaderHandler)
	router.GET("/auctions/:auction_id/bidders/:bidder_id", handler.GetBidderStandingHandler)
	router.POST("/auctions/:auction_id/close", handler.CloseAuctionHandler)
	return router, mockService, mockFinalizer
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_first_bid",
			requestBody: helpers.PlaceBidRequest{BidderID: "fanX", Amount: 100},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().
					PlaceBid(gomock.Any(), "auction1", "fanX", int64(100)).
					Return(model.Bid{
						BidID:     uuid.NewString(),
						AuctionID: "auction1",
						BidderID:  "fanX",
						Amount:    100,
						Status:    model.BidActive,
						PlacedAt:  now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bidID := data["bid_id"].(string)
				_, parseErr := uuid.Parse(bidID)
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "auction1", data["auction_id"])
				require.Equal(t, "fanX", data["bidder_id"])
				require.Equal(t, 100.0, data["amount"])
				require.Equal(t, "active", data["status"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func(*MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_bidder_id",
			requestBody:    helpers.PlaceBidRequest{Amount: 100},
			mockSetup:      func(*MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "negative_amount",
			requestBody:    helpers.PlaceBidRequest{BidderID: "fanX", Amount: -10},
			mockSetup:      func(*MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "fractional_amount",
			requestBody:    `{"bidder_id":"fanX","amount":100.5}`,
			mockSetup:      func(*MockBiddingServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "invalid_first_bid",
			requestBody: helpers.PlaceBidRequest{BidderID: "fanX", Amount: 150},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "auction1", "fanX", int64(150)).
					Return(model.Bid{}, fmt.Errorf("service: %w", engineerrors.ErrInvalidFirstBid))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "first bid must equal the base price",
		},
		{
			name:        "invalid_increment",
			requestBody: helpers.PlaceBidRequest{BidderID: "fanX", Amount: 120},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "auction1", "fanX", int64(120)).
					Return(model.Bid{}, engineerrors.ErrInvalidIncrement)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "bid step",
		},
		{
			name:        "bid_too_low",
			requestBody: helpers.PlaceBidRequest{BidderID: "fanY", Amount: 100},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "auction1", "fanY", int64(100)).
					Return(model.Bid{}, engineerrors.ErrBidTooLow)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid amount too low",
		},
		{
			name:        "auction_closed",
			requestBody: helpers.PlaceBidRequest{BidderID: "fanY", Amount: 100},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "auction1", "fanY", int64(100)).
					Return(model.Bid{}, engineerrors.ErrAuctionClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction closed",
		},
		{
			name:        "service_generic_error",
			requestBody: helpers.PlaceBidRequest{BidderID: "fanX", Amount: 100},
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().PlaceBid(gomock.Any(), "auction1", "fanX", int64(100)).
					Return(model.Bid{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService, _ := newTestRouter(t)
			tc.mockSetup(mockService)

			status, resp := doJSON(t, router, http.MethodPost, "/auctions/auction1/bids", tc.requestBody)

			require.Equal(t, tc.expectedStatus, status)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

func TestCreateAuctionHandler(t *testing.T) {
	closes := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := helpers.CreateAuctionRequest{
		CreatorID:              "creator1",
		BasePrice:              100,
		BiddingClosesAt:        closes,
		MeetingScheduledAt:     closes.Add(24 * time.Hour),
		MeetingDurationMinutes: 10,
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		router, mockService, _ := newTestRouter(t)
		mockService.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a model.Auction) (model.Auction, error) {
				a.AuctionID = "auction1"
				a.Status = model.AuctionOpen
				return a, nil
			})

		status, resp := doJSON(t, router, http.MethodPost, "/auctions", valid)
		require.Equal(t, http.StatusCreated, status)
		data := resp["data"].(map[string]any)
		require.Equal(t, "auction1", data["auction_id"])
		require.Equal(t, "open", data["status"])
		require.Equal(t, "2026-03-01T12:00:00Z", data["bidding_closes_at"])
	})

	t.Run("missing_fields", func(t *testing.T) {
		t.Parallel()
		router, _, _ := newTestRouter(t)
		status, resp := doJSON(t, router, http.MethodPost, "/auctions", map[string]any{"creator_id": "creator1"})
		require.Equal(t, http.StatusBadRequest, status)
		require.Contains(t, resp["message"], "invalid request payload")
	})

	t.Run("service_rejects", func(t *testing.T) {
		t.Parallel()
		router, mockService, _ := newTestRouter(t)
		mockService.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).Return(model.Auction{}, engineerrors.ErrInvalidAuction)

		status, resp := doJSON(t, router, http.MethodPost, "/auctions", valid)
		require.Equal(t, http.StatusBadRequest, status)
		require.Contains(t, resp["message"], "invalid auction details")
	})
}

func TestGetAuctionHandler(t *testing.T) {
	router, mockService, _ := newTestRouter(t)

	mockService.EXPECT().GetAuction(gomock.Any(), "missing").Return(model.Auction{}, engineerrors.ErrAuctionNotFound)
	status, resp := doJSON(t, router, http.MethodGet, "/auctions/missing", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, resp["message"], "auction not found")

	closedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockService.EXPECT().GetAuction(gomock.Any(), "auction1").Return(model.Auction{
		AuctionID: "auction1",
		Status:    model.AuctionClosed,
		ClosedAt:  &closedAt,
	}, nil)
	status, resp = doJSON(t, router, http.MethodGet, "/auctions/auction1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "2026-03-01T12:00:00Z", resp["data"].(map[string]any)["closed_at"])
}

// Test GetBidsHandler
func TestGetBidsHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		auctionID      string
		mockSetup      func(m *MockBiddingServiceInterface)
		expectedStatus int
		expectedMsg    string
		expectedCount  int
	}{
		{
			name:      "success_multiple_bids",
			auctionID: "auction1",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBids(gomock.Any(), "auction1").Return([]model.Bid{
					{BidID: uuid.NewString(), AuctionID: "auction1", BidderID: "fanX", Amount: 100, Status: model.BidOutbid, PlacedAt: now},
					{BidID: uuid.NewString(), AuctionID: "auction1", BidderID: "fanX", Amount: 150, Status: model.BidActive, PlacedAt: now},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			expectedCount:  2,
		},
		{
			name:      "service_nil_slice",
			auctionID: "auction2",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBids(gomock.Any(), "auction2").Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
		},
		{
			name:      "auction_not_found",
			auctionID: "auction3",
			mockSetup: func(m *MockBiddingServiceInterface) {
				m.EXPECT().GetBids(gomock.Any(), "auction3").Return(nil, engineerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:      "extremely_large_number_of_bids",
			auctionID: "auction4",
			mockSetup: func(m *MockBiddingServiceInterface) {
				bids := make([]model.Bid, 1000)
				for i := range bids {
					bids[i] = model.Bid{BidID: uuid.NewString(), AuctionID: "auction4", BidderID: fmt.Sprintf("fan%d", i), Amount: 100, Status: model.BidActive, PlacedAt: now}
				}
				m.EXPECT().GetBids(gomock.Any(), "auction4").Return(bids, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			expectedCount:  1000,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService, _ := newTestRouter(t)
			tc.mockSetup(mockService)

			status, resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/auctions/%s/bids", tc.auctionID), nil)

			require.Equal(t, tc.expectedStatus, status)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if status == http.StatusOK {
				require.Len(t, resp["data"].([]any), tc.expectedCount)
			}
		})
	}
}

func TestGetLeaderAndStandingHandlers(t *testing.T) {
	router, mockService, _ := newTestRouter(t)

	leader := model.Bid{BidID: "b1", AuctionID: "auction1", BidderID: "fanX", Amount: 150, Status: model.BidActive}
	mockService.EXPECT().GetLeader(gomock.Any(), "auction1").Return(bidding.Standing{
		AuctionID:     "auction1",
		Status:        "open",
		LeadingAmount: 150,
		Leader:        &leader,
		ActiveBids:    2,
	}, nil)

	status, resp := doJSON(t, router, http.MethodGet, "/auctions/auction1/leader", nil)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, 150.0, data["leading_amount"])
	require.Equal(t, "fanX", data["leader"].(map[string]any)["bidder_id"])

	mockService.EXPECT().GetBidderStanding(gomock.Any(), "auction1", "fanY").Return(bidding.BidderStanding{
		AuctionID:     "auction1",
		BidderID:      "fanY",
		Outbid:        true,
		LeadingAmount: 150,
		NextMinimum:   150,
	}, nil)

	status, resp = doJSON(t, router, http.MethodGet, "/auctions/auction1/bidders/fanY", nil)
	require.Equal(t, http.StatusOK, status)
	data = resp["data"].(map[string]any)
	require.Equal(t, true, data["outbid"])
	require.Equal(t, 150.0, data["next_minimum"])

	mockService.EXPECT().GetLeader(gomock.Any(), "missing").Return(bidding.Standing{}, engineerrors.ErrAuctionNotFound)
	status, _ = doJSON(t, router, http.MethodGet, "/auctions/missing/leader", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestCloseAuctionHandler(t *testing.T) {
	router, _, mockFinalizer := newTestRouter(t)

	winner := model.Bid{BidID: "b2", BidderID: "fanX", Amount: 150, Status: model.BidWon}
	mockFinalizer.EXPECT().FinalizeAuction(gomock.Any(), "auction1").Return(lifecycle.Finalization{
		FinalizationResult: model.FinalizationResult{
			AuctionID:  "auction1",
			WinningBid: &winner,
			LosingBids: []model.Bid{{BidID: "b1", BidderID: "fanY", Amount: 100, Status: model.BidLost}},
		},
		Meeting: &model.Meeting{MeetingID: "meet1", FanID: "fanX", Status: model.MeetingScheduled},
	}, nil)

	status, resp := doJSON(t, router, http.MethodPost, "/auctions/auction1/close", nil)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, "b2", data["winning_bid"].(map[string]any)["bid_id"])
	require.Equal(t, "meet1", data["meeting"].(map[string]any)["meeting_id"])

	mockFinalizer.EXPECT().FinalizeAuction(gomock.Any(), "auction2").Return(lifecycle.Finalization{}, engineerrors.ErrConflict)
	status, resp = doJSON(t, router, http.MethodPost, "/auctions/auction2/close", nil)
	require.Equal(t, http.StatusConflict, status)
	require.Contains(t, resp["message"], "record changed concurrently")
}
