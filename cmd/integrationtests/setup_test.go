package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	bidding "fanmeet-engine/internal/biddingService"
	"fanmeet-engine/internal/eventlog"
	"fanmeet-engine/internal/lifecycle"
	"fanmeet-engine/internal/payment"
	"fanmeet-engine/internal/repository"
	"fanmeet-engine/internal/server"

	"github.com/gin-gonic/gin"
)

// T is the scheduled start of the meeting sold in every test auction
var T = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// TestEnv is the whole engine behind the real router
type TestEnv struct {
	Router  *gin.Engine
	Repo    *repository.MemoryRepo
	Gateway *payment.LedgerGateway
	Clock   *testClock
}

// SetupTestRouter initializes the router with in-memory repository for integration testing.
func SetupTestRouter(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &TestEnv{
		Repo:    repository.NewMemoryRepo(),
		Gateway: payment.NewLedgerGateway(),
		Clock:   &testClock{now: T.Add(-48 * time.Hour)},
	}
	log := eventlog.New(env.Repo, nil, "")
	biddingSvc := bidding.NewBiddingService(env.Repo, bidding.WithClock(env.Clock.Now), bidding.WithEventRecorder(log))
	lifecycleSvc := lifecycle.NewService(env.Repo, biddingSvc, env.Gateway,
		lifecycle.WithClock(env.Clock.Now),
		lifecycle.WithEventSink(log),
	)
	env.Router = server.SetupRouter(biddingSvc, lifecycleSvc, log)
	return env
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// Data returns the data object of a successful envelope
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}
