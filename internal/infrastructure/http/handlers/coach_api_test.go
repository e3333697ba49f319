package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forkcast/forkcast/internal/infrastructure/monitoring"
	"github.com/forkcast/forkcast/internal/ports/inbound"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"github.com/forkcast/forkcast/pkg/errors"
	"github.com/forkcast/forkcast/test/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCoachService records the last command and returns canned results
type fakeCoachService struct {
	rankResult  *inbound.RankResult
	rankErr     error
	feedbackErr error

	lastRank     inbound.RankCommand
	lastFeedback inbound.FeedbackCommand
}

func (f *fakeCoachService) Rank(ctx context.Context, cmd inbound.RankCommand) (*inbound.RankResult, error) {
	f.lastRank = cmd
	if f.rankErr != nil {
		return nil, f.rankErr
	}
	return f.rankResult, nil
}

func (f *fakeCoachService) RecordFeedback(ctx context.Context, cmd inbound.FeedbackCommand) error {
	f.lastFeedback = cmd
	return f.feedbackErr
}

func newTestHandlers(svc inbound.CoachService, events outbound.EventRepository) *CoachHandlers {
	if events == nil {
		events = testutils.NewMemoryEventRepository()
	}
	return NewCoachHandlers(svc, events, monitoring.NewMetrics(), "test", zap.NewNop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleMessage_Success(t *testing.T) {
	svc := &fakeCoachService{
		rankResult: &inbound.RankResult{
			Items: []inbound.RankedItemDTO{
				{ItemID: "m101", Name: "Tofu Power Bowl", Restaurant: "Green Bowl Co.", Score: -11.5},
			},
			Tone:      "neutral",
			CoachText: "Hey there! Here are your matches.",
		},
	}
	h := newTestHandlers(svc, nil)

	rec := postJSON(t, h.HandleMessage, inbound.RankCommand{UserID: "u1", Message: "veg under 15"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "u1", svc.lastRank.UserID)
	assert.Equal(t, "veg under 15", svc.lastRank.Message)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result inbound.RankResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Tofu Power Bowl", result.Items[0].Name)
}

func TestHandleMessage_MalformedBody(t *testing.T) {
	h := newTestHandlers(&fakeCoachService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.HandleMessage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleMessage_MissingFields(t *testing.T) {
	h := newTestHandlers(&fakeCoachService{}, nil)

	rec := postJSON(t, h.HandleMessage, inbound.RankCommand{UserID: "u1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestHandleMessage_ServiceErrorMapsToStatus(t *testing.T) {
	svc := &fakeCoachService{rankErr: errors.NewDatabaseError("load weights", nil)}
	h := newTestHandlers(svc, nil)

	rec := postJSON(t, h.HandleMessage, inbound.RankCommand{UserID: "u1", Message: "hi"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database operation failed", decodeEnvelope(t, rec).Error)
}

func TestHandleFeedback_Success(t *testing.T) {
	svc := &fakeCoachService{}
	h := newTestHandlers(svc, nil)

	rec := postJSON(t, h.HandleFeedback, inbound.FeedbackCommand{
		UserID:           "u1",
		ChosenItemID:     "m101",
		NotChosenItemIDs: []string{"m102"},
		Rating:           9,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Feedback recorded successfully", resp.Message)
	assert.Equal(t, 9, svc.lastFeedback.Rating)
	assert.Equal(t, []string{"m102"}, svc.lastFeedback.NotChosenItemIDs)
}

func TestHandleFeedback_RatingOutOfRange(t *testing.T) {
	h := newTestHandlers(&fakeCoachService{}, nil)

	rec := postJSON(t, h.HandleFeedback, inbound.FeedbackCommand{
		UserID:       "u1",
		ChosenItemID: "m101",
		Rating:       11,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestHandleHistory_ReturnsUserEvents(t *testing.T) {
	events := testutils.NewMemoryEventRepository()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, events.Append(ctx, outbound.Event{
			ID:        uuid.New(),
			UserID:    "u1",
			Action:    "message",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}
	h := newTestHandlers(&fakeCoachService{}, events)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coach/users/u1/events?limit=2", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", "u1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var listed []outbound.Event
	require.NoError(t, json.Unmarshal(data, &listed))
	assert.Len(t, listed, 2)
}

func TestHandleHistory_InvalidLimit(t *testing.T) {
	h := newTestHandlers(&fakeCoachService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coach/users/u1/events?limit=9999", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", "u1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandlers(&fakeCoachService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "test", data["version"])
}
