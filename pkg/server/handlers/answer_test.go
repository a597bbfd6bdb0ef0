package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// mockAgent returns a canned answer or error
type mockAgent struct {
	answer *types.FormattedAnswer
	err    error
}

func (m *mockAgent) Answer(ctx context.Context, question string) (*types.FormattedAnswer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAgent) Close(ctx context.Context) error { return nil }

func answerRouter(agent *mockAgent) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAnswerHandler(agent, nil, nil)
	router.POST("/api/v1/answer", handler.Answer)
	return router
}

func postAnswer(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/answer", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnswerEndpoint(t *testing.T) {
	agent := &mockAgent{answer: &types.FormattedAnswer{
		Text:   "AAPL 10-Q 2024-05-03: Quarterly report",
		Intent: types.IntentSingleFact,
		Source: types.SourceLLM,
	}}

	w := postAnswer(t, answerRouter(agent), `{"question": "When did Apple last file a 10-Q?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["answer"] != "AAPL 10-Q 2024-05-03: Quarterly report" {
		t.Errorf("answer = %v", resp["answer"])
	}
	if resp["intent"] != "single_fact" {
		t.Errorf("intent = %v", resp["intent"])
	}
}

func TestAnswerEndpointRejectsBadRequests(t *testing.T) {
	router := answerRouter(&mockAgent{answer: &types.FormattedAnswer{}})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing question", `{}`},
		{"blank question", `{"question": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAnswer(t, router, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestAnswerEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation failure",
			err:  &types.ValidationError{Missing: []string{"date"}},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "store timeout",
			err:  types.NewStoreError(types.StoreErrorTimeout, context.DeadlineExceeded),
			want: http.StatusGatewayTimeout,
		},
		{
			name: "store connection",
			err:  types.NewStoreError(types.StoreErrorConnection, nil),
			want: http.StatusBadGateway,
		},
		{
			name: "store syntax",
			err:  types.NewStoreError(types.StoreErrorSyntax, nil),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := answerRouter(&mockAgent{err: tt.err})
			w := postAnswer(t, router, `{"question": "anything"}`)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
