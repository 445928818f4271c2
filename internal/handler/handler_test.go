package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshaya1307/workbuddy/internal/app"
	"github.com/Akshaya1307/workbuddy/internal/config"
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{DashboardLogLimit: 15}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func newTestRouter(t *testing.T, cfg RouterConfig) (*app.App, http.Handler) {
	t.Helper()
	a := newTestApp(t)
	return a, NewRouter(a, cfg, logger.NewNop())
}

func do(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createConversation(t *testing.T, h http.Handler, headers map[string]string) model.ConversationContext {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/conversations", nil, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.ConversationContext](t, rec)
}

func TestHealthAndReady(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})

	rec := do(t, h, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Without NATS configured the server is ready.
	rec = do(t, h, http.MethodGet, "/ready", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[map[string]string](t, rec)["status"])

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestConversationLifecycle(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})

	conv := createConversation(t, h, nil)
	assert.Equal(t, "akshaya", conv.UserID)

	rec := do(t, h, http.MethodGet, "/api/v1/conversations/"+conv.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, conv.ID, decode[model.ConversationContext](t, rec).ID)

	rec = do(t, h, http.MethodGet, "/api/v1/conversations", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[model.ListConversationsResponse](t, rec).Total)

	rec = do(t, h, http.MethodDelete, "/api/v1/conversations/"+conv.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/conversations/"+conv.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConversationValidation(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})

	rec := do(t, h, http.MethodGet, "/api/v1/conversations/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/conversations/0190b4a0-0000-7000-8000-000000000000", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHeaderScopesConversations(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})
	ravi := map[string]string{"X-User-ID": "ravi"}

	conv := createConversation(t, h, ravi)
	assert.Equal(t, "ravi", conv.UserID)

	rec := do(t, h, http.MethodGet, "/api/v1/conversations/"+conv.ID, nil, map[string]string{"X-User-ID": "meena"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/conversations/"+conv.ID+"/messages",
		model.SendMessageRequest{Content: "leave balance"}, ravi)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[model.SendMessageResponse](t, rec)
	assert.Contains(t, resp.Reply.Text, "**6 days**")
}

func TestSendMessageRoutesSkills(t *testing.T) {
	tests := []struct {
		name    string
		content string
		intent  model.Intent
		agent   string
		want    string
	}{
		{"leave", "How many casual leaves do I have?", model.IntentCheckLeave, model.AgentHR, "**4 days**"},
		{"access", "I need Salesforce access.", model.IntentRequestAccess, model.AgentIT, "Salesforce"},
		{"onboarding", "Start onboarding a new analyst", model.IntentStartOnboarding, model.AgentOnboarding, "Analyst"},
		{"policy", "Summarize the travel policy", model.IntentHRPolicy, model.AgentHR, "travel"},
		{"general", "hello there", model.IntentGeneral, model.AgentGeneral, "I can help you with"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestRouter(t, RouterConfig{})
			conv := createConversation(t, h, nil)

			rec := do(t, h, http.MethodPost, "/api/v1/conversations/"+conv.ID+"/messages",
				model.SendMessageRequest{Content: tt.content}, nil)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			resp := decode[model.SendMessageResponse](t, rec)
			assert.Equal(t, tt.intent, resp.Reply.Intent)
			assert.Equal(t, tt.agent, resp.Reply.Agent)
			assert.Contains(t, resp.Reply.Text, tt.want)
			assert.Equal(t, tt.intent, resp.Context.LastIntent)

			rec = do(t, h, http.MethodGet, "/api/v1/conversations/"+conv.ID+"/messages", nil, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			list := decode[model.ListMessagesResponse](t, rec)
			require.Len(t, list.Messages, 2)
			assert.Equal(t, model.RoleUser, list.Messages[0].Role)
			assert.Equal(t, model.RoleAssistant, list.Messages[1].Role)
		})
	}
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})
	conv := createConversation(t, h, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/conversations/"+conv.ID+"/messages",
		model.SendMessageRequest{Content: ""}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/conversations/"+conv.ID+"/messages",
		model.SendMessageRequest{Content: "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardEndpoints(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})
	conv := createConversation(t, h, nil)

	for _, content := range []string{"I need Jira access", "Start onboarding a new developer"} {
		rec := do(t, h, http.MethodPost, "/api/v1/conversations/"+conv.ID+"/messages",
			model.SendMessageRequest{Content: content}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/v1/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[model.Dashboard](t, rec)
	require.Len(t, dash.Tickets, 1)
	assert.Equal(t, "Jira", dash.Tickets[0].Tool)
	assert.Equal(t, model.TicketApproved, dash.Tickets[0].Status)
	require.Len(t, dash.OnboardingCases, 1)
	assert.Equal(t, "Developer", dash.OnboardingCases[0].Role)
	// three access entries plus five onboarding entries
	assert.Equal(t, 8, dash.TotalLogs)
	assert.Equal(t, 1, dash.Conversations)
	assert.Equal(t, uint64(8), dash.RecentLogs[0].Sequence)

	rec = do(t, h, http.MethodGet, "/api/v1/dashboard?limit=2", nil, nil)
	assert.Len(t, decode[model.Dashboard](t, rec).RecentLogs, 2)

	rec = do(t, h, http.MethodGet, "/api/v1/workflow/logs?limit=3", nil, nil)
	logs := decode[model.ListLogsResponse](t, rec)
	assert.Len(t, logs.Entries, 3)
	assert.Equal(t, 8, logs.Total)

	rec = do(t, h, http.MethodGet, "/api/v1/tickets", nil, nil)
	assert.Len(t, decode[map[string][]model.Ticket](t, rec)["tickets"], 1)

	rec = do(t, h, http.MethodGet, "/api/v1/onboarding", nil, nil)
	assert.Len(t, decode[map[string][]model.OnboardingCase](t, rec)["onboarding_cases"], 1)
}

func TestQuickActions(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})

	rec := do(t, h, http.MethodGet, "/api/v1/quick-actions", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	actions := decode[map[string][]model.QuickAction](t, rec)["quick_actions"]
	require.Len(t, actions, 4)
	assert.Equal(t, "Check Leave Balance", actions[0].Label)
}

func TestBearerIdentity(t *testing.T) {
	const secret = "test-secret"
	_, h := newTestRouter(t, RouterConfig{JWTSecret: secret})

	rec := do(t, h, http.MethodGet, "/api/v1/conversations", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/conversations", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "priya",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + signed}

	// The token subject wins over a body user.
	rec = do(t, h, http.MethodPost, "/api/v1/conversations", model.CreateConversationRequest{UserID: "someone"}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "priya", decode[model.ConversationContext](t, rec).UserID)

	// Health stays open.
	rec = do(t, h, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/api/v1/quick-actions", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/api/v1/quick-actions", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Another user has its own budget.
	rec = do(t, h, http.MethodGet, "/api/v1/quick-actions", nil, map[string]string{"X-User-ID": "ravi"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestRouter(t, RouterConfig{})

	do(t, h, http.MethodGet, "/health", nil, nil)
	rec := do(t, h, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_requests_total")
}
