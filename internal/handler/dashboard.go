package handler

import (
	"net/http"

	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/service"
)

// maxLogLimit bounds ?limit on log listings.
const maxLogLimit = 500

// DashboardHandler serves the activity overview and demo records.
type DashboardHandler struct {
	dashboard    *service.DashboardService
	quickActions []model.QuickAction
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dashboard *service.DashboardService, quickActions []model.QuickAction) *DashboardHandler {
	return &DashboardHandler{
		dashboard:    dashboard,
		quickActions: quickActions,
	}
}

// Dashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Snapshot(queryInt(r, "limit", 0, maxLogLimit)))
}

// Tickets handles GET /api/v1/tickets
func (h *DashboardHandler) Tickets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tickets": h.dashboard.Tickets(),
	})
}

// Onboarding handles GET /api/v1/onboarding
func (h *DashboardHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"onboarding_cases": h.dashboard.OnboardingCases(),
	})
}

// Logs handles GET /api/v1/workflow/logs. Without ?limit every entry is
// returned, newest first.
func (h *DashboardHandler) Logs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Logs(queryInt(r, "limit", 0, maxLogLimit)))
}

// QuickActions handles GET /api/v1/quick-actions
func (h *DashboardHandler) QuickActions(w http.ResponseWriter, r *http.Request) {
	actions := h.quickActions
	if actions == nil {
		actions = []model.QuickAction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"quick_actions": actions,
	})
}
