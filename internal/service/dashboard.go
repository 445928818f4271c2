package service

import (
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/store"
	"github.com/Akshaya1307/workbuddy/internal/workflow"
)

// DashboardService assembles the activity overview.
type DashboardService struct {
	store         *store.Store
	log           *workflow.Log
	conversations *ConversationService
	logLimit      int
}

// NewDashboardService creates a dashboard over the shared records. logLimit
// is the default number of log entries shown.
func NewDashboardService(st *store.Store, log *workflow.Log, conversations *ConversationService, logLimit int) *DashboardService {
	if logLimit <= 0 {
		logLimit = model.DefaultDashboardLogLimit
	}
	return &DashboardService{
		store:         st,
		log:           log,
		conversations: conversations,
		logLimit:      logLimit,
	}
}

// Snapshot returns tickets, onboarding cases and the newest log entries.
// limit <= 0 uses the configured default.
func (s *DashboardService) Snapshot(limit int) *model.Dashboard {
	if limit <= 0 {
		limit = s.logLimit
	}
	d := &model.Dashboard{
		Tickets:         s.store.Tickets(),
		OnboardingCases: s.store.OnboardingCases(),
		RecentLogs:      s.log.Recent(limit),
		TotalLogs:       s.log.Len(),
	}
	if s.conversations != nil {
		d.Conversations = s.conversations.Count()
	}
	return d
}

// Tickets returns every access request ticket.
func (s *DashboardService) Tickets() []model.Ticket {
	return s.store.Tickets()
}

// OnboardingCases returns every onboarding case.
func (s *DashboardService) OnboardingCases() []model.OnboardingCase {
	return s.store.OnboardingCases()
}

// Logs returns up to limit log entries, newest first. limit <= 0 returns all.
func (s *DashboardService) Logs(limit int) *model.ListLogsResponse {
	return &model.ListLogsResponse{
		Entries: s.log.Recent(limit),
		Total:   s.log.Len(),
	}
}

// LogsAfter pages through the log, oldest first, after seq.
func (s *DashboardService) LogsAfter(seq uint64, limit int) ([]model.WorkflowLogEntry, uint64, bool) {
	return s.log.After(seq, limit)
}
