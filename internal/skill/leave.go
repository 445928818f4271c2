package skill

import (
	"context"
	"fmt"
	"time"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

// LeaveBalance answers how many casual leave days the user has left.
type LeaveBalance struct {
	deps *Deps
}

// Name returns the skill name used in the workflow log.
func (s *LeaveBalance) Name() string { return "CheckLeaveBalance" }

// Intent returns the intent the skill answers.
func (s *LeaveBalance) Intent() model.Intent { return model.IntentCheckLeave }

// Handle replies with the session user's leave balance.
func (s *LeaveBalance) Handle(ctx context.Context, req Request) (*model.Reply, error) {
	user := req.UserID()
	balance := s.deps.Catalog.LeaveBalance(user)

	s.deps.record(ctx, model.AgentHR, s.Name(), "Completed", user,
		fmt.Sprintf("Leave balance: %d days", balance))

	text := fmt.Sprintf("🟣 **HR Agent**\n\n"+
		"You currently have **%d days** of casual leave remaining.\n"+
		"If you want, I can help you plan a leave request next.", balance)

	return &model.Reply{
		Agent:  model.AgentHR,
		Intent: s.Intent(),
		Text:   text,
		Meta: map[string]any{
			"agent":     "HR",
			"type":      "leave_check",
			"balance":   balance,
			"timestamp": s.deps.now().Format(time.RFC3339),
		},
	}, nil
}
