package skill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/store"
	"github.com/Akshaya1307/workbuddy/pkg/metrics"
)

// AccessRequest raises a tool access ticket, auto-approves it and grants
// access, all within the one call.
type AccessRequest struct {
	deps *Deps
}

// Name returns the skill name used in the workflow log.
func (s *AccessRequest) Name() string { return "CreateAccessRequest" }

// Intent returns the intent the skill answers.
func (s *AccessRequest) Intent() model.Intent { return model.IntentRequestAccess }

// Handle creates, approves and grants an access request for the named tool.
func (s *AccessRequest) Handle(ctx context.Context, req Request) (*model.Reply, error) {
	d := s.deps
	tool := d.Classifier.ExtractTool(req.Message)

	ticket := &model.Ticket{
		ID:        d.Store.NewID(store.TicketPrefix),
		UserID:    req.UserID(),
		Tool:      tool,
		Status:    model.TicketPendingApproval,
		CreatedAt: d.now(),
	}
	if err := d.Store.AddTicket(ticket); err != nil {
		return nil, fmt.Errorf("create access request: %w", err)
	}
	metrics.TicketsTotal.WithLabelValues(tool).Inc()
	d.record(ctx, model.AgentIT, s.Name(), "Created", ticket.ID, "Tool: "+tool)

	// manager approval is simulated
	if err := d.Store.SetTicketStatus(ticket.ID, model.TicketApproved); err != nil {
		return nil, fmt.Errorf("approve access request: %w", err)
	}
	ticket.Status = model.TicketApproved
	d.record(ctx, model.AgentManager, "ApproveAccessRequest", "Approved", ticket.ID,
		"Auto-approved for demo for "+tool)

	d.record(ctx, model.AgentIT, "GrantAccess", "Completed", ticket.ID,
		"Access granted to "+tool)

	d.log().Info("access request processed",
		zap.String("ticket_id", ticket.ID),
		zap.String("tool", tool),
		zap.String("user_id", ticket.UserID),
	)

	text := fmt.Sprintf("🔵 **IT Agent**\n\n"+
		"Your access request for **%s** has been processed.\n\n"+
		"**Ticket:** `%s`\n"+
		"**Status:** ✅ Approved\n"+
		"**Action:** Access has been granted.\n\n"+
		"*For the purposes of this demo, manager approval is automatically simulated.*",
		tool, ticket.ID)

	return &model.Reply{
		Agent:  model.AgentIT,
		Intent: s.Intent(),
		Text:   text,
		Meta: map[string]any{
			"ticket_id":  ticket.ID,
			"user_id":    ticket.UserID,
			"tool":       ticket.Tool,
			"status":     string(ticket.Status),
			"created_at": ticket.CreatedAt,
		},
	}, nil
}
