package skill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/store"
	"github.com/Akshaya1307/workbuddy/pkg/metrics"
)

// Onboarding opens an onboarding case for the role named in the message and
// marks every step done straight away.
type Onboarding struct {
	deps *Deps
}

// Name returns the skill name used in the workflow log.
func (s *Onboarding) Name() string { return "StartOnboarding" }

// Intent returns the intent the skill answers.
func (s *Onboarding) Intent() model.Intent { return model.IntentStartOnboarding }

// Handle starts an onboarding case for the named role.
func (s *Onboarding) Handle(ctx context.Context, req Request) (*model.Reply, error) {
	d := s.deps
	role := d.Classifier.ExtractRole(req.Message)

	c := &model.OnboardingCase{
		ID:        d.Store.NewID(store.OnboardingPrefix),
		UserID:    req.UserID(),
		Role:      role,
		Steps:     append([]string(nil), d.Catalog.OnboardingSteps...),
		Status:    model.CaseCompleted,
		StartedAt: d.now(),
	}
	if err := d.Store.AddOnboardingCase(c); err != nil {
		return nil, fmt.Errorf("start onboarding: %w", err)
	}
	metrics.OnboardingCasesTotal.WithLabelValues(role).Inc()

	d.record(ctx, model.AgentOnboarding, s.Name(), "Initiated", c.ID, "Role: "+role)
	for _, step := range c.Steps {
		d.record(ctx, model.AgentOnboarding, "OnboardingStep", "Completed", c.ID, step)
	}

	d.log().Info("onboarding case started",
		zap.String("case_id", c.ID),
		zap.String("role", role),
		zap.Int("steps", len(c.Steps)),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "🟢 **Onboarding Agent**\n\n")
	fmt.Fprintf(&b, "Started onboarding workflow for **%s**.\n\n", role)
	fmt.Fprintf(&b, "**Case ID:** `%s`\n", c.ID)
	fmt.Fprintf(&b, "**Status:** ✅ Completed (all steps initiated in this demo)\n\n")
	b.WriteString("**Steps executed:**\n")
	for i, step := range c.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + step)
	}

	return &model.Reply{
		Agent:  model.AgentOnboarding,
		Intent: s.Intent(),
		Text:   b.String(),
		Meta: map[string]any{
			"case_id":    c.ID,
			"user_id":    c.UserID,
			"role":       c.Role,
			"steps":      c.Steps,
			"status":     string(c.Status),
			"started_at": c.StartedAt,
		},
	}, nil
}
