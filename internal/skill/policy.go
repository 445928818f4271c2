package skill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

// PolicySummary gives a short summary of an HR policy topic.
type PolicySummary struct {
	deps *Deps
}

// Name returns the skill name used in the workflow log.
func (s *PolicySummary) Name() string { return "SummarizePolicy" }

// Intent returns the intent the skill answers.
func (s *PolicySummary) Intent() model.Intent { return model.IntentHRPolicy }

// Handle summarizes the policy topic named in the message.
func (s *PolicySummary) Handle(ctx context.Context, req Request) (*model.Reply, error) {
	d := s.deps
	topic := d.Classifier.ExtractPolicyTopic(req.Message)
	policy, ok := d.Catalog.Policy(topic)
	if !ok {
		return nil, fmt.Errorf("no policy text for topic %q", topic)
	}

	body := bulletList(policy.Points)
	source := "catalog"
	if d.Summarizer != nil {
		summary, err := d.Summarizer.Summarize(ctx, topic, policy.Points)
		switch {
		case err != nil:
			d.log().Warn("policy summarizer failed, using canned summary",
				zap.String("topic", topic),
				zap.Error(err),
			)
		case strings.TrimSpace(summary) != "":
			body = strings.TrimSpace(summary)
			source = "summarizer"
		}
	}

	d.record(ctx, model.AgentHR, s.Name(), "Completed", topic, "Policy summary provided to user")

	text := fmt.Sprintf("🟣 **HR Agent**\n\n"+
		"Here’s a quick summary of the **%s policy**:\n"+
		"%s\n\n"+
		"For complete details, please visit the HR handbook or HR portal.", topic, body)

	return &model.Reply{
		Agent:  model.AgentHR,
		Intent: s.Intent(),
		Text:   text,
		Meta: map[string]any{
			"agent":     "HR",
			"type":      "policy",
			"topic":     topic,
			"source":    source,
			"timestamp": d.now().Format(time.RFC3339),
		},
	}, nil
}

func bulletList(points []string) string {
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = "- " + p
	}
	return strings.Join(lines, "\n")
}
