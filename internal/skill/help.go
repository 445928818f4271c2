package skill

import (
	"context"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

const helpText = "🤖 **General Assistant**\n\n" +
	"I can help you with:\n" +
	"- Checking your leave balance\n" +
	"- Requesting access (Salesforce, Jira, VPN…)\n" +
	"- Starting onboarding workflows\n" +
	"- Summarizing HR policies\n\n" +
	"Try asking me something like:\n" +
	"- *\"How many casual leaves do I have?\"*\n" +
	"- *\"I need Salesforce access\"*\n" +
	"- *\"Start onboarding a new analyst\"*"

// Help is the fallback for messages no other skill matched.
type Help struct {
	deps *Deps
}

// Name returns the skill name used in the workflow log.
func (s *Help) Name() string { return "HelpMessage" }

// Intent returns the intent the skill answers.
func (s *Help) Intent() model.Intent { return model.IntentGeneral }

// Handle replies with the list of things the assistant can do.
func (s *Help) Handle(ctx context.Context, _ Request) (*model.Reply, error) {
	s.deps.record(ctx, model.AgentGeneral, s.Name(), "Shown", "", "Displayed help options to user")
	return &model.Reply{
		Agent:  model.AgentGeneral,
		Intent: s.Intent(),
		Text:   helpText,
		Meta:   map[string]any{"agent": "General", "type": "info"},
	}, nil
}
