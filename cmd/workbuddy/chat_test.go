package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshaya1307/workbuddy/internal/app"
	"github.com/Akshaya1307/workbuddy/internal/config"
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

func newTestSession(t *testing.T, user string) (*session, *bytes.Buffer) {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	var out bytes.Buffer
	s, err := newSession(context.Background(), a, user, newPrinter(&out, false))
	require.NoError(t, err)
	return s, &out
}

func TestAskPrintsReply(t *testing.T) {
	s, out := newTestSession(t, "")

	require.NoError(t, s.ask(context.Background(), "How many casual leaves do I have?"))
	assert.Contains(t, out.String(), model.AgentHR)
	assert.Contains(t, out.String(), "**4 days**")
}

func TestAskUsesSessionUser(t *testing.T) {
	s, out := newTestSession(t, "ravi")

	require.NoError(t, s.ask(context.Background(), "leave balance"))
	assert.Contains(t, out.String(), "**6 days**")
}

func TestRunCommands(t *testing.T) {
	s, out := newTestSession(t, "")

	input := strings.Join([]string{
		"",
		"/actions",
		"/quick 2",
		"/dashboard",
		"/logs 2",
		"/quick 9",
		"/nope",
		"/quit",
		"never read",
	}, "\n")
	require.NoError(t, s.run(context.Background(), strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, "Signed in as akshaya")
	assert.Contains(t, text, "1. **Check Leave Balance**")
	assert.Contains(t, text, "I need Salesforce access.")
	assert.Contains(t, text, "| Salesforce |")
	assert.Contains(t, text, model.EmptyOnboardingHint)
	assert.Contains(t, text, "Workflow Logs (2 of 3)")
	assert.Contains(t, text, "quick action must be between 1 and 4")
	assert.Contains(t, text, "unknown command /nope")
	assert.Contains(t, text, "Bye!")

	resp := s.app.Dashboard.Logs(0)
	assert.Equal(t, 3, resp.Total)
}

func TestRunStopsAtEOF(t *testing.T) {
	s, out := newTestSession(t, "")

	require.NoError(t, s.run(context.Background(), strings.NewReader("hello")))
	assert.Contains(t, out.String(), "I can help you with")
}

func TestDashboardMarkdownEmpty(t *testing.T) {
	md := dashboardMarkdown(&model.Dashboard{})
	assert.Contains(t, md, model.EmptyTicketsHint)
	assert.Contains(t, md, model.EmptyOnboardingHint)
	assert.Contains(t, md, model.EmptyLogsHint)
	assert.Contains(t, md, "Workflow Logs (0 of 0)")
}

func TestLogsMarkdown(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 5, 0, time.UTC)
	md := logsMarkdown([]model.WorkflowLogEntry{
		{Sequence: 2, Time: at, Agent: model.AgentGeneral, Skill: "HelpMessage", Status: "Shown"},
		{Sequence: 1, Time: at, Agent: model.AgentHR, Skill: "CheckLeaveBalance", Status: "Completed", RefID: "akshaya", Details: "a|b"},
	})

	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| 2 | 09:30:05 | General Assistant | HelpMessage | Shown | - | - |", lines[2])
	assert.Equal(t, `| 1 | 09:30:05 | HR Agent | CheckLeaveBalance | Completed | akshaya | a\|b |`, lines[3])
}

func TestStyledPrinterRendersMarkdown(t *testing.T) {
	var out bytes.Buffer
	p := newPrinter(&out, true)
	p.markdown("# Leave\n\nWorkBuddy is ready")
	require.NotNil(t, p.md)
	assert.Contains(t, out.String(), "WorkBuddy is ready")
}

func TestRootCommandAsk(t *testing.T) {
	t.Setenv("NATS_URL", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"ask", "--plain", "--user", "meena", "I", "need", "VPN", "access"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "VPN")
	assert.Contains(t, out.String(), model.AgentIT)
}
