package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)
	agentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// printer writes replies and dashboards to the terminal.
type printer struct {
	out io.Writer
	md  *glamour.TermRenderer // nil prints raw markdown
}

func newPrinter(out io.Writer, styled bool) *printer {
	p := &printer{out: out}
	if styled {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			p.md = renderer
		}
	}
	return p
}

func (p *printer) markdown(text string) {
	if p.md != nil {
		if rendered, err := p.md.Render(text); err == nil {
			fmt.Fprint(p.out, rendered)
			return
		}
	}
	fmt.Fprintln(p.out, text)
}

func (p *printer) title(text string) {
	fmt.Fprintln(p.out, titleStyle.Render(text))
}

func (p *printer) muted(text string) {
	fmt.Fprintln(p.out, mutedStyle.Render(text))
}

func (p *printer) fail(err error) {
	fmt.Fprintln(p.out, errorStyle.Render("error: "+err.Error()))
}

func (p *printer) reply(r *model.Reply) {
	fmt.Fprintln(p.out, agentStyle.Render(r.Agent))
	p.markdown(r.Text)
}

func (p *printer) dashboard(d *model.Dashboard) {
	p.title("Activity Dashboard")
	p.markdown(dashboardMarkdown(d))
}

// dashboardMarkdown lays out tickets, onboarding cases and recent log entries.
func dashboardMarkdown(d *model.Dashboard) string {
	var b strings.Builder

	b.WriteString("### 🔐 Recent Access Requests\n\n")
	if len(d.Tickets) == 0 {
		b.WriteString("_" + model.EmptyTicketsHint + "_\n\n")
	} else {
		b.WriteString("| Ticket | User | Tool | Status | Created |\n|---|---|---|---|---|\n")
		for _, t := range d.Tickets {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				t.ID, cell(t.UserID), cell(t.Tool), t.Status, t.CreatedAt.Format(model.ClockFormat))
		}
		b.WriteString("\n")
	}

	b.WriteString("### 🎓 Onboarding Workflows\n\n")
	if len(d.OnboardingCases) == 0 {
		b.WriteString("_" + model.EmptyOnboardingHint + "_\n\n")
	} else {
		b.WriteString("| Case | User | Role | Steps | Status |\n|---|---|---|---|---|\n")
		for _, c := range d.OnboardingCases {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
				c.ID, cell(c.UserID), cell(c.Role), len(c.Steps), c.Status)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "### 🛠 Workflow Logs (%d of %d)\n\n", len(d.RecentLogs), d.TotalLogs)
	b.WriteString(logsMarkdown(d.RecentLogs))
	return b.String()
}

// logsMarkdown renders log entries as a table in the order given.
func logsMarkdown(entries []model.WorkflowLogEntry) string {
	if len(entries) == 0 {
		return "_" + model.EmptyLogsHint + "_\n"
	}
	var b strings.Builder
	b.WriteString("| # | Time | Agent | Skill | Status | Ref | Details |\n|---|---|---|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			e.Sequence, e.Clock(), cell(e.Agent), cell(e.Skill), cell(e.Status),
			cell(e.RefOrDash()), cell(e.DetailsOrDash()))
	}
	return b.String()
}

// actionsMarkdown numbers the quick actions from 1.
func actionsMarkdown(actions []model.QuickAction) string {
	if len(actions) == 0 {
		return "_No quick actions configured._\n"
	}
	var b strings.Builder
	for i, a := range actions {
		fmt.Fprintf(&b, "%d. **%s**: %q\n", i+1, a.Label, a.Prompt)
	}
	return b.String()
}

// cell keeps user text from breaking a markdown table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
