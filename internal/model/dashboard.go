package model

// DefaultDashboardLogLimit is how many log entries the dashboard shows.
const DefaultDashboardLogLimit = 15

// Dashboard is the activity overview rendered next to the chat.
type Dashboard struct {
	Tickets         []Ticket           `json:"tickets"`
	OnboardingCases []OnboardingCase   `json:"onboarding_cases"`
	RecentLogs      []WorkflowLogEntry `json:"recent_logs"`
	TotalLogs       int                `json:"total_logs"`
	Conversations   int                `json:"conversations"`
}

// Empty-state hints shown when a dashboard section has nothing yet.
const (
	EmptyTicketsHint    = "No IT access requests yet. Ask for Salesforce, Jira, or VPN access from the chat."
	EmptyOnboardingHint = "No onboarding workflows started yet. Try: \"Start onboarding a new analyst\" in chat."
	EmptyLogsHint       = "No workflow logs yet. Interact with WorkBuddy in the chat to generate some."
)
