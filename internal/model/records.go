package model

import (
	"time"
)

// TicketStatus is the lifecycle state of an access request ticket.
type TicketStatus string

const (
	TicketPendingApproval TicketStatus = "Pending Manager Approval"
	TicketApproved        TicketStatus = "Approved"
)

// Ticket is an access request raised by the IT agent.
type Ticket struct {
	ID        string       `json:"ticket_id"`
	UserID    string       `json:"user_id"`
	Tool      string       `json:"tool"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// CaseStatus is the state of an onboarding case.
type CaseStatus string

const (
	CaseCompleted CaseStatus = "Completed"
)

// OnboardingCase is an onboarding workflow started for a role.
type OnboardingCase struct {
	ID        string     `json:"case_id"`
	UserID    string     `json:"user_id"`
	Role      string     `json:"role"`
	Steps     []string   `json:"steps"`
	Status    CaseStatus `json:"status"`
	StartedAt time.Time  `json:"started_at"`
}
