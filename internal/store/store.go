// Package store keeps the process-local ticket and onboarding case records.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Prefixes for generated record identifiers.
const (
	TicketPrefix     = "TKT"
	OnboardingPrefix = "OB"
)

// Store holds tickets and onboarding cases in insertion order. Nothing
// survives a restart.
type Store struct {
	mu      sync.RWMutex
	tickets []*model.Ticket
	cases   []*model.OnboardingCase
	ids     map[string]struct{}

	// newHex returns a random upper-case hex string; replaced in tests.
	newHex func() string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		ids:    make(map[string]struct{}),
		newHex: randomHex,
	}
}

func randomHex() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// NewID reserves an identifier of the form PREFIX-XXXXXX that no other record
// in the store uses.
func (s *Store) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id := prefix + "-" + s.newHex()[:6]
		if _, taken := s.ids[id]; !taken {
			s.ids[id] = struct{}{}
			return id
		}
	}
}

// AddTicket stores a ticket.
func (s *Store) AddTicket(t *model.Ticket) error {
	if t == nil || t.ID == "" {
		return errors.New("ticket id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tickets {
		if existing.ID == t.ID {
			return fmt.Errorf("ticket %s already exists", t.ID)
		}
	}
	s.ids[t.ID] = struct{}{}
	cp := *t
	s.tickets = append(s.tickets, &cp)
	return nil
}

// SetTicketStatus moves a ticket to status.
func (s *Store) SetTicketStatus(id string, status model.TicketStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return fmt.Errorf("ticket %s: %w", id, ErrNotFound)
}

// Ticket returns a copy of one ticket.
func (s *Store) Ticket(id string) (model.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return *t, nil
		}
	}
	return model.Ticket{}, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
}

// Tickets returns copies of all tickets in creation order.
func (s *Store) Tickets() []model.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Ticket, len(s.tickets))
	for i, t := range s.tickets {
		out[i] = *t
	}
	return out
}

// AddOnboardingCase stores an onboarding case.
func (s *Store) AddOnboardingCase(c *model.OnboardingCase) error {
	if c == nil || c.ID == "" {
		return errors.New("onboarding case id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.cases {
		if existing.ID == c.ID {
			return fmt.Errorf("onboarding case %s already exists", c.ID)
		}
	}
	s.ids[c.ID] = struct{}{}
	cp := *c
	cp.Steps = append([]string(nil), c.Steps...)
	s.cases = append(s.cases, &cp)
	return nil
}

// OnboardingCase returns a copy of one case.
func (s *Store) OnboardingCase(id string) (model.OnboardingCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		if c.ID == id {
			return copyCase(c), nil
		}
	}
	return model.OnboardingCase{}, fmt.Errorf("onboarding case %s: %w", id, ErrNotFound)
}

// OnboardingCases returns copies of all cases in start order.
func (s *Store) OnboardingCases() []model.OnboardingCase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.OnboardingCase, len(s.cases))
	for i, c := range s.cases {
		out[i] = copyCase(c)
	}
	return out
}

func copyCase(c *model.OnboardingCase) model.OnboardingCase {
	out := *c
	out.Steps = append([]string(nil), c.Steps...)
	return out
}
