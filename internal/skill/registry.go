package skill

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

// ErrDuplicateSkill is returned when an intent already has a skill.
var ErrDuplicateSkill = errors.New("skill already registered")

// Registry maps intents to skills.
type Registry struct {
	mu     sync.RWMutex
	skills map[model.Intent]Skill
}

// NewRegistry builds a registry holding skills.
func NewRegistry(skills ...Skill) (*Registry, error) {
	r := &Registry{skills: make(map[model.Intent]Skill)}
	for _, s := range skills {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register installs a skill for its intent.
func (r *Registry) Register(s Skill) error {
	if s == nil {
		return errors.New("skill is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.skills[s.Intent()]; ok {
		return fmt.Errorf("%s for %s (%s): %w", s.Name(), s.Intent(), existing.Name(), ErrDuplicateSkill)
	}
	r.skills[s.Intent()] = s
	return nil
}

// Lookup returns the skill for an intent.
func (r *Registry) Lookup(i model.Intent) (Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[i]
	return s, ok
}

// Intents returns the registered intents, sorted.
func (r *Registry) Intents() []model.Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Intent, 0, len(r.skills))
	for i := range r.skills {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
