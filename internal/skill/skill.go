// Package skill implements the canned handlers the router dispatches to. Each
// skill formats a markdown reply and records its simulated steps in the
// workflow log.
package skill

import (
	"context"
	"time"

	"github.com/Akshaya1307/workbuddy/internal/catalog"
	"github.com/Akshaya1307/workbuddy/internal/intent"
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/store"
	"github.com/Akshaya1307/workbuddy/internal/workflow"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

// Request is the input to a skill.
type Request struct {
	Conversation *model.ConversationContext
	Message      string
}

// UserID returns the session user, or "" without a session.
func (r Request) UserID() string {
	if r.Conversation == nil {
		return ""
	}
	return r.Conversation.UserID
}

// Skill handles one intent.
type Skill interface {
	// Name is the skill name shown in the workflow log.
	Name() string
	// Intent is the intent the skill answers.
	Intent() model.Intent
	// Handle produces the reply and its log side effects.
	Handle(ctx context.Context, req Request) (*model.Reply, error)
}

// Summarizer rephrases canned policy points. Implementations may call out to a
// language model.
type Summarizer interface {
	Summarize(ctx context.Context, topic string, points []string) (string, error)
}

// Deps are the shared collaborators the built-in skills use.
type Deps struct {
	Catalog    *catalog.Catalog
	Classifier *intent.Classifier
	Store      *store.Store
	Log        *workflow.Log
	Summarizer Summarizer
	Logger     *logger.Logger
	Now        func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) log() *logger.Logger {
	if d.Logger == nil {
		return logger.NewNop()
	}
	return d.Logger
}

func (d *Deps) record(ctx context.Context, agent, skill, status, ref, details string) {
	d.Log.Append(ctx, model.WorkflowLogEntry{
		Agent:   agent,
		Skill:   skill,
		Status:  status,
		RefID:   ref,
		Details: details,
	})
}

// Builtin returns the five built-in skills.
func Builtin(d *Deps) []Skill {
	return []Skill{
		&LeaveBalance{deps: d},
		&AccessRequest{deps: d},
		&Onboarding{deps: d},
		&PolicySummary{deps: d},
		&Help{deps: d},
	}
}
