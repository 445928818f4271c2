// Package workflow records the simulated orchestration steps each skill
// performs. The log is append-only and lives only in process memory.
package workflow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
	"github.com/Akshaya1307/workbuddy/pkg/metrics"
)

// Sink receives every appended entry, e.g. an event bus feed.
type Sink interface {
	PublishLogEntry(ctx context.Context, entry model.WorkflowLogEntry) error
}

// Option configures a Log.
type Option func(*Log)

// WithSink forwards appended entries to s.
func WithSink(s Sink) Option {
	return func(l *Log) {
		if s != nil {
			l.sinks = append(l.sinks, s)
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

// Log is the shared workflow execution log.
type Log struct {
	mu      sync.RWMutex
	entries []model.WorkflowLogEntry
	seq     uint64

	sinks  []Sink
	now    func() time.Time
	logger *logger.Logger
}

// NewLog creates an empty log.
func NewLog(log *logger.Logger, opts ...Option) *Log {
	if log == nil {
		log = logger.NewNop()
	}
	l := &Log{
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append stamps the entry with the next sequence number and the current time
// and stores it. Sink failures are logged and do not fail the append.
func (l *Log) Append(ctx context.Context, entry model.WorkflowLogEntry) model.WorkflowLogEntry {
	l.mu.Lock()
	l.seq++
	entry.Sequence = l.seq
	entry.Time = l.now()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	metrics.RecordWorkflowStep(entry.Agent, entry.Skill, entry.Status)
	l.logger.Debug("workflow step",
		zap.Uint64("sequence", entry.Sequence),
		zap.String("agent", entry.Agent),
		zap.String("skill", entry.Skill),
		zap.String("status", entry.Status),
		zap.String("ref_id", entry.RefID),
	)

	for _, s := range l.sinks {
		if err := s.PublishLogEntry(ctx, entry); err != nil {
			l.logger.Warn("failed to publish workflow step",
				zap.Uint64("sequence", entry.Sequence),
				zap.Error(err),
			)
		}
	}
	return entry
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of every entry, oldest first.
func (l *Log) Entries() []model.WorkflowLogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.WorkflowLogEntry(nil), l.entries...)
}

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (l *Log) Recent(n int) []model.WorkflowLogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := len(l.entries)
	if n <= 0 || n > total {
		n = total
	}
	out := make([]model.WorkflowLogEntry, 0, n)
	for i := total - 1; i >= total-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// After returns up to limit entries with a sequence greater than seq, the last
// sequence returned (seq when nothing was returned) and whether more remain.
func (l *Log) After(seq uint64, limit int) ([]model.WorkflowLogEntry, uint64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// sequences start at 1 and are contiguous
	if seq >= uint64(len(l.entries)) {
		return nil, seq, false
	}
	start := int(seq)
	end := len(l.entries)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	out := append([]model.WorkflowLogEntry(nil), l.entries[start:end]...)
	return out, out[len(out)-1].Sequence, end < len(l.entries)
}
