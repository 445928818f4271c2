package workflow

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

type recordingSink struct {
	got []model.WorkflowLogEntry
	err error
}

func (s *recordingSink) PublishLogEntry(_ context.Context, e model.WorkflowLogEntry) error {
	s.got = append(s.got, e)
	return s.err
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func fill(t *testing.T, l *Log, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		l.Append(context.Background(), model.WorkflowLogEntry{
			Agent:  model.AgentGeneral,
			Skill:  "HelpMessage",
			Status: "Shown",
		})
	}
}

func TestAppendAssignsSequenceAndTime(t *testing.T) {
	l := NewLog(nil, WithClock(fixedClock()))

	first := l.Append(context.Background(), model.WorkflowLogEntry{Agent: model.AgentHR, Skill: "CheckLeaveBalance", Status: "Completed"})
	second := l.Append(context.Background(), model.WorkflowLogEntry{Agent: model.AgentIT, Skill: "GrantAccess", Status: "Completed"})

	assert.Equal(t, uint64(1), first.Sequence)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.Equal(t, "10:00:01", first.Clock())
	assert.Equal(t, "10:00:02", second.Clock())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []model.WorkflowLogEntry{first, second}, l.Entries())
}

func TestAppendForwardsToSinks(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("bus down")}
	l := NewLog(nil, WithSink(ok), WithSink(failing), WithSink(nil))

	entry := l.Append(context.Background(), model.WorkflowLogEntry{Agent: model.AgentHR, Skill: "SummarizePolicy", Status: "Completed"})

	require.Len(t, ok.got, 1)
	require.Len(t, failing.got, 1)
	assert.Equal(t, entry, ok.got[0])
	assert.Equal(t, 1, l.Len(), "sink errors do not drop the entry")
}

func TestRecentIsNewestFirst(t *testing.T) {
	l := NewLog(nil)
	assert.Empty(t, l.Recent(15))

	fill(t, l, 20)

	recent := l.Recent(15)
	require.Len(t, recent, 15)
	assert.Equal(t, uint64(20), recent[0].Sequence)
	assert.Equal(t, uint64(6), recent[14].Sequence)

	assert.Len(t, l.Recent(0), 20)
	assert.Len(t, l.Recent(100), 20)
}

func TestAfterPages(t *testing.T) {
	l := NewLog(nil)
	fill(t, l, 5)

	page, last, more := l.After(0, 2)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(2), last)
	assert.True(t, more)

	page, last, more = l.After(last, 2)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(3), page[0].Sequence)
	assert.Equal(t, uint64(4), last)
	assert.True(t, more)

	page, last, more = l.After(last, 2)
	require.Len(t, page, 1)
	assert.Equal(t, uint64(5), last)
	assert.False(t, more)

	page, last, more = l.After(last, 2)
	assert.Empty(t, page)
	assert.Equal(t, uint64(5), last)
	assert.False(t, more)

	page, _, more = l.After(0, 0)
	assert.Len(t, page, 5)
	assert.False(t, more)

	page, last, more = l.After(math.MaxUint64, 2)
	assert.Empty(t, page)
	assert.Equal(t, uint64(math.MaxUint64), last)
	assert.False(t, more)
}
