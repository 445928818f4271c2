package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversationContextCloneDetachesMetadata(t *testing.T) {
	ctx := NewConversationContext("c1", "akshaya", time.Now())
	ctx.Metadata["channel"] = "web"

	clone := ctx.Clone()
	clone.Metadata["channel"] = "cli"
	clone.LastIntent = IntentHRPolicy

	assert.Equal(t, "web", ctx.Metadata["channel"])
	assert.Empty(t, ctx.LastIntent)
	assert.Nil(t, (*ConversationContext)(nil).Clone())
}

func TestWorkflowLogEntryDisplay(t *testing.T) {
	e := WorkflowLogEntry{Time: time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)}
	assert.Equal(t, "09:05:07", e.Clock())
	assert.Equal(t, "-", e.RefOrDash())
	assert.Equal(t, "-", e.DetailsOrDash())

	e.RefID = "TKT-ABC123"
	e.Details = "Tool: Jira"
	assert.Equal(t, "TKT-ABC123", e.RefOrDash())
	assert.Equal(t, "Tool: Jira", e.DetailsOrDash())
}

func TestIntentValid(t *testing.T) {
	for _, i := range Intents {
		assert.True(t, i.Valid(), i)
	}
	assert.False(t, Intent("book_flight").Valid())
}
