// Package model defines data structures for the WorkBuddy assistant.
package model

import (
	"time"
)

// ConversationContext is the per-session state the router mutates in place.
type ConversationContext struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	LastIntent Intent         `json:"last_intent,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	MessageCount int `json:"message_count"`
}

// NewConversationContext returns a context for userID with an empty metadata map.
func NewConversationContext(id, userID string, now time.Time) *ConversationContext {
	return &ConversationContext{
		ID:        id,
		UserID:    userID,
		Metadata:  make(map[string]any),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy that does not share the metadata map.
func (c *ConversationContext) Clone() *ConversationContext {
	if c == nil {
		return nil
	}
	out := *c
	out.Metadata = make(map[string]any, len(c.Metadata))
	for k, v := range c.Metadata {
		out.Metadata[k] = v
	}
	return &out
}

// CreateConversationRequest is the request to open a chat session.
type CreateConversationRequest struct {
	UserID   string         `json:"user_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ListConversationsResponse is the response for listing chat sessions.
type ListConversationsResponse struct {
	Conversations []ConversationContext `json:"conversations"`
	Total         int                   `json:"total"`
	HasMore       bool                  `json:"has_more"`
}
