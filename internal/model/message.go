package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Agent labels shown next to assistant replies and in the workflow log.
const (
	AgentHR         = "HR Agent"
	AgentIT         = "IT Agent"
	AgentManager    = "Manager Agent"
	AgentOnboarding = "Onboarding Agent"
	AgentGeneral    = "General Assistant"
)

// Message is one entry of a session's chat history.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	Agent          string    `json:"agent,omitempty"`
	Intent         Intent    `json:"intent,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Reply is what a skill hands back to the router.
type Reply struct {
	Agent  string         `json:"agent"`
	Intent Intent         `json:"intent"`
	Text   string         `json:"text"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// SendMessageRequest is the request to send a chat message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse carries both sides of one chat exchange.
type SendMessageResponse struct {
	UserMessage      Message              `json:"user_message"`
	AssistantMessage Message              `json:"assistant_message"`
	Reply            Reply                `json:"reply"`
	Context          *ConversationContext `json:"context"`
}

// ListMessagesResponse is the response for listing chat history.
type ListMessagesResponse struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
}

// QuickAction is a canned prompt offered by the clients.
type QuickAction struct {
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}
