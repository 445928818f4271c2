package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/Akshaya1307/workbuddy/internal/model"
)

const (
	// StreamName is the name of the activity stream.
	StreamName = "WORKBUDDY"

	// SubjectPrefix is the prefix for all activity subjects.
	SubjectPrefix = "workbuddy"
)

// Publisher is the subset of JetStream the stream manager publishes through.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// StreamManager publishes workflow log entries and chat messages.
type StreamManager struct {
	js  jetstream.JetStream
	pub Publisher
}

// NewStreamManager creates a stream manager on client.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{js: client.JetStream(), pub: client.JetStream()}
}

// NewPublisherStreamManager creates a stream manager that only publishes.
func NewPublisherStreamManager(pub Publisher) *StreamManager {
	return &StreamManager{pub: pub}
}

// EnsureStream creates the activity stream when it does not exist. The stream
// uses memory storage and a short max age; it is a live feed, not a record.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	if m.js == nil {
		return fmt.Errorf("stream manager has no JetStream context")
	}

	if _, err := m.js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := m.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		MaxMsgs:     100000,
		Storage:     jetstream.MemoryStorage,
		Replicas:    1,
		Description: "WorkBuddy workflow steps and chat messages",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// LogSubject returns the subject for a workflow log entry.
func LogSubject(entry model.WorkflowLogEntry) string {
	return fmt.Sprintf("%s.log.%s.%s", SubjectPrefix, token(entry.Agent), token(entry.Skill))
}

// MessageSubject returns the subject for a chat message.
func MessageSubject(conversationID string, role model.Role) string {
	return fmt.Sprintf("%s.chat.%s.%s", SubjectPrefix, token(conversationID), role)
}

// token makes s safe to use as a single subject token.
func token(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '*', '>', '\t':
			return '_'
		}
		return r
	}, s)
}

// PublishLogEntry publishes a workflow log entry.
func (m *StreamManager) PublishLogEntry(ctx context.Context, entry model.WorkflowLogEntry) error {
	return m.publish(ctx, LogSubject(entry), entry)
}

// PublishMessage publishes a chat message.
func (m *StreamManager) PublishMessage(ctx context.Context, msg model.Message) error {
	return m.publish(ctx, MessageSubject(msg.ConversationID, msg.Role), msg)
}

func (m *StreamManager) publish(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", subject, err)
	}

	if _, err := m.pub.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	return nil
}
