// Package service wires the router, chat sessions and dashboard together.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
	"github.com/Akshaya1307/workbuddy/pkg/metrics"
)

// ErrConversationNotFound is returned for unknown or deleted sessions.
var ErrConversationNotFound = errors.New("conversation not found")

type session struct {
	ctx      *model.ConversationContext
	messages []model.Message
}

// ConversationService keeps chat sessions and their history in memory.
type ConversationService struct {
	defaultUser string
	logger      *logger.Logger
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewConversationService creates a new conversation service. Sessions opened
// without a user belong to defaultUser.
func NewConversationService(defaultUser string, log *logger.Logger) *ConversationService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ConversationService{
		defaultUser: defaultUser,
		logger:      log,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Create opens a new session.
func (s *ConversationService) Create(ctx context.Context, req *model.CreateConversationRequest) (*model.ConversationContext, error) {
	userID := s.defaultUser
	var metadata map[string]any
	if req != nil {
		if req.UserID != "" {
			userID = req.UserID
		}
		metadata = req.Metadata
	}

	conv := model.NewConversationContext(uuid.Must(uuid.NewV7()).String(), userID, s.now())
	for k, v := range metadata {
		conv.Metadata[k] = v
	}

	s.mu.Lock()
	s.sessions[conv.ID] = &session{ctx: conv}
	s.mu.Unlock()

	metrics.ConversationsActive.Inc()
	s.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID),
		zap.String("user_id", userID),
	)

	return conv.Clone(), nil
}

// Get returns a snapshot of a session's context.
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.ConversationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", conversationID, ErrConversationNotFound)
	}
	return sess.ctx.Clone(), nil
}

// List returns sessions, newest first. An empty userID lists everyone's.
func (s *ConversationService) List(ctx context.Context, userID string, limit, offset int) (*model.ListConversationsResponse, error) {
	s.mu.RLock()
	convs := make([]model.ConversationContext, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if userID == "" || sess.ctx.UserID == userID {
			convs = append(convs, *sess.ctx.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(convs, func(i, j int) bool {
		if convs[i].CreatedAt.Equal(convs[j].CreatedAt) {
			return convs[i].ID > convs[j].ID
		}
		return convs[i].CreatedAt.After(convs[j].CreatedAt)
	})

	total := len(convs)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if limit <= 0 || end > total {
		end = total
	}

	return &model.ListConversationsResponse{
		Conversations: convs[start:end],
		Total:         total,
		HasMore:       end < total,
	}, nil
}

// Delete drops a session and its history.
func (s *ConversationService) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[conversationID]; !ok {
		return fmt.Errorf("%s: %w", conversationID, ErrConversationNotFound)
	}
	delete(s.sessions, conversationID)
	metrics.ConversationsActive.Dec()
	return nil
}

// Count returns the number of open sessions.
func (s *ConversationService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Update runs fn on the live context of a session under the write lock and
// returns a snapshot taken afterwards.
func (s *ConversationService) Update(ctx context.Context, conversationID string, fn func(*model.ConversationContext) error) (*model.ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", conversationID, ErrConversationNotFound)
	}
	if err := fn(sess.ctx); err != nil {
		return nil, err
	}
	sess.ctx.UpdatedAt = s.now()
	return sess.ctx.Clone(), nil
}

// AppendMessages adds messages to a session's history.
func (s *ConversationService) AppendMessages(ctx context.Context, conversationID string, msgs ...model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return fmt.Errorf("%s: %w", conversationID, ErrConversationNotFound)
	}
	sess.messages = append(sess.messages, msgs...)
	sess.ctx.MessageCount = len(sess.messages)
	sess.ctx.UpdatedAt = s.now()
	for _, m := range msgs {
		metrics.MessagesTotal.WithLabelValues(string(m.Role)).Inc()
	}
	return nil
}

// Messages returns a session's history, oldest first.
func (s *ConversationService) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", conversationID, ErrConversationNotFound)
	}
	return append([]model.Message(nil), sess.messages...), nil
}
