package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/intent"
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/skill"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
	"github.com/Akshaya1307/workbuddy/pkg/metrics"
	"github.com/Akshaya1307/workbuddy/pkg/tracing"
)

// ErrEmptyMessage is returned for blank chat messages.
var ErrEmptyMessage = errors.New("message cannot be empty")

// MessagePublisher receives recorded chat messages, e.g. an event bus feed.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, msg model.Message) error
}

// AssistantService routes chat messages to skills.
type AssistantService struct {
	classifier    *intent.Classifier
	skills        *skill.Registry
	conversations *ConversationService
	publisher     MessagePublisher
	logger        *logger.Logger
	now           func() time.Time
}

// NewAssistantService creates the router. publisher may be nil.
func NewAssistantService(
	classifier *intent.Classifier,
	skills *skill.Registry,
	conversations *ConversationService,
	publisher MessagePublisher,
	log *logger.Logger,
) *AssistantService {
	if log == nil {
		log = logger.NewNop()
	}
	return &AssistantService{
		classifier:    classifier,
		skills:        skills,
		conversations: conversations,
		publisher:     publisher,
		logger:        log,
		now:           time.Now,
	}
}

// Route classifies message, records the intent on conv and runs the matching
// skill. Intents without a registered skill fall back to the general one.
func (s *AssistantService) Route(ctx context.Context, conv *model.ConversationContext, message string) (*model.Reply, error) {
	ctx, span := tracing.Tracer("workbuddy/service").Start(ctx, "assistant.Route")
	defer span.End()

	detected := s.classifier.Detect(message)
	conv.LastIntent = detected
	metrics.IntentsTotal.WithLabelValues(string(detected)).Inc()
	span.SetAttributes(attribute.String("workbuddy.intent", string(detected)))

	handler, ok := s.skills.Lookup(detected)
	if !ok {
		handler, ok = s.skills.Lookup(model.IntentGeneral)
		if !ok {
			err := fmt.Errorf("no skill registered for %s", detected)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	span.SetAttributes(attribute.String("workbuddy.skill", handler.Name()))

	reply, err := handler.Handle(ctx, skill.Request{Conversation: conv, Message: message})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s: %w", handler.Name(), err)
	}

	s.logger.Debug("message routed",
		zap.String("conversation_id", conv.ID),
		zap.String("intent", string(detected)),
		zap.String("skill", handler.Name()),
	)
	return reply, nil
}

// HandleMessage runs one chat turn on a stored session: it routes the message,
// records both sides in the history and publishes them.
func (s *AssistantService) HandleMessage(ctx context.Context, conversationID, content string) (*model.SendMessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	received := s.now()
	working, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	reply, err := s.Route(ctx, working, content)
	if err != nil {
		return nil, err
	}

	userMsg := model.Message{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: conversationID,
		Role:           model.RoleUser,
		Content:        content,
		Intent:         working.LastIntent,
		CreatedAt:      received,
	}
	assistantMsg := model.Message{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: conversationID,
		Role:           model.RoleAssistant,
		Content:        reply.Text,
		Agent:          reply.Agent,
		Intent:         reply.Intent,
		CreatedAt:      s.now(),
	}
	if err := s.conversations.AppendMessages(ctx, conversationID, userMsg, assistantMsg); err != nil {
		return nil, err
	}
	conv, err := s.conversations.Update(ctx, conversationID, func(c *model.ConversationContext) error {
		c.LastIntent = working.LastIntent
		for k, v := range working.Metadata {
			c.Metadata[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userMsg)
	s.publish(ctx, assistantMsg)

	s.logger.Info("message handled",
		zap.String("conversation_id", conversationID),
		zap.String("user_id", conv.UserID),
		zap.String("intent", string(reply.Intent)),
		zap.String("agent", reply.Agent),
	)

	return &model.SendMessageResponse{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		Reply:            *reply,
		Context:          conv,
	}, nil
}

func (s *AssistantService) publish(ctx context.Context, msg model.Message) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMessage(ctx, msg); err != nil {
		s.logger.Warn("failed to publish chat message",
			zap.String("conversation_id", msg.ConversationID),
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
	}
}
