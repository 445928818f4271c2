package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/middleware"
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/service"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

// MessageHandler handles message endpoints.
type MessageHandler struct {
	assistant     *service.AssistantService
	conversations *service.ConversationService
	logger        *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(
	assistant *service.AssistantService,
	conversations *service.ConversationService,
	log *logger.Logger,
) *MessageHandler {
	return &MessageHandler{
		assistant:     assistant,
		conversations: conversations,
		logger:        log,
	}
}

// List handles GET /api/v1/conversations/{id}/messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	conv, ok := lookupConversation(w, r, h.conversations)
	if !ok {
		return
	}

	msgs, err := h.conversations.Messages(r.Context(), conv.ID)
	if err != nil {
		writeServiceError(w, err, "failed to get messages")
		return
	}

	writeJSON(w, http.StatusOK, &model.ListMessagesResponse{
		Messages: msgs,
		Total:    len(msgs),
	})
}

// Send handles POST /api/v1/conversations/{id}/messages. The reply comes back
// in the same response.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	conv, ok := lookupConversation(w, r, h.conversations)
	if !ok {
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.assistant.HandleMessage(r.Context(), conv.ID, req.Content)
	if err != nil {
		h.logger.Error("failed to handle message",
			zap.String("conversation_id", conv.ID),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeServiceError(w, err, "failed to send message")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
