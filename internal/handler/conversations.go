// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/middleware"
	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/service"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	service *service.ConversationService
	logger  *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(svc *service.ConversationService, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: svc,
		logger:  log,
	}
}

// Create handles POST /api/v1/conversations. The body is optional.
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An authenticated caller cannot open sessions for someone else.
	if userID := middleware.GetUserID(ctx); userID != "" {
		req.UserID = userID
	}
	if err := middleware.ValidateUserID(req.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Create(ctx, &req)
	if err != nil {
		h.logger.Error("failed to create conversation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create conversation")
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := queryInt(r, "limit", 20, 100)
	offset := 0
	if r.URL.Query().Get("offset") != "" {
		offset = queryInt(r, "offset", 0, 0)
	}

	resp, err := h.service.List(ctx, middleware.GetUserID(ctx), limit, offset)
	if err != nil {
		h.logger.Error("failed to list conversations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/conversations/{id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conv, ok := lookupConversation(w, r, h.service)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// Delete handles DELETE /api/v1/conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	conv, ok := lookupConversation(w, r, h.service)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), conv.ID); err != nil {
		writeServiceError(w, err, "failed to delete conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lookupConversation resolves the {id} URL parameter to a session the caller
// may see, writing the error response when it cannot.
func lookupConversation(w http.ResponseWriter, r *http.Request, svc *service.ConversationService) (*model.ConversationContext, bool) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	conv, err := svc.Get(ctx, conversationID)
	if err != nil {
		writeServiceError(w, err, "failed to get conversation")
		return nil, false
	}

	// Another user's session is reported as missing.
	if userID := middleware.GetUserID(ctx); userID != "" && conv.UserID != userID {
		writeError(w, http.StatusNotFound, "conversation not found")
		return nil, false
	}

	return conv, true
}
