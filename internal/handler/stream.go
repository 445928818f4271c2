package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/model"
	"github.com/Akshaya1307/workbuddy/internal/service"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
	"github.com/Akshaya1307/workbuddy/pkg/metrics"
)

const (
	replayBatchSize          = 50
	defaultPollInterval      = time.Second
	defaultHeartbeatInterval = 30 * time.Second
)

// StreamHandler streams the workflow log over SSE.
type StreamHandler struct {
	dashboard *service.DashboardService
	logger    *logger.Logger

	PollInterval      time.Duration
	HeartbeatInterval time.Duration
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(dashboard *service.DashboardService, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		dashboard:         dashboard,
		logger:            log,
		PollInterval:      defaultPollInterval,
		HeartbeatInterval: defaultHeartbeatInterval,
	}
}

// Stream handles GET /api/v1/workflow/stream
// Supports ?after_sequence=N for resuming from a specific point
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var afterSequence uint64
	if seqStr := r.URL.Query().Get("after_sequence"); seqStr != "" {
		seq, err := strconv.ParseUint(seqStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid after_sequence")
			return
		}
		afterSequence = seq
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// The server write timeout would otherwise cut long-lived streams.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Warn("failed to clear write deadline", zap.Error(err))
	}

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	done := ctx.Done()

	if err := sendSSEEvent(w, flusher, "connected", map[string]uint64{
		"after_sequence": afterSequence,
	}); err != nil {
		return
	}

	// Replay in batches, then report where live delivery starts.
	lastSequence := afterSequence
	replayed := 0
	for {
		select {
		case <-done:
			return
		default:
		}

		entries, last, more := h.dashboard.LogsAfter(lastSequence, replayBatchSize)
		for _, e := range entries {
			if err := sendSSEEvent(w, flusher, "log", e); err != nil {
				return
			}
		}
		replayed += len(entries)
		lastSequence = last
		if !more {
			break
		}
	}

	if err := sendSSEEvent(w, flusher, "replay_complete", &model.ReplayCompleteEvent{
		LastSequence: lastSequence,
		EntryCount:   replayed,
	}); err != nil {
		return
	}

	h.logger.Debug("workflow replay complete",
		zap.Int("entries_replayed", replayed),
		zap.Uint64("last_sequence", lastSequence),
	)

	poll := time.NewTicker(h.PollInterval)
	defer poll.Stop()
	heartbeat := time.NewTicker(h.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-done:
			h.logger.Debug("SSE client disconnected", zap.Uint64("last_sequence", lastSequence))
			return

		case <-poll.C:
			entries, last, _ := h.dashboard.LogsAfter(lastSequence, replayBatchSize)
			for _, e := range entries {
				if err := sendSSEEvent(w, flusher, "log", e); err != nil {
					return
				}
			}
			lastSequence = last

		case <-heartbeat.C:
			if err := sendSSEEvent(w, flusher, "heartbeat", &model.HeartbeatEvent{
				Timestamp: time.Now(),
			}); err != nil {
				return
			}
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	flusher.Flush()

	return nil
}
