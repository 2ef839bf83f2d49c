package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/chatbot-api/internal/chat"
	"github.com/angeloszaimis/chatbot-api/internal/metrics"
	"github.com/angeloszaimis/chatbot-api/internal/rest"
)

const chatRoute = "/chatbot/v1/chat"

// Message is a pointer so a missing key can be told apart from an
// empty string: only the former is a bad request, an empty message
// falls through to the matcher and gets the fallback reply.
type chatRequest struct {
	Message *string `json:"message"`
}

type chatResponse struct {
	Reply       string   `json:"reply"`
	Probability float64  `json:"probability"`
	Tokens      []string `json:"tokens"`
}

// ChatHandler answers free-text questions from the FAQ match index.
type ChatHandler struct {
	logger    *slog.Logger
	matcher   *chat.Matcher
	collector *metrics.Collector
}

func NewChatHandler(logger *slog.Logger, matcher *chat.Matcher, collector *metrics.Collector) *ChatHandler {
	return &ChatHandler{
		logger:    logger,
		matcher:   matcher,
		collector: collector,
	}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	h.collector.Emit(metrics.Event{
		Type:      metrics.EventRequestReceived,
		Timestamp: start,
		Route:     chatRoute,
	})

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == nil {
		rest.WriteError(w, rest.CodeBadRequest, "No message provided", http.StatusBadRequest)
		h.respond(w, start, http.StatusBadRequest, nil)
		return
	}

	result := h.matcher.Match(*req.Message)

	h.logger.Debug("Chat match",
		slog.String("from", extractClientIP(r)),
		slog.Bool("matched", result.Matched),
		slog.String("topic", result.Topic),
		slog.Float64("probability", result.Probability))

	h.respond(w, start, http.StatusOK, &chatResponse{
		Reply:       result.Reply,
		Probability: result.Probability,
		Tokens:      result.Tokens,
	})
}

func (h *ChatHandler) respond(w http.ResponseWriter, start time.Time, status int, body *chatResponse) {
	if body != nil {
		rest.WriteJSON(w, status, body)
	}

	h.collector.Emit(metrics.Event{
		Type:       metrics.EventResponseCompleted,
		Timestamp:  time.Now(),
		Route:      chatRoute,
		Duration:   time.Since(start),
		StatusCode: status,
	})
}
