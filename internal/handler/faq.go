package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angeloszaimis/chatbot-api/internal/chat"
	"github.com/angeloszaimis/chatbot-api/internal/rest"
	"github.com/angeloszaimis/chatbot-api/internal/store"
)

type upsertRequest struct {
	Topic      string   `json:"topic"`
	Answer     string   `json:"answer"`
	References []string `json:"references"`
}

type topicResponse struct {
	Topic      string   `json:"topic"`
	Answer     string   `json:"answer"`
	References []string `json:"references"`
}

// FAQHandler manages the FAQ topics behind the chat endpoint. Every mutation
// rebuilds the match index so new answers are served immediately.
type FAQHandler struct {
	logger  *slog.Logger
	store   *store.Store
	matcher *chat.Matcher
}

func NewFAQHandler(logger *slog.Logger, st *store.Store, matcher *chat.Matcher) *FAQHandler {
	return &FAQHandler{
		logger:  logger,
		store:   st,
		matcher: matcher,
	}
}

// List returns all topic names.
func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.TopicNames(r.Context())
	if err != nil {
		h.logger.Error("Failed to list topics", slog.Any("err", err))
		rest.WriteError(w, rest.CodeDBError, "Failed to load topics", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}

	rest.WriteJSON(w, http.StatusOK, map[string]any{"topics": names})
}

// Get returns one topic with its answer and reference questions.
func (h *FAQHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "topic")

	topic, err := h.store.Topic(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		rest.WriteError(w, rest.CodeNotFound, "Topic not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to load topic", slog.String("topic", name), slog.Any("err", err))
		rest.WriteError(w, rest.CodeDBError, "Failed to load topic", http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusOK, topicResponse{
		Topic:      topic.Name,
		Answer:     topic.Answer,
		References: topic.References,
	})
}

// Upsert creates or updates a topic from the request body.
func (h *FAQHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, rest.CodeBadRequest, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.save(w, r, req)
}

// Update upserts the topic named in the URL.
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, rest.CodeBadRequest, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Topic = chi.URLParam(r, "topic")

	h.save(w, r, req)
}

func (h *FAQHandler) save(w http.ResponseWriter, r *http.Request, req upsertRequest) {
	if req.Topic == "" || req.Answer == "" || req.References == nil {
		rest.WriteError(w, rest.CodeBadRequest,
			"Missing required fields: topic, answer, references", http.StatusBadRequest)
		return
	}

	err := h.store.UpsertTopic(r.Context(), store.Topic{
		Name:       req.Topic,
		Answer:     req.Answer,
		References: req.References,
	})
	if err != nil {
		h.logger.Error("Failed to upsert topic", slog.String("topic", req.Topic), slog.Any("err", err))
		rest.WriteError(w, rest.CodeDBError, "Failed to save topic", http.StatusInternalServerError)
		return
	}

	if err := h.reloadIndex(r); err != nil {
		h.logger.Error("Failed to rebuild match index", slog.Any("err", err))
		rest.WriteError(w, rest.CodeDBError, "Failed to rebuild match index", http.StatusInternalServerError)
		return
	}

	h.logger.Info("FAQ topic saved", slog.String("topic", req.Topic))

	rest.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "FAQ added/updated successfully",
	})
}

func (h *FAQHandler) reloadIndex(r *http.Request) error {
	topics, err := h.store.LoadAll(r.Context())
	if err != nil {
		return err
	}

	h.matcher.Reload(topics)
	return nil
}
