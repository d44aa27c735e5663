package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"learning-log/internal/domain"

	"github.com/gorilla/mux"
)

// TopicHandler handles topic and entry requests
type TopicHandler struct {
	topicService domain.TopicService
	logger       domain.Logger
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(topicService domain.TopicService, logger domain.Logger) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
		logger:       logger,
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// ListTopics returns the user's topics, oldest first.
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	user, token, ok := h.caller(w, r)
	if !ok {
		return
	}

	topics, err := h.topicService.ListTopics(user.ID, token)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

// GetTopic returns one topic with its entries.
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	user, token, ok := h.caller(w, r)
	if !ok {
		return
	}

	topicID, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	topic, err := h.topicService.GetTopic(user.ID, topicID, token)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	user, token, ok := h.caller(w, r)
	if !ok {
		return
	}

	var body textRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.topicService.CreateTopic(user.ID, body.Text, token)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, topic)
}

// CreateEntry adds an entry under the topic named in the path.
func (h *TopicHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user, token, ok := h.caller(w, r)
	if !ok {
		return
	}

	topicID, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	var body textRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.topicService.CreateEntry(user.ID, topicID, body.Text, token)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *TopicHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user, token, ok := h.caller(w, r)
	if !ok {
		return
	}

	entryID, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var body textRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.topicService.UpdateEntry(user.ID, entryID, body.Text, token)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *TopicHandler) caller(w http.ResponseWriter, r *http.Request) (*domain.SupabaseUser, string, bool) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return nil, "", false
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return nil, "", false
	}
	return user, token, true
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
