package rest

import (
	"net/http"

	"github.com/projectmoneymatter/psle-science-tutor/internal/syllabus"
)

type topicCatalog interface {
	Topics() []syllabus.Topic
	DefaultTopic() string
}

// TopicsHandler serves the syllabus catalog.
type TopicsHandler struct {
	catalog topicCatalog
}

// NewTopicsHandler creates a TopicsHandler.
func NewTopicsHandler(catalog topicCatalog) *TopicsHandler {
	return &TopicsHandler{catalog: catalog}
}

type topicsResponse struct {
	Default string           `json:"default"`
	Topics  []syllabus.Topic `json:"topics"`
}

// List handles GET /api/topics.
func (h *TopicsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, topicsResponse{
		Default: h.catalog.DefaultTopic(),
		Topics:  h.catalog.Topics(),
	})
}
