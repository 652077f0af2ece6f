package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"prep_tracker/internal/feature/tracker/domain/entity"
	"prep_tracker/internal/shared/scoped"
)

// TopicStore is the custom topic store plus the per-section listing.
type TopicStore interface {
	scoped.Store[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch]
	ListBySection(ctx context.Context, sectionID, ownerID uint) ([]entity.CustomTopic, error)
}

// TopicHandler serves custom topics. Update and Delete come from the embedded ResourceHandler.
type TopicHandler struct {
	*ResourceHandler[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch]
	topics TopicStore
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(topics TopicStore) *TopicHandler {
	return &TopicHandler{
		ResourceHandler: NewResourceHandler[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch]("topics", topics),
		topics:          topics,
	}
}

// ListBySection handles GET /api/sections/:id/topics.
func (h *TopicHandler) ListBySection(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	topics, err := h.topics.ListBySection(c.Request.Context(), sectionID, ownerID)
	if err != nil {
		writeError(c, "topics list", err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// CreateInSection handles POST /api/sections/:id/topics. The path wins over any section_id in the body.
func (h *TopicHandler) CreateInSection(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in entity.CustomTopicInput
	if !bindBody(c, "topics", &in) {
		return
	}
	in.SectionID = sectionID

	created, err := h.topics.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		writeError(c, "topics create", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
