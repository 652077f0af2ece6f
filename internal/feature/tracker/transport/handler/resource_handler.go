// Package handler exposes the tracker stores over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prep_tracker/internal/api"
	jwtmw "prep_tracker/internal/platform/jwt"
	"prep_tracker/internal/shared/scoped"
)

// ResourceHandler serves list, create, update and delete for one owner-scoped store.
// Which of them are reachable is decided by the router.
type ResourceHandler[M, C, P any] struct {
	name  string
	store scoped.Store[M, C, P]
}

// NewResourceHandler creates a ResourceHandler. name is used in log lines only.
func NewResourceHandler[M, C, P any](name string, store scoped.Store[M, C, P]) *ResourceHandler[M, C, P] {
	return &ResourceHandler[M, C, P]{name: name, store: store}
}

// List handles GET /api/<resource>.
func (h *ResourceHandler[M, C, P]) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	rows, err := h.store.List(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, h.name+" list", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Create handles POST /api/<resource>.
func (h *ResourceHandler[M, C, P]) Create(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var in C
	if !bindBody(c, h.name, &in) {
		return
	}
	created, err := h.store.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		writeError(c, h.name+" create", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /api/<resource>/:id.
func (h *ResourceHandler[M, C, P]) Update(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch P
	if !bindBody(c, h.name, &patch) {
		return
	}
	updated, err := h.store.Update(c.Request.Context(), id, ownerID, patch)
	if err != nil {
		writeError(c, h.name+" update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/<resource>/:id. Unknown or foreign ids still answer 204.
func (h *ResourceHandler[M, C, P]) Delete(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id, ownerID); err != nil {
		writeError(c, h.name+" delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// owner reads the authenticated user id set by the auth middleware.
func owner(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgUnauthorized})
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgInvalidID})
		return 0, false
	}
	return uint(id), true
}

// bindBody decodes the JSON body into dst. A value of the wrong JSON type is
// reported as a field error; anything else unparseable is a plain bad request.
func bindBody(c *gin.Context, resource string, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	slog.Warn("request body rejected", "resource", resource, "error", err)

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" && ute.Type != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  api.MsgValidation,
			Fields: []scoped.FieldError{{Field: ute.Field, Message: "must be of type " + ute.Type.String()}},
		})
		return false
	}
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgInvalidBody})
	return false
}

// writeError maps store errors to responses. Anything unexpected is logged and hidden.
func writeError(c *gin.Context, op string, err error) {
	var verr *scoped.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgValidation, Fields: verr.Errors})
	case errors.Is(err, scoped.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: api.MsgNotFound})
	default:
		slog.Error("tracker operation failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternal})
	}
}
