package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/service/category"
)

// CategoryHandler exposes categories and tags over HTTP
type CategoryHandler struct {
	categories *category.Service
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(svc *category.Service) *CategoryHandler {
	return &CategoryHandler{categories: svc}
}

// Tree handles GET /v1/categories/tree
func (h *CategoryHandler) Tree(c *gin.Context) {
	roots, err := h.categories.Tree(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roots})
}

// Create handles POST /v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req, false) {
		return
	}
	created, err := h.categories.Create(c.Request.Context(), identity(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Move handles PUT /v1/categories/:id/parent
func (h *CategoryHandler) Move(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.MoveCategoryRequest
	if !bindJSON(c, &req, true) {
		return
	}
	moved, err := h.categories.Move(c.Request.Context(), identity(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moved)
}

// Delete handles DELETE /v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), identity(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTags handles GET /v1/tags
func (h *CategoryHandler) ListTags(c *gin.Context) {
	tags, err := h.categories.ListTags(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// CreateTag handles POST /v1/tags
func (h *CategoryHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if !bindJSON(c, &req, false) {
		return
	}
	tag, err := h.categories.CreateTag(c.Request.Context(), identity(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}
