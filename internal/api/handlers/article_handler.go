package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/auth"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/service/workflow"
)

// ArticleHandler exposes the editorial workflow over HTTP
type ArticleHandler struct {
	workflow *workflow.Service
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(svc *workflow.Service) *ArticleHandler {
	return &ArticleHandler{workflow: svc}
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req models.CreateArticleRequest
	if !bindJSON(c, &req, false) {
		return
	}
	article, err := h.workflow.Create(c.Request.Context(), identity(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Get handles GET /v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	article, err := h.workflow.Get(c.Request.Context(), identity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetBySlug handles GET /v1/articles/slug/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.workflow.GetBySlug(c.Request.Context(), identity(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Update handles PUT /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateArticleRequest
	if !bindJSON(c, &req, false) {
		return
	}
	article, err := h.workflow.Update(c.Request.Context(), identity(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.workflow.Delete(c.Request.Context(), identity(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Submit handles POST /v1/articles/:id/submit
func (h *ArticleHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	article, err := h.workflow.Submit(c.Request.Context(), identity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Approve handles POST /v1/articles/:id/approve
func (h *ArticleHandler) Approve(c *gin.Context) {
	h.review(c, h.workflow.Approve)
}

// Reject handles POST /v1/articles/:id/reject
func (h *ArticleHandler) Reject(c *gin.Context) {
	h.review(c, h.workflow.Reject)
}

type reviewFunc func(ctx context.Context, actor *auth.Identity, id uuid.UUID, req *models.ReviewRequest) (*models.Article, error)

func (h *ArticleHandler) review(c *gin.Context, op reviewFunc) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !bindJSON(c, &req, true) {
		return
	}
	article, err := op(c.Request.Context(), identity(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Publish handles POST /v1/articles/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	article, err := h.workflow.Publish(c.Request.Context(), identity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}
