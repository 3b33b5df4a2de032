package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/domains/article/service"
	"articles-backend/internal/shared"
	"articles-backend/internal/shared/middleware"
	"articles-backend/internal/shared/response"
)

// ReconcileTrigger - implemented by *queue.Publisher
type ReconcileTrigger interface {
	EnqueueReconcile(ctx context.Context, payload shared.ReconcilePayload) (string, error)
}

// =====================================================
// ARTICLE HANDLER
// =====================================================

type ArticleHandler struct {
	articleService service.ServiceInterface
	reconcile      ReconcileTrigger
}

func NewArticleHandler(articleService service.ServiceInterface, reconcile ReconcileTrigger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		reconcile:      reconcile,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func parseArticleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return uuid.Nil, false
	}
	return id, true
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// =====================================================
// ARTICLE ENDPOINTS
// =====================================================

// CreateArticle creates article; owner = user trong JWT
// POST /api/v1/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	// Step 1: Get user ID from JWT
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	// Step 2: Bind request body
	var req model.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 3: Call service
	article, err := h.articleService.CreateArticle(c.Request.Context(), userID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, article)
}

// GetArticle
// GET /api/v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article)
}

// UpdateArticle - patch semantics cho cả PUT và PATCH
// PUT|PATCH /api/v1/articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	var req model.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), id, userID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article)
}

// DeleteArticle trả về state cuối cùng của article
// DELETE /api/v1/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	article, err := h.articleService.DeleteArticle(c.Request.Context(), id, userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article)
}

// SearchArticles
// GET /api/v1/articles?title=&year=&author=&q=&fuzzy=&page=&page_size=
func (h *ArticleHandler) SearchArticles(c *gin.Context) {
	var req model.SearchArticlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.articleService.SearchArticles(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// Reindex enqueue full reconciliation
// POST /api/v1/admin/search/reindex
func (h *ArticleHandler) Reindex(c *gin.Context) {
	var req model.ReindexRequest
	// Body optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	deleteOrphans := true
	if req.DeleteOrphans != nil {
		deleteOrphans = *req.DeleteOrphans
	}

	taskID, err := h.reconcile.EnqueueReconcile(c.Request.Context(), shared.ReconcilePayload{
		BatchSize:     req.BatchSize,
		DeleteOrphans: deleteOrphans,
		TriggeredBy:   "admin",
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"task_id": taskID})
}
