package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"articles-backend/internal/domains/author/model"
	"articles-backend/internal/domains/author/service"
	"articles-backend/internal/shared/response"
)

// =====================================================
// AUTHOR HANDLER
// =====================================================

type AuthorHandler struct {
	authorService service.ServiceInterface
}

func NewAuthorHandler(authorService service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// Create creates author (idempotent theo name)
// POST /api/v1/authors
// 201 khi tạo mới, 200 khi name đã tồn tại
func (h *AuthorHandler) Create(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Call service
	author, created, err := h.authorService.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, author)
}

// GetByID
// GET /api/v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author ID")
		return
	}

	author, err := h.authorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author)
}

// List authors
// GET /api/v1/authors?name=tolk&page=1&limit=20
func (h *AuthorHandler) List(c *gin.Context) {
	var req model.ListAuthorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.authorService.List(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Authors, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// Delete author; còn article tham chiếu => 409
// DELETE /api/v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author ID")
		return
	}

	if err := h.authorService.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
