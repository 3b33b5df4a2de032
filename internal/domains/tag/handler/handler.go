package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"articles-backend/internal/domains/tag/model"
	"articles-backend/internal/domains/tag/service"
	"articles-backend/internal/shared/response"
)

// =====================================================
// AUTHOR HANDLER
// =====================================================

type TagHandler struct {
	tagService service.ServiceInterface
}

func NewTagHandler(tagService service.ServiceInterface) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// Create creates tag (idempotent theo name)
// POST /api/v1/tags
// 201 khi tạo mới, 200 khi name đã tồn tại
func (h *TagHandler) Create(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Call service
	tag, created, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, tag)
}

// GetByID
// GET /api/v1/tags/:id
func (h *TagHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tag)
}

// List tags
// GET /api/v1/tags?name=golang&page=1&limit=20
func (h *TagHandler) List(c *gin.Context) {
	var req model.ListTagsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.tagService.List(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Tags, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// Delete tag; còn article tham chiếu => 409
// DELETE /api/v1/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
