package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/domains/comment/model"
	"articles-backend/internal/domains/comment/repository"
	"articles-backend/internal/shared/ownership"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) ServiceInterface {
	return &commentService{commentRepo: commentRepo}
}

// =====================================================
// CREATE COMMENT
// =====================================================

func (s *commentService) CreateComment(
	ctx context.Context,
	userID uuid.UUID,
	req model.CreateCommentRequest,
) (*model.Comment, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Insert (FK kiểm tra article tồn tại)
	comment, err := s.commentRepo.Create(ctx, &model.Comment{
		ID:        uuid.New(),
		ArticleID: req.ArticleID,
		UserID:    userID,
		Content:   strings.TrimSpace(req.Content),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("comment_id", comment.ID.String()).
		Str("article_id", comment.ArticleID.String()).
		Msg("Comment created")

	return comment, nil
}

func (s *commentService) GetComment(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// =====================================================
// UPDATE COMMENT
// =====================================================

func (s *commentService) UpdateComment(
	ctx context.Context,
	id, userID uuid.UUID,
	req model.UpdateCommentRequest,
) (*model.Comment, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load existing (NotFound trước Forbidden)
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Ownership
	if err := ownership.Check(comment, userID); err != nil {
		return nil, err
	}

	// Step 4: Patch
	if req.Content == nil {
		return comment, nil
	}
	return s.commentRepo.UpdateContent(ctx, id, strings.TrimSpace(*req.Content))
}

// =====================================================
// DELETE COMMENT
// =====================================================

// DeleteComment trả về state cuối cùng trước khi xóa
func (s *commentService) DeleteComment(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ownership.Check(comment, userID); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return comment, nil
}
