package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"articles-backend/internal/domains/comment/model"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/ownership"
)

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*model.Comment)
	return out, args.Error(1)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Comment)
	return out, args.Error(1)
}

func (m *mockCommentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	out, _ := args.Get(0).(*model.Comment)
	return out, args.Error(1)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func strPtr(s string) *string { return &s }

func TestCreateComment_UnknownArticle(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	articleID := uuid.New()

	repo.On("Create", ctx, mock.Anything).Return(nil, model.ErrArticleNotFound)

	_, err := svc.CreateComment(ctx, uuid.New(), model.CreateCommentRequest{ArticleID: articleID, Content: "nice"})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreateComment_SetsCommenterAsOwner(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	userID, articleID := uuid.New(), uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
		return c.UserID == userID && c.ArticleID == articleID && c.Content == "great read"
	})).Return(&model.Comment{ID: uuid.New(), UserID: userID, ArticleID: articleID, Content: "great read"}, nil)

	comment, err := svc.CreateComment(ctx, userID, model.CreateCommentRequest{ArticleID: articleID, Content: " great read "})

	require.NoError(t, err)
	assert.Equal(t, userID, comment.OwnerID())
}

func TestCreateComment_BlankContent(t *testing.T) {
	svc := NewCommentService(new(mockCommentRepo))

	_, err := svc.CreateComment(context.Background(), uuid.New(), model.CreateCommentRequest{ArticleID: uuid.New(), Content: "  "})

	assert.Error(t, err)
}

func TestUpdateComment_NonOwnerForbidden(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	existing := &model.Comment{ID: uuid.New(), UserID: uuid.New(), Content: "original"}

	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)

	_, err := svc.UpdateComment(ctx, existing.ID, uuid.New(), model.UpdateCommentRequest{Content: strPtr("hijacked")})

	assert.ErrorIs(t, err, ownership.ErrNotOwner)
	repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateComment_MissingIsNotFoundNotForbidden(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, model.ErrCommentNotFound)

	_, err := svc.UpdateComment(ctx, id, uuid.New(), model.UpdateCommentRequest{Content: strPtr("x")})

	assert.ErrorIs(t, err, model.ErrCommentNotFound)
}

func TestUpdateComment_OwnerEmptyPatchNoWrite(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	owner := uuid.New()
	existing := &model.Comment{ID: uuid.New(), UserID: owner, Content: "original"}

	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)

	got, err := svc.UpdateComment(ctx, existing.ID, owner, model.UpdateCommentRequest{})

	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)
	repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteComment_ReturnsLastState(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	owner := uuid.New()
	existing := &model.Comment{ID: uuid.New(), UserID: owner, Content: "bye"}

	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Delete", ctx, existing.ID).Return(nil)

	got, err := svc.DeleteComment(ctx, existing.ID, owner)

	require.NoError(t, err)
	assert.Equal(t, "bye", got.Content)
}

func TestDeleteComment_NonOwner(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := NewCommentService(repo)
	ctx := context.Background()
	existing := &model.Comment{ID: uuid.New(), UserID: uuid.New()}

	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)

	_, err := svc.DeleteComment(ctx, existing.ID, uuid.New())

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
