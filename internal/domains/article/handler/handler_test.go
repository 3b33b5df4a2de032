package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-backend/internal/domains/article/model"
	"articles-backend/internal/shared"
	"articles-backend/internal/shared/middleware"
	"articles-backend/internal/shared/ownership"
)

// stubService: chỉ các method test cần mới được set
type stubService struct {
	create func(ctx context.Context, owner uuid.UUID, req model.CreateArticleRequest) (*model.Article, error)
	get    func(ctx context.Context, id uuid.UUID) (*model.Article, error)
	update func(ctx context.Context, id, actor uuid.UUID, req model.UpdateArticleRequest) (*model.Article, error)
	del    func(ctx context.Context, id, actor uuid.UUID) (*model.Article, error)
	search func(ctx context.Context, req model.SearchArticlesRequest) (*model.SearchArticlesResponse, error)
}

func (s *stubService) CreateArticle(ctx context.Context, owner uuid.UUID, req model.CreateArticleRequest) (*model.Article, error) {
	return s.create(ctx, owner, req)
}
func (s *stubService) GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return s.get(ctx, id)
}
func (s *stubService) UpdateArticle(ctx context.Context, id, actor uuid.UUID, req model.UpdateArticleRequest) (*model.Article, error) {
	return s.update(ctx, id, actor, req)
}
func (s *stubService) DeleteArticle(ctx context.Context, id, actor uuid.UUID) (*model.Article, error) {
	return s.del(ctx, id, actor)
}
func (s *stubService) SearchArticles(ctx context.Context, req model.SearchArticlesRequest) (*model.SearchArticlesResponse, error) {
	return s.search(ctx, req)
}
func (s *stubService) SyncIndex(context.Context, uuid.UUID) error       { return nil }
func (s *stubService) RemoveFromIndex(context.Context, uuid.UUID) error { return nil }
func (s *stubService) Reconcile(context.Context, int, bool) (*model.ReconcileResult, error) {
	return &model.ReconcileResult{}, nil
}

type stubTrigger struct {
	payload shared.ReconcilePayload
}

func (s *stubTrigger) EnqueueReconcile(_ context.Context, p shared.ReconcilePayload) (string, error) {
	s.payload = p
	return "task-1", nil
}

func newRouter(h *ArticleHandler, actor uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		if actor != uuid.Nil {
			c.Set(middleware.ContextUserID, actor)
		}
		c.Next()
	}
	r.GET("/articles", h.SearchArticles)
	r.GET("/articles/:id", h.GetArticle)
	r.POST("/articles", auth, h.CreateArticle)
	r.PATCH("/articles/:id", auth, h.UpdateArticle)
	r.DELETE("/articles/:id", auth, h.DeleteArticle)
	r.POST("/admin/search/reindex", h.Reindex)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateArticle_UsesActorAsOwner(t *testing.T) {
	actor := uuid.New()
	svc := &stubService{
		create: func(_ context.Context, owner uuid.UUID, req model.CreateArticleRequest) (*model.Article, error) {
			return &model.Article{ID: uuid.New(), Title: req.Title, Owner: owner}, nil
		},
	}
	r := newRouter(NewArticleHandler(svc, nil), actor)

	rr := do(r, http.MethodPost, "/articles", `{"title":"Hello","abstract":"world","publication_date":"2021-03-14T00:00:00Z"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	var body struct {
		Data model.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, actor, body.Data.Owner)
}

func TestCreateArticle_RequiresAuth(t *testing.T) {
	r := newRouter(NewArticleHandler(&stubService{}, nil), uuid.Nil)

	rr := do(r, http.MethodPost, "/articles", `{"title":"Hello"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateArticle_ForbiddenMapsTo403(t *testing.T) {
	svc := &stubService{
		update: func(context.Context, uuid.UUID, uuid.UUID, model.UpdateArticleRequest) (*model.Article, error) {
			return nil, ownership.ErrNotOwner
		},
	}
	r := newRouter(NewArticleHandler(svc, nil), uuid.New())

	rr := do(r, http.MethodPatch, "/articles/"+uuid.NewString(), `{"title":"x"}`)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "OWN001")
}

func TestUpdateArticle_AbsentFieldsStayNil(t *testing.T) {
	var got model.UpdateArticleRequest
	svc := &stubService{
		update: func(_ context.Context, _ uuid.UUID, _ uuid.UUID, req model.UpdateArticleRequest) (*model.Article, error) {
			got = req
			return &model.Article{}, nil
		},
	}
	r := newRouter(NewArticleHandler(svc, nil), uuid.New())

	rr := do(r, http.MethodPatch, "/articles/"+uuid.NewString(), `{"tag_ids":[]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.AuthorIDs)
	require.NotNil(t, got.TagIDs)
	assert.Empty(t, *got.TagIDs)
}

func TestGetArticle_NotFound(t *testing.T) {
	svc := &stubService{
		get: func(context.Context, uuid.UUID) (*model.Article, error) { return nil, model.ErrArticleNotFound },
	}
	r := newRouter(NewArticleHandler(svc, nil), uuid.Nil)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/articles/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/articles/not-a-uuid", "").Code)
}

func TestSearchArticles_BindsQuery(t *testing.T) {
	var got model.SearchArticlesRequest
	svc := &stubService{
		search: func(_ context.Context, req model.SearchArticlesRequest) (*model.SearchArticlesResponse, error) {
			got = req
			return &model.SearchArticlesResponse{Items: []model.Article{}, CurrentPage: 2}, nil
		},
	}
	r := newRouter(NewArticleHandler(svc, nil), uuid.Nil)

	rr := do(r, http.MethodGet, "/articles?title=go&year=2021&author=pike&q=channels&fuzzy=false&page=2&page_size=5", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "go", got.Title)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2021, *got.Year)
	assert.Equal(t, "pike", got.Author)
	assert.False(t, got.FuzzyEnabled())
	assert.Equal(t, 5, got.PageSize)
	assert.Contains(t, rr.Body.String(), `"current_page":2`)
}

func TestReindex_DefaultsToOrphanCleanup(t *testing.T) {
	trigger := &stubTrigger{}
	r := newRouter(NewArticleHandler(&stubService{}, trigger), uuid.Nil)

	rr := do(r, http.MethodPost, "/admin/search/reindex", "")

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.True(t, trigger.payload.DeleteOrphans)
	assert.Equal(t, "admin", trigger.payload.TriggeredBy)
}
