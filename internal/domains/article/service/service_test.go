package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-backend/internal/domains/article/model"
	authorModel "articles-backend/internal/domains/author/model"
	tagModel "articles-backend/internal/domains/tag/model"
	"articles-backend/internal/infrastructure/search"
	"articles-backend/internal/shared/apperror"
	"articles-backend/internal/shared/metrics"
	"articles-backend/internal/shared/ownership"
)

var pubDate = time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func (f *fixture) create(t *testing.T, owner uuid.UUID, title string, authors, tags []uuid.UUID) *model.Article {
	t.Helper()
	a, err := f.svc.CreateArticle(context.Background(), owner, model.CreateArticleRequest{
		Title:           title,
		Abstract:        "abstract of " + title,
		PublicationDate: pubDate,
		AuthorIDs:       authors,
		TagIDs:          tags,
	})
	require.NoError(t, err)
	return a
}

// =====================================================
// CREATE
// =====================================================

func TestCreateArticle_PopulatedAndIndexed(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	author := f.addAuthor("Brent Weeks")
	tag := f.addTag("Literature")

	a := f.create(t, owner, "The Black Prism", []uuid.UUID{author, author}, []uuid.UUID{tag})

	assert.Equal(t, owner, a.OwnerID())
	require.Len(t, a.Authors, 1, "duplicate ids collapse")
	assert.Equal(t, "Brent Weeks", a.Authors[0].Name)
	require.Len(t, a.Tags, 1)
	assert.True(t, f.index.has(a.ID))
}

func TestCreateArticle_UnknownAuthorWritesNothing(t *testing.T) {
	f := newFixture()
	known := f.addAuthor("R.A. Salvatore")
	missing := uuid.New()

	_, err := f.svc.CreateArticle(context.Background(), uuid.New(), model.CreateArticleRequest{
		Title:           "Homeland",
		PublicationDate: pubDate,
		AuthorIDs:       []uuid.UUID{known, missing},
	})

	assert.ErrorIs(t, err, authorModel.ErrAuthorNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Contains(t, apperror.PublicMessage(err), missing.String())
	assert.Equal(t, 0, f.repo.count())
	assert.Empty(t, f.index.docs)
}

func TestCreateArticle_UnknownTagWritesNothing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateArticle(context.Background(), uuid.New(), model.CreateArticleRequest{
		Title:           "Homeland",
		PublicationDate: pubDate,
		TagIDs:          []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, tagModel.ErrTagNotFound)
	assert.Equal(t, 0, f.repo.writes)
}

func TestCreateArticle_ValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateArticle(context.Background(), uuid.New(), model.CreateArticleRequest{Title: "   "})

	assert.Error(t, err)
	assert.Equal(t, 0, f.repo.writes)
}

func TestCreateArticle_IndexDownStillCommits(t *testing.T) {
	f := newFixture()
	f.index.writeErr = errIndexDown
	before := testutil.ToFloat64(metrics.SearchSyncFailures.WithLabelValues("index"))

	a := f.create(t, uuid.New(), "Survives outage", nil, nil)

	assert.Equal(t, 1, f.repo.count())
	assert.Equal(t, []uuid.UUID{a.ID}, f.queue.indexed)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SearchSyncFailures.WithLabelValues("index")))
}

// =====================================================
// UPDATE
// =====================================================

func TestUpdateArticle_NonOwnerForbiddenAndUnchanged(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	a := f.create(t, owner, "Original", nil, nil)

	_, err := f.svc.UpdateArticle(context.Background(), a.ID, uuid.New(), model.UpdateArticleRequest{Title: ptr("Hijacked")})

	assert.ErrorIs(t, err, ownership.ErrNotOwner)
	got, _ := f.svc.GetArticle(context.Background(), a.ID)
	assert.Equal(t, "Original", got.Title)
}

func TestUpdateArticle_MissingIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateArticle(context.Background(), uuid.New(), uuid.New(), model.UpdateArticleRequest{Title: ptr("x")})

	assert.ErrorIs(t, err, model.ErrArticleNotFound)
}

func TestUpdateArticle_PartialPatchKeepsOtherFields(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	author := f.addAuthor("A")
	tag := f.addTag("T")
	a := f.create(t, owner, "Hello", []uuid.UUID{author}, []uuid.UUID{tag})

	updated, err := f.svc.UpdateArticle(context.Background(), a.ID, owner, model.UpdateArticleRequest{Title: ptr("Hello again")})

	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, a.Abstract, updated.Abstract)
	assert.Equal(t, a.Authors, updated.Authors)
	assert.Equal(t, a.Tags, updated.Tags)
	assert.Equal(t, "Hello again", f.index.docs[a.ID].Title, "update re-indexes")
}

func TestUpdateArticle_ReplacesAssociationsWholesale(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	first, second := f.addAuthor("First"), f.addAuthor("Second")
	tag := f.addTag("T")
	a := f.create(t, owner, "Hello", []uuid.UUID{first}, []uuid.UUID{tag})

	updated, err := f.svc.UpdateArticle(context.Background(), a.ID, owner, model.UpdateArticleRequest{
		AuthorIDs: &[]uuid.UUID{second},
		TagIDs:    &[]uuid.UUID{},
	})

	require.NoError(t, err)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, second, updated.Authors[0].ID)
	assert.Empty(t, updated.Tags)
}

func TestUpdateArticle_UnknownAuthorNoChange(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	a := f.create(t, owner, "Hello", nil, nil)
	writes := f.repo.writes

	_, err := f.svc.UpdateArticle(context.Background(), a.ID, owner, model.UpdateArticleRequest{
		Title:     ptr("Changed"),
		AuthorIDs: &[]uuid.UUID{uuid.New()},
	})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, writes, f.repo.writes)
}

// =====================================================
// DELETE
// =====================================================

func TestDeleteArticle_ReturnsLastStateAndRemovesDocument(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	a := f.create(t, owner, "Goodbye", nil, nil)

	deleted, err := f.svc.DeleteArticle(context.Background(), a.ID, owner)

	require.NoError(t, err)
	assert.Equal(t, "Goodbye", deleted.Title)
	assert.False(t, f.index.has(a.ID))
	_, err = f.svc.GetArticle(context.Background(), a.ID)
	assert.ErrorIs(t, err, model.ErrArticleNotFound)
}

func TestDeleteArticle_IndexDownQueuesRetry(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	a := f.create(t, owner, "Goodbye", nil, nil)
	f.index.writeErr = errIndexDown

	_, err := f.svc.DeleteArticle(context.Background(), a.ID, owner)

	require.NoError(t, err)
	assert.Equal(t, 0, f.repo.count())
	assert.Equal(t, []uuid.UUID{a.ID}, f.queue.deleted)
}

// =====================================================
// SEARCH (query composer)
// =====================================================

func TestSearchArticles_Pagination(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	for i := 0; i < 25; i++ {
		f.create(t, owner, fmt.Sprintf("Article %02d", i), nil, nil)
	}
	ctx := context.Background()

	page3, err := f.svc.SearchArticles(ctx, model.SearchArticlesRequest{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.Equal(t, 3, page3.TotalPages)
	assert.Equal(t, 25, page3.TotalItems)
	assert.Equal(t, 3, page3.CurrentPage)

	page4, err := f.svc.SearchArticles(ctx, model.SearchArticlesRequest{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestSearchArticles_ZeroCandidatesIsHardAnd(t *testing.T) {
	f := newFixture()
	f.create(t, uuid.New(), "Elvish grammar", nil, nil)
	f.index.hits = []search.Hit{}

	res, err := f.svc.SearchArticles(context.Background(), model.SearchArticlesRequest{
		Title: "elvish",
		Q:     "quenya",
	})

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalItems)
	assert.Equal(t, 0, res.TotalPages)
}

func TestSearchArticles_NoFreeTextDoesNotQueryIndex(t *testing.T) {
	f := newFixture()
	f.create(t, uuid.New(), "Elvish grammar", nil, nil)

	res, err := f.svc.SearchArticles(context.Background(), model.SearchArticlesRequest{Title: "elvish", Q: "  "})

	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Empty(t, f.index.queries)
}

func TestSearchArticles_RelationalOrderWins(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	ctx := context.Background()

	older, err := f.svc.CreateArticle(ctx, owner, model.CreateArticleRequest{
		Title: "Older", PublicationDate: pubDate.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)
	newer, err := f.svc.CreateArticle(ctx, owner, model.CreateArticleRequest{
		Title: "Newer", PublicationDate: pubDate,
	})
	require.NoError(t, err)
	f.create(t, owner, "Not a candidate", nil, nil)

	// index xếp older cao hơn nhưng output theo publication_date DESC
	f.index.hits = []search.Hit{{ID: older.ID, Score: 9.5}, {ID: newer.ID, Score: 1.2}}

	res, err := f.svc.SearchArticles(ctx, model.SearchArticlesRequest{Q: "anything"})

	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, newer.ID, res.Items[0].ID)
	assert.Equal(t, older.ID, res.Items[1].ID)
}

func TestSearchArticles_StructuredFilters(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	ctx := context.Background()
	tolkien := f.addAuthor("J.R.R. Tolkien")

	_, err := f.svc.CreateArticle(ctx, owner, model.CreateArticleRequest{
		Title: "Quenya", PublicationDate: time.Date(1955, 1, 1, 0, 0, 0, 0, time.UTC), AuthorIDs: []uuid.UUID{tolkien},
	})
	require.NoError(t, err)
	f.create(t, owner, "Quenya revisited", nil, nil)

	res, err := f.svc.SearchArticles(ctx, model.SearchArticlesRequest{Author: "tolk", Year: ptr(1955)})

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Quenya", res.Items[0].Title)
}

func TestSearchArticles_IndexErrorFailsRequest(t *testing.T) {
	f := newFixture()
	f.index.searchErr = errIndexDown

	_, err := f.svc.SearchArticles(context.Background(), model.SearchArticlesRequest{Q: "hello"})

	assert.Equal(t, apperror.KindSearchUnavailable, apperror.KindOf(err))
}

func TestSearchArticles_InvalidPageSize(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SearchArticles(context.Background(), model.SearchArticlesRequest{PageSize: 101})

	assert.Error(t, err)
}

// =====================================================
// END TO END
// =====================================================

func TestArticleLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner1, owner2 := uuid.New(), uuid.New()
	authorA := f.addAuthor("A")
	tagT := f.addTag("T")

	created, err := f.svc.CreateArticle(ctx, owner1, model.CreateArticleRequest{
		Title:           "Hello",
		Abstract:        "world",
		PublicationDate: pubDate,
		AuthorIDs:       []uuid.UUID{authorA},
		TagIDs:          []uuid.UUID{tagT},
	})
	require.NoError(t, err)

	fetched, err := f.svc.GetArticle(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Authors, 1)
	assert.Equal(t, "A", fetched.Authors[0].Name)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "T", fetched.Tags[0].Name)

	_, err = f.svc.DeleteArticle(ctx, created.ID, owner2)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.svc.DeleteArticle(ctx, created.ID, owner1)
	require.NoError(t, err)

	_, err = f.svc.GetArticle(ctx, created.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

// =====================================================
// INDEX SYNC JOBS
// =====================================================

func TestSyncIndex_DeletedArticleRemovesDocument(t *testing.T) {
	f := newFixture()
	stale := uuid.New()
	f.index.docs[stale] = search.Document{ID: stale, Title: "ghost"}

	require.NoError(t, f.svc.SyncIndex(context.Background(), stale))

	assert.False(t, f.index.has(stale))
}

func TestRemoveFromIndex_ExistingArticleReindexed(t *testing.T) {
	f := newFixture()
	a := f.create(t, uuid.New(), "Still here", nil, nil)

	require.NoError(t, f.svc.RemoveFromIndex(context.Background(), a.ID))

	assert.True(t, f.index.has(a.ID))
}

func TestReconcile_ReindexesAndRemovesOrphans(t *testing.T) {
	f := newFixture()
	f.index.writeErr = errIndexDown
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, f.create(t, uuid.New(), fmt.Sprintf("Missed %d", i), nil, nil).ID)
	}
	f.index.writeErr = nil
	orphan := uuid.New()
	f.index.docs[orphan] = search.Document{ID: orphan}

	res, err := f.svc.Reconcile(context.Background(), 0, true)

	require.NoError(t, err)
	assert.Equal(t, 5, res.Indexed)
	assert.Equal(t, 1, res.OrphansRemoved)
	for _, id := range ids {
		assert.True(t, f.index.has(id))
	}
	assert.False(t, f.index.has(orphan))
}
