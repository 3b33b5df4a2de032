package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"articles-backend/internal/domains/article/model"
	authorModel "articles-backend/internal/domains/author/model"
	tagModel "articles-backend/internal/domains/tag/model"
	"articles-backend/internal/infrastructure/search"
)

// =====================================================
// IN-MEMORY ARTICLE REPOSITORY
// =====================================================

type memArticleRepo struct {
	mu       sync.Mutex
	articles map[uuid.UUID]model.Article
	authors  map[uuid.UUID]string // author id => name
	tags     map[uuid.UUID]string
	links    map[uuid.UUID][]uuid.UUID // article => authors
	tagLinks map[uuid.UUID][]uuid.UUID
	writes   int
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{
		articles: map[uuid.UUID]model.Article{},
		authors:  map[uuid.UUID]string{},
		tags:     map[uuid.UUID]string{},
		links:    map[uuid.UUID][]uuid.UUID{},
		tagLinks: map[uuid.UUID][]uuid.UUID{},
	}
}

func (r *memArticleRepo) populate(a model.Article) *model.Article {
	a.Authors = []model.AuthorRef{}
	for _, id := range r.links[a.ID] {
		a.Authors = append(a.Authors, model.AuthorRef{ID: id, Name: r.authors[id]})
	}
	a.Tags = []model.TagRef{}
	for _, id := range r.tagLinks[a.ID] {
		a.Tags = append(a.Tags, model.TagRef{ID: id, Name: r.tags[id]})
	}
	return &a
}

func (r *memArticleRepo) Create(_ context.Context, a *model.Article, authorIDs, tagIDs []uuid.UUID) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writes++
	row := *a
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	r.articles[row.ID] = row
	r.links[row.ID] = append([]uuid.UUID(nil), authorIDs...)
	r.tagLinks[row.ID] = append([]uuid.UUID(nil), tagIDs...)
	return r.populate(row), nil
}

func (r *memArticleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.articles[id]
	if !ok {
		return nil, model.ErrArticleNotFound
	}
	return r.populate(row), nil
}

func (r *memArticleRepo) Update(_ context.Context, id uuid.UUID, p model.ArticlePatch) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.articles[id]
	if !ok {
		return nil, model.ErrArticleNotFound
	}
	r.writes++
	if p.Title != nil {
		row.Title = *p.Title
	}
	if p.Abstract != nil {
		row.Abstract = *p.Abstract
	}
	if p.PublicationDate != nil {
		row.PublicationDate = *p.PublicationDate
	}
	if p.AuthorIDs != nil {
		r.links[id] = append([]uuid.UUID(nil), (*p.AuthorIDs)...)
	}
	if p.TagIDs != nil {
		r.tagLinks[id] = append([]uuid.UUID(nil), (*p.TagIDs)...)
	}
	row.UpdatedAt = time.Now()
	r.articles[id] = row
	return r.populate(row), nil
}

func (r *memArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return model.ErrArticleNotFound
	}
	r.writes++
	delete(r.articles, id)
	delete(r.links, id)
	delete(r.tagLinks, id)
	return nil
}

func (r *memArticleRepo) matches(a model.Article, f model.ArticleFilter) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Year != nil && a.PublicationDate.Year() != *f.Year {
		return false
	}
	if f.Author != "" {
		found := false
		for _, id := range r.links[a.ID] {
			if strings.Contains(strings.ToLower(r.authors[id]), strings.ToLower(f.Author)) {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if f.CandidateIDs != nil {
		found := false
		for _, id := range f.CandidateIDs {
			if id == a.ID {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *memArticleRepo) Search(_ context.Context, f model.ArticleFilter, limit, offset int) ([]model.Article, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []model.Article
	for _, a := range r.articles {
		if r.matches(a, f) {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PublicationDate.Equal(all[j].PublicationDate) {
			return all[i].PublicationDate.After(all[j].PublicationDate)
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	total := len(all)
	out := []model.Article{}
	for i := offset; i < total && i < offset+limit; i++ {
		out = append(out, *r.populate(all[i]))
	}
	return out, total, nil
}

func (r *memArticleRepo) ListAfter(_ context.Context, after uuid.UUID, limit int) ([]model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []model.Article
	for _, a := range r.articles {
		if a.ID.String() > after.String() {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memArticleRepo) ExistingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := map[uuid.UUID]struct{}{}
	for _, id := range ids {
		if _, ok := r.articles[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *memArticleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.articles)
}

// =====================================================
// RESOLVERS
// =====================================================

type mapAuthors struct{ repo *memArticleRepo }

func (m mapAuthors) ResolveIDs(_ context.Context, ids []uuid.UUID) ([]authorModel.Author, error) {
	out := []authorModel.Author{}
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		name, ok := m.repo.authors[id]
		if !ok {
			return nil, authorModel.ErrAuthorNotFound.WithMessage("author %s not found", id)
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, authorModel.Author{ID: id, Name: name})
		}
	}
	return out, nil
}

type mapTags struct{ repo *memArticleRepo }

func (m mapTags) ResolveIDs(_ context.Context, ids []uuid.UUID) ([]tagModel.Tag, error) {
	out := []tagModel.Tag{}
	for _, id := range ids {
		name, ok := m.repo.tags[id]
		if !ok {
			return nil, tagModel.ErrTagNotFound.WithMessage("tag %s not found", id)
		}
		out = append(out, tagModel.Tag{ID: id, Name: name})
	}
	return out, nil
}

// =====================================================
// SEARCH INDEX + RETRY QUEUE
// =====================================================

type fakeIndex struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]search.Document
	hits      []search.Hit
	searchErr error
	writeErr  error
	queries   []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[uuid.UUID]search.Document{}}
}

func (f *fakeIndex) IndexDocument(_ context.Context, doc search.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) DeleteDocument(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) DocumentExists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[id]
	return ok, nil
}

func (f *fakeIndex) Search(_ context.Context, text string, _ bool) ([]search.Hit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

func (f *fakeIndex) EnsureIndex(context.Context) error { return nil }

func (f *fakeIndex) ListDocumentIDs(context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeIndex) has(id uuid.UUID) bool {
	ok, _ := f.DocumentExists(context.Background(), id)
	return ok
}

type recordingQueue struct {
	indexed []uuid.UUID
	deleted []uuid.UUID
}

func (q *recordingQueue) EnqueueIndex(_ context.Context, id uuid.UUID, _ string) error {
	q.indexed = append(q.indexed, id)
	return nil
}

func (q *recordingQueue) EnqueueDelete(_ context.Context, id uuid.UUID, _ string) error {
	q.deleted = append(q.deleted, id)
	return nil
}

var errIndexDown = errors.New("dial tcp: connection refused")

// =====================================================
// FIXTURE
// =====================================================

type fixture struct {
	repo  *memArticleRepo
	index *fakeIndex
	queue *recordingQueue
	svc   ServiceInterface
}

func newFixture() *fixture {
	repo := newMemArticleRepo()
	index := newFakeIndex()
	queue := &recordingQueue{}
	return &fixture{
		repo:  repo,
		index: index,
		queue: queue,
		svc:   NewArticleService(repo, mapAuthors{repo}, mapTags{repo}, index, queue, Options{ReconcileBatchSize: 2}),
	}
}

func (f *fixture) addAuthor(name string) uuid.UUID {
	id := uuid.New()
	f.repo.authors[id] = name
	return id
}

func (f *fixture) addTag(name string) uuid.UUID {
	id := uuid.New()
	f.repo.tags[id] = name
	return id
}
