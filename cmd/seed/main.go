// cmd/seed nạp dữ liệu mẫu (users, authors, tags, articles) qua service layer.
// Chạy nhiều lần vẫn an toàn: row đã có thì được dùng lại.
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	articleModel "articles-backend/internal/domains/article/model"
	authorModel "articles-backend/internal/domains/author/model"
	tagModel "articles-backend/internal/domains/tag/model"
	userModel "articles-backend/internal/domains/user/model"
	"articles-backend/pkg/container"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtures struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Authors  []string `yaml:"authors"`
	Tags     []string `yaml:"tags"`
	Articles []struct {
		Title           string    `yaml:"title"`
		Abstract        string    `yaml:"abstract"`
		Owner           string    `yaml:"owner"`
		PublicationDate time.Time `yaml:"publication_date"`
		Authors         []string  `yaml:"authors"`
		Tags            []string  `yaml:"tags"`
	} `yaml:"articles"`
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed")
	}
	log.Info().Msg("[Seed] ✓ Default data created successfully")
}

func run() error {
	var fx fixtures
	if err := yaml.Unmarshal(fixturesYAML, &fx); err != nil {
		return fmt.Errorf("invalid fixtures: %w", err)
	}

	c, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer c.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return seed(ctx, c, &fx)
}

func seed(ctx context.Context, c *container.Container, fx *fixtures) error {
	// Step 1: Users
	users := make(map[string]uuid.UUID, len(fx.Users))
	for _, u := range fx.Users {
		dto, err := c.UserService.Register(ctx, userModel.RegisterRequest{Username: u.Username, Password: u.Password})
		switch {
		case err == nil:
			users[u.Username] = dto.ID
		case errors.Is(err, userModel.ErrUsernameTaken):
			existing, err := c.UserRepo.GetByUsername(ctx, u.Username)
			if err != nil {
				return fmt.Errorf("load user %s: %w", u.Username, err)
			}
			users[u.Username] = existing.ID
		default:
			return fmt.Errorf("register user %s: %w", u.Username, err)
		}
	}
	log.Info().Int("count", len(users)).Msg("[Seed] Users ready")

	// Step 2: Authors & tags (idempotent by name)
	authors := make(map[string]uuid.UUID, len(fx.Authors))
	for _, name := range fx.Authors {
		a, _, err := c.AuthorService.Create(ctx, authorModel.CreateAuthorRequest{Name: name})
		if err != nil {
			return fmt.Errorf("create author %s: %w", name, err)
		}
		authors[name] = a.ID
	}

	tags := make(map[string]uuid.UUID, len(fx.Tags))
	for _, name := range fx.Tags {
		t, _, err := c.TagService.Create(ctx, tagModel.CreateTagRequest{Name: name})
		if err != nil {
			return fmt.Errorf("create tag %s: %w", name, err)
		}
		tags[name] = t.ID
	}
	log.Info().Int("authors", len(authors)).Int("tags", len(tags)).Msg("[Seed] Authors and tags ready")

	// Step 3: Articles, bỏ qua title đã tồn tại
	created := 0
	for _, a := range fx.Articles {
		exists, err := articleExists(ctx, c, a.Title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		ownerID, ok := users[a.Owner]
		if !ok {
			return fmt.Errorf("article %q: unknown owner %q", a.Title, a.Owner)
		}
		authorIDs, err := lookup(authors, a.Authors, "author")
		if err != nil {
			return fmt.Errorf("article %q: %w", a.Title, err)
		}
		tagIDs, err := lookup(tags, a.Tags, "tag")
		if err != nil {
			return fmt.Errorf("article %q: %w", a.Title, err)
		}

		pubDate := a.PublicationDate
		if pubDate.IsZero() {
			pubDate = time.Now().UTC()
		}

		// CreateArticle tự index vào search engine sau khi commit
		if _, err := c.ArticleService.CreateArticle(ctx, ownerID, articleModel.CreateArticleRequest{
			Title:           a.Title,
			Abstract:        a.Abstract,
			PublicationDate: pubDate,
			AuthorIDs:       authorIDs,
			TagIDs:          tagIDs,
		}); err != nil {
			return fmt.Errorf("create article %q: %w", a.Title, err)
		}
		created++
	}
	log.Info().Int("created", created).Int("total", len(fx.Articles)).Msg("[Seed] Articles ready")

	return nil
}

func articleExists(ctx context.Context, c *container.Container, title string) (bool, error) {
	// Title filter là substring match => so sánh lại chính xác
	found, _, err := c.ArticleRepo.Search(ctx, articleModel.ArticleFilter{Title: title}, articleModel.MaxPageSize, 0)
	if err != nil {
		return false, fmt.Errorf("lookup article %q: %w", title, err)
	}
	for _, a := range found {
		if a.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func lookup(byName map[string]uuid.UUID, names []string, kind string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, n := range names {
		id, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, n)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
