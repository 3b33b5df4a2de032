package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"articles-backend/internal/config"
	infraCache "articles-backend/internal/infrastructure/cache"
	"articles-backend/internal/infrastructure/database"
	"articles-backend/internal/infrastructure/queue"
	"articles-backend/internal/infrastructure/search"
	"articles-backend/pkg/cache"
	"articles-backend/pkg/jwt"
	"articles-backend/pkg/logger"

	articleHandler "articles-backend/internal/domains/article/handler"
	articleRepo "articles-backend/internal/domains/article/repository"
	articleService "articles-backend/internal/domains/article/service"
	authorHandler "articles-backend/internal/domains/author/handler"
	authorRepo "articles-backend/internal/domains/author/repository"
	authorService "articles-backend/internal/domains/author/service"
	commentHandler "articles-backend/internal/domains/comment/handler"
	commentRepo "articles-backend/internal/domains/comment/repository"
	commentService "articles-backend/internal/domains/comment/service"
	tagHandler "articles-backend/internal/domains/tag/handler"
	tagRepo "articles-backend/internal/domains/tag/repository"
	tagService "articles-backend/internal/domains/tag/service"
	userHandler "articles-backend/internal/domains/user/handler"
	userRepo "articles-backend/internal/domains/user/repository"
	userService "articles-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Dùng chung cho cmd/api, cmd/worker và cmd/seed
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	SearchIndex *search.Index
	AsynqClient *asynq.Client
	Publisher   *queue.Publisher
	JWTManager  *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo    userRepo.UserRepository
	AuthorRepo  authorRepo.AuthorRepository
	TagRepo     tagRepo.TagRepository
	ArticleRepo articleRepo.ArticleRepository
	CommentRepo commentRepo.CommentRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	LoginLockout   *userService.LoginLockout
	UserService    userService.ServiceInterface
	AuthorService  authorService.ServiceInterface
	TagService     tagService.ServiceInterface
	ArticleService articleService.ServiceInterface
	CommentService commentService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler    *userHandler.UserHandler
	AuthorHandler  *authorHandler.AuthorHandler
	TagHandler     *tagHandler.TagHandler
	ArticleHandler *articleHandler.ArticleHandler
	CommentHandler *commentHandler.CommentHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Redis, Search, Queue) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("env", cfg.App.Environment).Msg("🔧 Initializing DI Container...")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if cfg.Database.BootstrapDDL {
		if err := db.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	// ========================================
	// STEP 3: INITIALIZE REDIS (CACHE + QUEUE)
	// ========================================
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		// Redis failure không critical cho CRUD - cache miss sẽ đọc thẳng Postgres
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)

	c.AsynqClient = asynq.NewClient(c.RedisOpt())
	c.Publisher = queue.NewPublisher(c.AsynqClient)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL())

	// ========================================
	// STEP 4: INITIALIZE SEARCH INDEX
	// ========================================
	index, err := search.NewIndex(search.Config{
		Addr:           cfg.Search.Addr,
		Password:       cfg.Search.Password,
		IndexName:      cfg.Search.IndexName,
		KeyPrefix:      cfg.Search.KeyPrefix,
		MinScore:       cfg.Search.MinScore,
		MaxCandidates:  cfg.Search.MaxCandidates,
		CommandTimeout: cfg.Search.CommandTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init search index: %w", err)
	}
	c.SearchIndex = index

	if cfg.Search.CreateIndexOnBoot {
		// Index chưa sẵn sàng => write path vẫn chạy, sync bù bằng retry/reconcile
		if err := index.EnsureIndex(ctx); err != nil {
			log.Warn().Err(err).Msg("⚠️  Search index not ready (non-critical)")
		}
	}

	// ========================================
	// STEP 5..7: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// RedisOpt dùng chung cho asynq client, server và scheduler
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.TagRepo = tagRepo.NewPostgresRepository(pool, c.Cache)
	c.ArticleRepo = articleRepo.NewPostgresArticleRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
}

func (c *Container) initServices() {
	c.LoginLockout = userService.NewLoginLockout(c.Cache)
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.LoginLockout,
		c.Publisher, // failed login được đếm ở worker
	)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.TagService = tagService.NewTagService(c.TagRepo)

	// Cross-domain: article cần author/tag service để resolve references
	c.ArticleService = articleService.NewArticleService(
		c.ArticleRepo,
		c.AuthorService,
		c.TagService,
		c.SearchIndex,
		c.Publisher,
		articleService.Options{
			VerifyAfterIndex:   c.Config.Search.VerifyAfterIndex,
			ReconcileBatchSize: c.Config.Reconcile.BatchSize,
		},
	)

	c.CommentService = commentService.NewCommentService(c.CommentRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService, c.Publisher)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close asynq client")
		}
	}

	if c.SearchIndex != nil {
		c.SearchIndex.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}

	log.Info().Msg("✅ Container cleanup completed")
}
