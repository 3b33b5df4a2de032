package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"articles-backend/internal/shared/metrics"
	"articles-backend/internal/shared/middleware"
	"articles-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins),
		middleware.ClientIPMiddleware(),
		metrics.Middleware(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		auth := middleware.AuthMiddleware(c.JWTManager)

		setupUserRoutes(v1, c, auth)
		setupAuthorRoutes(v1, c)
		setupTagRoutes(v1, c)
		setupArticleRoutes(v1, c, auth)
		setupCommentRoutes(v1, c, auth)
		setupAdminRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// USER / AUTH ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	v1.POST("/auth/login", c.UserHandler.Login)

	users := v1.Group("/users")
	{
		users.POST("", c.UserHandler.Register)
		users.GET("/me", auth, c.UserHandler.Me)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	author := v1.Group("/authors")
	{
		author.POST("", c.AuthorHandler.Create)
		author.GET("", c.AuthorHandler.List)
		author.GET("/:id", c.AuthorHandler.GetByID)
		author.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tag := v1.Group("/tags")
	{
		tag.POST("", c.TagHandler.Create)
		tag.GET("", c.TagHandler.List)
		tag.GET("/:id", c.TagHandler.GetByID)
		tag.DELETE("/:id", c.TagHandler.Delete)
	}
}

// ========================================
// ARTICLE ROUTES
// ========================================
func setupArticleRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	articles := v1.Group("/articles")
	{
		// Public
		articles.GET("", c.ArticleHandler.SearchArticles)
		articles.GET("/:id", c.ArticleHandler.GetArticle)

		// Owner-only
		articles.POST("", auth, c.ArticleHandler.CreateArticle)
		articles.PUT("/:id", auth, c.ArticleHandler.UpdateArticle)
		articles.PATCH("/:id", auth, c.ArticleHandler.UpdateArticle)
		articles.DELETE("/:id", auth, c.ArticleHandler.DeleteArticle)
	}
}

// ========================================
// COMMENT ROUTES
// ========================================
func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	comments := v1.Group("/comments")
	{
		comments.GET("/:id", c.CommentHandler.GetComment)
		comments.POST("", auth, c.CommentHandler.CreateComment)
		comments.PUT("/:id", auth, c.CommentHandler.UpdateComment)
		comments.DELETE("/:id", auth, c.CommentHandler.DeleteComment)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware(c.Config.App.AdminToken))
	{
		admin.POST("/search/reindex", c.ArticleHandler.Reindex)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
		}

		// Check redis (cache + queue)
		redisStatus := "ok"
		if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		// Check search engine
		searchStatus := "ok"
		if err := appCtx.SearchIndex.HealthCheck(ctx); err != nil {
			searchStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"search":   searchStatus,
		}

		// Chỉ database là bắt buộc; redis/search down => degraded
		statusCode := http.StatusOK
		switch {
		case dbStatus != "ok":
			health["status"] = "unavailable"
			statusCode = http.StatusServiceUnavailable
		case redisStatus != "ok" || searchStatus != "ok":
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
