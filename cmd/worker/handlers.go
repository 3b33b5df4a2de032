package main

import (
	"github.com/hibiken/asynq"

	articleJob "articles-backend/internal/domains/article/job"
	userJob "articles-backend/internal/domains/user/job"
	"articles-backend/internal/shared"
	"articles-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Search sync handlers
	indexArticle *articleJob.IndexArticleHandler
	reconcile    *articleJob.ReconcileHandler

	// Security handlers
	failedLogin *userJob.FailedLoginHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		indexArticle: articleJob.NewIndexArticleHandler(c.ArticleService),
		reconcile:    articleJob.NewReconcileHandler(c.ArticleService),
		failedLogin:  userJob.NewFailedLoginHandler(c.LoginLockout),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Search tasks: index và delete dùng chung handler, job đọc lại state từ Postgres
	mux.HandleFunc(shared.TypeIndexArticle, h.indexArticle.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteArticle, h.indexArticle.ProcessTask)
	mux.HandleFunc(shared.TypeReconcileIndex, h.reconcile.ProcessTask)

	// Security tasks
	mux.HandleFunc(shared.TypeProcessFailedLog, h.failedLogin.ProcessTask)
}
