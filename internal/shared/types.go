package shared

import "time"

// Asynq task types
const (
	TypeIndexArticle     = "search:index_article"
	TypeDeleteArticle    = "search:delete_article"
	TypeReconcileIndex   = "search:reconcile"
	TypeProcessFailedLog = "auth:process_failed_login"

	QueueSearch  = "search"
	QueueDefault = "default"
)

// ArticleIndexPayload là payload cho search:index_article / search:delete_article
// Job luôn đọc lại article từ Postgres nên payload chỉ cần ID
type ArticleIndexPayload struct {
	ArticleID string    `json:"articleId"`
	Reason    string    `json:"reason"`
	QueuedAt  time.Time `json:"queuedAt"`
}

// ReconcilePayload cho search:reconcile (scheduled hoặc trigger từ admin endpoint)
type ReconcilePayload struct {
	BatchSize     int    `json:"batchSize"`
	DeleteOrphans bool   `json:"deleteOrphans"`
	TriggeredBy   string `json:"triggeredBy"`
}

// FailedLoginPayload represents data for failed login tracking
type FailedLoginPayload struct {
	Username  string    `json:"username"`
	IPAddress string    `json:"ipAddress"`
	Attempts  int64     `json:"attempts"`
	Timestamp time.Time `json:"timestamp"`
}
