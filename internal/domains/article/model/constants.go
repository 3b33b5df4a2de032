package model

const (
	MaxTitleLength    = 500
	MaxAbstractLength = 20000

	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// Lý do enqueue retry task (log + payload)
	SyncReasonCreate = "create"
	SyncReasonUpdate = "update"
	SyncReasonDelete = "delete"
)
