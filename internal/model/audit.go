package model

import "time"

// Sync log actions and statuses.
const (
	SyncActionUpload = "upload"
	SyncActionDelete = "delete"

	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncLog records one storage/database synchronization attempt.
type SyncLog struct {
	ID        string    `json:"id"`
	FileID    *string   `json:"file_id,omitempty"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is an aggregate snapshot of the uploads for one fiscal year.
type Report struct {
	ID             string         `json:"id"`
	FiscalYearID   string         `json:"fiscal_year_id"`
	TotalFiles     int            `json:"total_files"`
	TotalDocuments int            `json:"total_documents"`
	TotalBytes     int64          `json:"total_bytes"`
	BySource       map[string]int `json:"by_source"`
	ByGrantType    map[string]int `json:"by_grant_type"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
