package repository

import (
	"context"
	"errors"

	"grantdocs/internal/model"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// FileFilter narrows file listings. Empty fields match everything.
type FileFilter struct {
	FiscalYearID string
	Source       string
	GrantType    string
}

// FileRepository defines data access for files and their documents using SQL queries only.
// No business logic here, strictly persistence operations.
type FileRepository interface {
	// Create inserts the file row and all of its documents atomically.
	// SourceID and GrantTypeID are the resolved lookup keys for file.Source and file.GrantType.
	Create(ctx context.Context, file *model.File, sourceID, grantTypeID int) (*model.File, error)

	// FindByID returns a file with its documents, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// List returns a page of files (without documents) and the filtered total.
	List(ctx context.Context, f FileFilter, pq PageQuery) (*PageResult[model.File], error)

	// Delete removes a file row; documents cascade. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}

// LookupRepository reads the fiscal year, source and grant type tables.
type LookupRepository interface {
	FiscalYears(ctx context.Context) ([]model.FiscalYear, error)
	Sources(ctx context.Context) ([]model.Source, error)
	GrantTypes(ctx context.Context) ([]model.GrantType, error)

	// FiscalYearByID, SourceByName and GrantTypeByName return ErrNotFound for unknown keys.
	FiscalYearByID(ctx context.Context, id string) (*model.FiscalYear, error)
	SourceByName(ctx context.Context, name string) (*model.Source, error)
	GrantTypeByName(ctx context.Context, name string) (*model.GrantType, error)
}

// SyncLogRepository persists sync log entries.
type SyncLogRepository interface {
	Create(ctx context.Context, entry *model.SyncLog) error
	List(ctx context.Context, pq PageQuery) (*PageResult[model.SyncLog], error)
}

// ReportSummary is the raw aggregate a report is built from.
type ReportSummary struct {
	TotalFiles     int
	TotalDocuments int
	TotalBytes     int64
	BySource       map[string]int
	ByGrantType    map[string]int
}

// ReportRepository aggregates files into reports and stores them.
type ReportRepository interface {
	Summarize(ctx context.Context, fiscalYearID string) (*ReportSummary, error)
	Create(ctx context.Context, r *model.Report) error
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Report], error)
}
