package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"grantdocs/internal/model"
	"grantdocs/internal/repository"
)

// SyncLogPostgres stores sync log entries.
type SyncLogPostgres struct {
	db *sql.DB
}

// NewSyncLogPostgres creates a new SyncLogPostgres repository.
func NewSyncLogPostgres(db *sql.DB) *SyncLogPostgres {
	return &SyncLogPostgres{db: db}
}

var _ repository.SyncLogRepository = (*SyncLogPostgres)(nil)

// Create inserts one entry.
func (r *SyncLogPostgres) Create(ctx context.Context, e *model.SyncLog) error {
	const q = `
		INSERT INTO sync_logs (id, file_id, action, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q, e.ID, nullString(e.FileID), e.Action, e.Status, e.Message, e.CreatedAt)
	return err
}

// List returns entries newest first.
func (r *SyncLogPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.SyncLog], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_logs`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, file_id, action, status, message, created_at
		FROM sync_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SyncLog, 0)
	for rows.Next() {
		var (
			e      model.SyncLog
			fileID sql.NullString
		)
		if err := rows.Scan(&e.ID, &fileID, &e.Action, &e.Status, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		if fileID.Valid {
			e.FileID = &fileID.String
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.SyncLog]{Items: items, Total: total}, nil
}

// ReportPostgres aggregates and stores reports.
type ReportPostgres struct {
	db *sql.DB
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

// Summarize aggregates the files of one fiscal year.
func (r *ReportPostgres) Summarize(ctx context.Context, fiscalYearID string) (*repository.ReportSummary, error) {
	sum := &repository.ReportSummary{
		BySource:    map[string]int{},
		ByGrantType: map[string]int{},
	}

	const qTotals = `
		SELECT
			(SELECT COUNT(*) FROM files WHERE fiscal_year_id = $1),
			COUNT(d.id),
			COALESCE(SUM(d.size), 0)
		FROM file_documents d
		JOIN files f ON f.id = d.file_id
		WHERE f.fiscal_year_id = $1
	`
	if err := r.db.QueryRowContext(ctx, qTotals, fiscalYearID).Scan(&sum.TotalFiles, &sum.TotalDocuments, &sum.TotalBytes); err != nil {
		return nil, fmt.Errorf("report totals: %w", err)
	}

	const qBySource = `
		SELECT s.name, COUNT(*)
		FROM files f JOIN sources s ON s.id = f.source_id
		WHERE f.fiscal_year_id = $1
		GROUP BY s.name
	`
	if err := r.countInto(ctx, qBySource, fiscalYearID, sum.BySource); err != nil {
		return nil, fmt.Errorf("report by source: %w", err)
	}

	const qByGrantType = `
		SELECT g.name, COUNT(*)
		FROM files f JOIN grant_types g ON g.id = f.grant_type_id
		WHERE f.fiscal_year_id = $1
		GROUP BY g.name
	`
	if err := r.countInto(ctx, qByGrantType, fiscalYearID, sum.ByGrantType); err != nil {
		return nil, fmt.Errorf("report by grant type: %w", err)
	}
	return sum, nil
}

func (r *ReportPostgres) countInto(ctx context.Context, q, fiscalYearID string, dst map[string]int) error {
	rows, err := r.db.QueryContext(ctx, q, fiscalYearID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return err
		}
		dst[name] = n
	}
	return rows.Err()
}

// Create stores a generated report; the group counts are kept as JSONB.
func (r *ReportPostgres) Create(ctx context.Context, rep *model.Report) error {
	bySource, err := json.Marshal(rep.BySource)
	if err != nil {
		return err
	}
	byGrantType, err := json.Marshal(rep.ByGrantType)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO reports (id, fiscal_year_id, total_files, total_documents, total_bytes, by_source, by_grant_type, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, q,
		rep.ID,
		rep.FiscalYearID,
		rep.TotalFiles,
		rep.TotalDocuments,
		rep.TotalBytes,
		bySource,
		byGrantType,
		rep.GeneratedAt,
	)
	return err
}

// List returns reports newest first.
func (r *ReportPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, fiscal_year_id, total_files, total_documents, total_bytes, by_source, by_grant_type, generated_at
		FROM reports
		ORDER BY generated_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Report, 0)
	for rows.Next() {
		var (
			rep                   model.Report
			bySource, byGrantType []byte
		)
		if err := rows.Scan(
			&rep.ID,
			&rep.FiscalYearID,
			&rep.TotalFiles,
			&rep.TotalDocuments,
			&rep.TotalBytes,
			&bySource,
			&byGrantType,
			&rep.GeneratedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(bySource, &rep.BySource); err != nil {
			return nil, fmt.Errorf("decode by_source: %w", err)
		}
		if err := json.Unmarshal(byGrantType, &rep.ByGrantType); err != nil {
			return nil, fmt.Errorf("decode by_grant_type: %w", err)
		}
		items = append(items, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Report]{Items: items, Total: total}, nil
}
