package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"grantdocs/internal/model"
	"grantdocs/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `
	f.id, f.title, f.fiscal_year_id, s.name, g.name, f.remarks, f.uploaded_by, f.created_at
`

const fileFrom = `
	FROM files f
	JOIN sources s ON s.id = f.source_id
	JOIN grant_types g ON g.id = f.grant_type_id
`

// Create inserts the file and its documents in one transaction.
func (r *FilePostgres) Create(ctx context.Context, file *model.File, sourceID, grantTypeID int) (out *model.File, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qFile = `
		INSERT INTO files (id, title, fiscal_year_id, source_id, grant_type_id, remarks, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	stored := *file
	stored.Documents = make([]model.Document, 0, len(file.Documents))
	if err = tx.QueryRowContext(ctx, qFile,
		file.ID,
		file.Title,
		file.FiscalYearID,
		sourceID,
		grantTypeID,
		file.Remarks,
		nullString(file.UploadedBy),
		file.CreatedAt,
	).Scan(&stored.ID, &stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	const qDoc = `
		INSERT INTO file_documents (id, file_id, category, filename, original_filename, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, d := range file.Documents {
		d.FileID = stored.ID
		if _, err = tx.ExecContext(ctx, qDoc,
			d.ID,
			d.FileID,
			d.Category,
			d.Filename,
			d.OriginalFilename,
			d.StoragePath,
			d.Size,
			d.ContentType,
			d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("insert document %s: %w", d.OriginalFilename, err)
		}
		stored.Documents = append(stored.Documents, d)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &stored, nil
}

// FindByID fetches a single file with its documents.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	q := `SELECT` + fileColumns + fileFrom + `WHERE f.id = $1`
	f, err := scanFile(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	const qDocs = `
		SELECT id, file_id, category, filename, original_filename, storage_path, size, content_type, created_at
		FROM file_documents
		WHERE file_id = $1
		ORDER BY category, created_at, id
	`
	rows, err := r.db.QueryContext(ctx, qDocs, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	f.Documents = make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.FileID,
			&d.Category,
			&d.Filename,
			&d.OriginalFilename,
			&d.StoragePath,
			&d.Size,
			&d.ContentType,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		f.Documents = append(f.Documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns files using LIMIT/OFFSET pagination and the filtered total.
func (r *FilePostgres) List(ctx context.Context, ff repository.FileFilter, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	where, args := fileWhere(ff)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+fileFrom+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := `SELECT` + fileColumns + fileFrom + where +
		fmt.Sprintf(` ORDER BY f.created_at DESC, f.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.File]{Items: items, Total: total}, nil
}

// Delete removes a file by ID. It does not return an error if the row does not exist.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*model.File, error) {
	var (
		f          model.File
		uploadedBy sql.NullString
	)
	if err := row.Scan(
		&f.ID,
		&f.Title,
		&f.FiscalYearID,
		&f.Source,
		&f.GrantType,
		&f.Remarks,
		&uploadedBy,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	if uploadedBy.Valid {
		f.UploadedBy = &uploadedBy.String
	}
	return &f, nil
}

func fileWhere(ff repository.FileFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(expr, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	add("f.fiscal_year_id = $%d", ff.FiscalYearID)
	add("s.name = $%d", ff.Source)
	add("g.name = $%d", ff.GrantType)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
