package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the versioned SQL migrations, rooted at the sql directory.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
}

// newMigrator is a seam for tests.
var newMigrator = func(db *sql.DB, fsys fs.FS) (migrator, error) {
	return goose.NewProvider(goose.DialectPostgres, db, fsys)
}

// EnsureMigrated applies every pending migration and logs each step.
// Already-applied versions are skipped by goose's version table.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	p, err := newMigrator(db, Files())
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := p.Up(ctx)
	var partial *goose.PartialError
	if errors.As(err, &partial) {
		results = partial.Applied
	}
	for _, r := range results {
		logStep(log, r)
	}
	if err != nil {
		fields := []zap.Field{
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if partial != nil && partial.Failed != nil && partial.Failed.Source != nil {
			fields = append(fields, zap.String("migration_step", partial.Failed.Source.Path))
		}
		log.Error("db_migration_failed", fields...)
		return fmt.Errorf("apply migrations: %w", err)
	}

	if len(results) == 0 {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg_detail", "schema up to date"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int("applied", len(results)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

func logStep(log *zap.Logger, r *goose.MigrationResult) {
	if r == nil {
		return
	}
	name := ""
	if r.Source != nil {
		name = r.Source.Path
	}
	log.Info("db_migration_step",
		zap.String("status", "success"),
		zap.String("migration_step", name),
		zap.Int64("step_duration_ms", r.Duration.Milliseconds()),
	)
}
