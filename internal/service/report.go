package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"grantdocs/internal/model"
	"grantdocs/internal/repository"
)

// ReportListResult is the service-level DTO for paginated reports.
type ReportListResult struct {
	Items []model.Report `json:"data"`
	Total int            `json:"total"`
}

// ReportService generates per fiscal year summaries of the uploaded files.
type ReportService interface {
	// Generate aggregates the files of a fiscal year and stores the result.
	Generate(ctx context.Context, fiscalYearID string) (*model.Report, error)
	List(ctx context.Context, limit, offset int) (*ReportListResult, error)
}

type reportService struct {
	reports repository.ReportRepository
	lookups repository.LookupRepository
	now     func() time.Time
}

// NewReportService constructs a new ReportService.
func NewReportService(reports repository.ReportRepository, lookups repository.LookupRepository) ReportService {
	return &reportService{
		reports: reports,
		lookups: lookups,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Generate(ctx context.Context, fiscalYearID string) (*model.Report, error) {
	if fiscalYearID == "" {
		return nil, ErrFiscalYearRequired
	}
	if _, err := s.lookups.FiscalYearByID(ctx, fiscalYearID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidFiscalYear
		}
		return nil, fmt.Errorf("lookup fiscal year: %w", err)
	}

	sum, err := s.reports.Summarize(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}

	rep := &model.Report{
		ID:             uuid.NewString(),
		FiscalYearID:   fiscalYearID,
		TotalFiles:     sum.TotalFiles,
		TotalDocuments: sum.TotalDocuments,
		TotalBytes:     sum.TotalBytes,
		BySource:       sum.BySource,
		ByGrantType:    sum.ByGrantType,
		GeneratedAt:    s.now(),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return rep, nil
}

func (s *reportService) List(ctx context.Context, limit, offset int) (*ReportListResult, error) {
	res, err := s.reports.List(ctx, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ReportListResult{Items: res.Items, Total: res.Total}, nil
}
