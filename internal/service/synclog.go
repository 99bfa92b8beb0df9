package service

import (
	"context"

	"grantdocs/internal/model"
	"grantdocs/internal/repository"
)

// SyncLogListResult is the service-level DTO for paginated sync logs.
type SyncLogListResult struct {
	Items []model.SyncLog `json:"data"`
	Total int             `json:"total"`
}

// SyncLogService reads the sync log written by uploads and deletions.
type SyncLogService interface {
	List(ctx context.Context, limit, offset int) (*SyncLogListResult, error)
}

type syncLogService struct {
	repo repository.SyncLogRepository
}

// NewSyncLogService constructs a new SyncLogService.
func NewSyncLogService(repo repository.SyncLogRepository) SyncLogService {
	return &syncLogService{repo: repo}
}

func (s *syncLogService) List(ctx context.Context, limit, offset int) (*SyncLogListResult, error) {
	res, err := s.repo.List(ctx, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &SyncLogListResult{Items: res.Items, Total: res.Total}, nil
}
