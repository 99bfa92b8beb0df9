package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"grantdocs/internal/model"
	"grantdocs/internal/repository"
	"grantdocs/internal/service"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, req service.UploadRequest) (*model.File, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, filter repository.FileFilter, limit, offset int) (*service.FileListResult, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileListResult), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, id string) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFileService) DocumentURL(ctx context.Context, fileID, docID string) (string, error) {
	args := m.Called(ctx, fileID, docID)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) OpenDocument(ctx context.Context, fileID, docID string) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, fileID, docID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Document), args.Error(2)
}

type MockLookupService struct {
	mock.Mock
}

func (m *MockLookupService) FiscalYears(ctx context.Context) ([]model.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FiscalYear), args.Error(1)
}

func (m *MockLookupService) Sources(ctx context.Context) ([]model.Source, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Source), args.Error(1)
}

func (m *MockLookupService) GrantTypes(ctx context.Context) ([]model.GrantType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GrantType), args.Error(1)
}

func (m *MockLookupService) VerifyCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, fiscalYearID string) (*model.Report, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, limit, offset int) (*service.ReportListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportListResult), args.Error(1)
}

type MockSyncLogService struct {
	mock.Mock
}

func (m *MockSyncLogService) List(ctx context.Context, limit, offset int) (*service.SyncLogListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncLogListResult), args.Error(1)
}
