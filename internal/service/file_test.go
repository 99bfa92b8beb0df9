package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grantdocs/internal/catalog"
	"grantdocs/internal/model"
	"grantdocs/internal/repository"
	repoMocks "grantdocs/internal/repository/mocks"
	"grantdocs/internal/storage"
	storeMocks "grantdocs/internal/storage/mocks"
)

type fileMocks struct {
	store    *storeMocks.MockStorage
	files    *repoMocks.MockFileRepository
	lookups  *repoMocks.MockLookupRepository
	syncLogs *repoMocks.MockSyncLogRepository
	metrics  *Metrics
}

func newTestFileService(t *testing.T) (FileService, *fileMocks) {
	t.Helper()
	m := &fileMocks{
		store:    new(storeMocks.MockStorage),
		files:    new(repoMocks.MockFileRepository),
		lookups:  new(repoMocks.MockLookupRepository),
		syncLogs: new(repoMocks.MockSyncLogRepository),
	}
	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	m.metrics = metrics
	return NewFileService(m.store, m.files, m.lookups, m.syncLogs, nil, metrics), m
}

func attachment(c catalog.Category, name, body string) Attachment {
	return Attachment{
		Category:    c,
		Filename:    name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func validRequest(atts ...Attachment) UploadRequest {
	return UploadRequest{
		Title:       "Q1 Report",
		FiscalYear:  "2024-2025",
		Source:      catalog.SourceFederal,
		GrantType:   catalog.GrantCurrent,
		Remarks:     "first quarter",
		Attachments: atts,
	}
}

func (m *fileMocks) expectLookups(ctx context.Context) {
	m.lookups.On("FiscalYearByID", ctx, "2024-2025").Return(&model.FiscalYear{ID: "2024-2025", Name: "FY 2024/25"}, nil)
	m.lookups.On("SourceByName", ctx, catalog.SourceFederal).Return(&model.Source{ID: 1, Name: catalog.SourceFederal}, nil)
	m.lookups.On("GrantTypeByName", ctx, catalog.GrantCurrent).Return(&model.GrantType{ID: 2, Name: catalog.GrantCurrent}, nil)
}

func echoPut(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
	return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
}

func echoFile(f *model.File) *model.File { return f }

func syncWith(status string) any {
	return mock.MatchedBy(func(e *model.SyncLog) bool {
		return e.Action == model.SyncActionUpload && e.Status == status
	})
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "files/") && strings.Contains(key, "/a4Files/") && strings.HasSuffix(key, ".pdf")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.Metadata["original-filename"] == "q1.pdf" && opt.Metadata["category"] == "a4Files"
		})).Return(echoPut, nil).Once()
		m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.Contains(key, "/nepaliFiles/") && strings.HasSuffix(key, ".docx")
		}), mock.Anything, mock.Anything).Return(echoPut, nil).Once()
		m.files.On("Create", ctx, mock.MatchedBy(func(f *model.File) bool {
			return f.Title == "Q1 Report" && f.FiscalYearID == "2024-2025" && len(f.Documents) == 2
		}), 1, 2).Return(echoFile, nil)
		m.syncLogs.On("Create", ctx, syncWith(model.SyncStatusSuccess)).Return(nil)

		f, err := svc.Upload(ctx, validRequest(
			attachment(catalog.CategoryA4, "q1.pdf", "pdf-bytes"),
			attachment(catalog.CategoryNepali, "Anudan.DOCX", "docx"),
		))

		require.NoError(t, err)
		assert.Equal(t, catalog.SourceFederal, f.Source)
		require.Len(t, f.Documents, 2)
		assert.Equal(t, "a4Files", f.Documents[0].Category)
		assert.Equal(t, "q1.pdf", f.Documents[0].OriginalFilename)
		assert.Equal(t, int64(9), f.Documents[0].Size)
		assert.Equal(t, "nepaliFiles", f.Documents[1].Category)
		assert.Equal(t, f.ID, f.Documents[1].FileID)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.uploads.WithLabelValues("success")))
		assert.Equal(t, float64(13), testutil.ToFloat64(m.metrics.bytes))
		m.store.AssertExpectations(t)
		m.files.AssertExpectations(t)
		m.syncLogs.AssertExpectations(t)
	})

	t.Run("no attachments is valid", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		m.files.On("Create", ctx, mock.Anything, 1, 2).Return(echoFile, nil)
		m.syncLogs.On("Create", ctx, mock.Anything).Return(nil)

		f, err := svc.Upload(ctx, validRequest())

		require.NoError(t, err)
		assert.Empty(t, f.Documents)
		m.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	validation := []struct {
		name   string
		mutate func(*UploadRequest)
		want   error
	}{
		{"missing title", func(r *UploadRequest) { r.Title = "" }, ErrTitleRequired},
		{"missing fiscal year", func(r *UploadRequest) { r.FiscalYear = "" }, ErrFiscalYearRequired},
		{"missing source", func(r *UploadRequest) { r.Source = "" }, ErrSourceRequired},
		{"missing grant type", func(r *UploadRequest) { r.GrantType = "" }, ErrGrantTypeRequired},
		{"unknown source", func(r *UploadRequest) { r.Source = "State Government" }, ErrInvalidSource},
		{"unknown grant type", func(r *UploadRequest) { r.GrantType = "Bonus" }, ErrInvalidGrantType},
		{"unknown category", func(r *UploadRequest) {
			r.Attachments = []Attachment{attachment(catalog.Category(8), "a.pdf", "x")}
		}, ErrUnknownCategory},
	}
	for _, tt := range validation {
		t.Run("validation error - "+tt.name, func(t *testing.T) {
			svc, m := newTestFileService(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Upload(ctx, req)

			assert.ErrorIs(t, err, tt.want)
			m.lookups.AssertNotCalled(t, "FiscalYearByID", mock.Anything, mock.Anything)
		})
	}

	t.Run("validation error - file type", func(t *testing.T) {
		svc, _ := newTestFileService(t)

		_, err := svc.Upload(ctx, validRequest(attachment(catalog.CategoryA4, "setup.exe", "MZ")))

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "INVALID_FILE_TYPE", ve.Code)
		assert.Equal(t, "File type not allowed for a4Files: setup.exe", ve.Message)
	})

	t.Run("fiscal year not in database", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.lookups.On("FiscalYearByID", ctx, "2024-2025").Return(nil, repository.ErrNotFound)

		_, err := svc.Upload(ctx, validRequest())

		assert.ErrorIs(t, err, ErrInvalidFiscalYear)
		assert.Equal(t, "Invalid fiscal year", err.Error())
	})

	t.Run("lookup failure is not a validation error", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.lookups.On("FiscalYearByID", ctx, "2024-2025").Return(nil, errors.New("conn reset"))

		_, err := svc.Upload(ctx, validRequest())

		assert.EqualError(t, err, "lookup fiscal year: conn reset")
		var ve *ValidationError
		assert.False(t, errors.As(err, &ve))
	})

	t.Run("storage error rolls back earlier objects", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		var firstKey string
		m.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				firstKey = key
				return storage.ObjectInfo{Key: key}
			}, nil).Once()
		m.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail")).Once()
		m.store.On("Delete", ctx, mock.Anything).Return(nil)
		m.syncLogs.On("Create", ctx, syncWith(model.SyncStatusFailed)).Return(nil)

		_, err := svc.Upload(ctx, validRequest(
			attachment(catalog.CategoryA4, "a.pdf", "1"),
			attachment(catalog.CategoryOther, "b.png", "2"),
		))

		assert.EqualError(t, err, "upload to storage: storage fail")
		m.store.AssertCalled(t, "Delete", ctx, firstKey)
		m.files.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.uploads.WithLabelValues("failed")))
	})

	t.Run("repository error with successful rollback", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		m.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(echoPut, nil)
		m.files.On("Create", ctx, mock.Anything, 1, 2).Return(nil, errors.New("db fail"))
		m.store.On("Delete", ctx, mock.Anything).Return(nil)
		m.syncLogs.On("Create", ctx, syncWith(model.SyncStatusFailed)).Return(nil)

		_, err := svc.Upload(ctx, validRequest(attachment(catalog.CategoryA4, "a.pdf", "1")))

		assert.EqualError(t, err, "db save failed: db fail")
		m.store.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("repository error with failed rollback", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		m.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(echoPut, nil)
		m.files.On("Create", ctx, mock.Anything, 1, 2).Return(nil, errors.New("db fail"))
		m.store.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
		m.syncLogs.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Upload(ctx, validRequest(attachment(catalog.CategoryA4, "a.pdf", "1")))

		assert.ErrorContains(t, err, "rollback delete failed: delete fail")
	})

	t.Run("sync log failure does not fail the upload", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		m.files.On("Create", ctx, mock.Anything, 1, 2).Return(echoFile, nil)
		m.syncLogs.On("Create", ctx, mock.Anything).Return(errors.New("log table locked"))

		f, err := svc.Upload(ctx, validRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, f.ID)
	})

	t.Run("nil opener", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.expectLookups(ctx)
		m.syncLogs.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Upload(ctx, validRequest(Attachment{Category: catalog.CategoryOther, Filename: "x"}))

		assert.ErrorIs(t, err, ErrReaderNil)
	})
}

func TestFileService_List(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestFileService(t)
	filter := repository.FileFilter{FiscalYearID: "2024-2025"}

	m.files.On("List", ctx, filter, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.File]{Items: []model.File{{ID: "f1"}}, Total: 1}, nil).Once()
	res, err := svc.List(ctx, filter, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	m.files.On("List", ctx, filter, repository.PageQuery{Limit: 100, Offset: 20}).
		Return(nil, errors.New("db down")).Once()
	_, err = svc.List(ctx, filter, 500, 20)
	assert.EqualError(t, err, "db down")

	m.files.AssertExpectations(t)
}

func TestFileService_Get(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestFileService(t)

	_, err := svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)

	m.files.On("FindByID", ctx, "missing").Return(nil, repository.ErrNotFound)
	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	m.files.On("FindByID", ctx, "f1").Return(&model.File{ID: "f1"}, nil)
	f, err := svc.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
}

func TestFileService_Delete(t *testing.T) {
	ctx := context.Background()
	stored := &model.File{ID: "f1", Documents: []model.Document{{ID: "d1"}}}

	t.Run("removes objects then row", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.files.On("FindByID", ctx, "f1").Return(stored, nil)
		m.store.On("DeletePrefix", ctx, "files/f1/").Return(nil)
		m.files.On("Delete", ctx, "f1").Return(nil)
		m.syncLogs.On("Create", ctx, mock.MatchedBy(func(e *model.SyncLog) bool {
			return e.Action == model.SyncActionDelete && e.Status == model.SyncStatusSuccess && *e.FileID == "f1"
		})).Return(nil)

		require.NoError(t, svc.Delete(ctx, "f1"))
		m.files.AssertExpectations(t)
		m.syncLogs.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.files.On("FindByID", ctx, "f1").Return(stored, nil)
		m.store.On("DeletePrefix", ctx, "files/f1/").Return(errors.New("s3 down"))
		m.syncLogs.On("Create", ctx, mock.Anything).Return(nil)

		err := svc.Delete(ctx, "f1")

		assert.EqualError(t, err, "delete storage: s3 down")
		m.files.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.files.On("FindByID", ctx, "nope").Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, "nope"), ErrNotFound)
	})
}

func TestFileService_Documents(t *testing.T) {
	ctx := context.Background()
	stored := &model.File{ID: "f1", Documents: []model.Document{
		{ID: "d1", StoragePath: "files/f1/a4Files/x.pdf"},
	}}

	t.Run("presigned url", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.files.On("FindByID", ctx, "f1").Return(stored, nil)
		m.store.On("PresignGet", ctx, "files/f1/a4Files/x.pdf", presignExpiry).Return("https://minio/x", nil)

		u, err := svc.DocumentURL(ctx, "f1", "d1")

		require.NoError(t, err)
		assert.Equal(t, "https://minio/x", u)
	})

	t.Run("unknown document", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.files.On("FindByID", ctx, "f1").Return(stored, nil)

		_, err := svc.DocumentURL(ctx, "f1", "d9")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("open streams content", func(t *testing.T) {
		svc, m := newTestFileService(t)
		m.files.On("FindByID", ctx, "f1").Return(stored, nil)
		m.store.On("Get", ctx, "files/f1/a4Files/x.pdf").
			Return(io.NopCloser(strings.NewReader("%PDF")), storage.ObjectInfo{}, nil)

		rc, doc, err := svc.OpenDocument(ctx, "f1", "d1")
		require.NoError(t, err)
		defer rc.Close()

		b, _ := io.ReadAll(rc)
		assert.Equal(t, "%PDF", string(b))
		assert.Equal(t, "d1", doc.ID)
	})
}
