package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"grantdocs/internal/catalog"
	"grantdocs/internal/model"
	"grantdocs/internal/repository"
	"grantdocs/internal/storage"
)

// presignExpiry is how long a document download URL stays valid.
const presignExpiry = 15 * time.Minute

// Attachment is one file part of an upload, bound to its category.
type Attachment struct {
	Category    catalog.Category
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadRequest is a decoded submission of the upload wizard.
type UploadRequest struct {
	Title       string
	FiscalYear  string
	Source      string
	GrantType   string
	Remarks     string
	Attachments []Attachment
}

// FileListResult is the service-level DTO for paginated files.
type FileListResult struct {
	Items []model.File `json:"data"`
	Total int          `json:"total"`
}

// FileService defines the use cases for uploaded grant files.
type FileService interface {
	// Upload validates the request, stores every attachment in object storage, and saves the
	// file with its documents. Stored objects are removed again if anything later fails.
	Upload(ctx context.Context, req UploadRequest) (*model.File, error)

	// List returns files using limit/offset and a total count.
	List(ctx context.Context, filter repository.FileFilter, limit, offset int) (*FileListResult, error)

	// Get returns a single file with its documents.
	Get(ctx context.Context, id string) (*model.File, error)

	// Delete removes a file's objects from storage and then its record.
	Delete(ctx context.Context, id string) error

	// DocumentURL returns a pre-signed download URL for one document of a file.
	DocumentURL(ctx context.Context, fileID, docID string) (string, error)

	// OpenDocument streams one document of a file.
	OpenDocument(ctx context.Context, fileID, docID string) (io.ReadCloser, *model.Document, error)
}

type fileService struct {
	store    storage.Storage
	files    repository.FileRepository
	lookups  repository.LookupRepository
	syncLogs repository.SyncLogRepository
	log      *zap.Logger
	metrics  *Metrics
	now      func() time.Time
}

// NewFileService constructs a new FileService. metrics may be nil.
func NewFileService(
	store storage.Storage,
	files repository.FileRepository,
	lookups repository.LookupRepository,
	syncLogs repository.SyncLogRepository,
	log *zap.Logger,
	metrics *Metrics,
) FileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &fileService{
		store:    store,
		files:    files,
		lookups:  lookups,
		syncLogs: syncLogs,
		log:      log,
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *fileService) Upload(ctx context.Context, req UploadRequest) (*model.File, error) {
	if err := validateUpload(req); err != nil {
		return nil, err
	}

	fy, err := s.lookups.FiscalYearByID(ctx, req.FiscalYear)
	if err != nil {
		return nil, lookupErr(err, ErrInvalidFiscalYear, "fiscal year")
	}
	src, err := s.lookups.SourceByName(ctx, req.Source)
	if err != nil {
		return nil, lookupErr(err, ErrInvalidSource, "source")
	}
	gt, err := s.lookups.GrantTypeByName(ctx, req.GrantType)
	if err != nil {
		return nil, lookupErr(err, ErrInvalidGrantType, "grant type")
	}

	now := s.now()
	file := &model.File{
		ID:           uuid.NewString(),
		Title:        req.Title,
		FiscalYearID: fy.ID,
		Source:       src.Name,
		GrantType:    gt.Name,
		Remarks:      req.Remarks,
		CreatedAt:    now,
		Documents:    make([]model.Document, 0, len(req.Attachments)),
	}

	keys := make([]string, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		doc, err := s.storeAttachment(ctx, file.ID, a, now)
		if err != nil {
			err = fmt.Errorf("upload to storage: %w", err)
			if rbErr := s.rollback(ctx, keys); rbErr != nil {
				err = fmt.Errorf("%v; rollback delete failed: %v", err, rbErr)
			}
			s.log.Error("upload_failed", zap.String("file_id", file.ID), zap.Error(err))
			s.recordSync(ctx, nil, model.SyncActionUpload, model.SyncStatusFailed, err.Error())
			s.metrics.upload(model.SyncStatusFailed)
			return nil, err
		}
		keys = append(keys, doc.StoragePath)
		file.Documents = append(file.Documents, *doc)
	}

	stored, err := s.files.Create(ctx, file, src.ID, gt.ID)
	if err != nil {
		if rbErr := s.rollback(ctx, keys); rbErr != nil {
			err = fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, rbErr)
		} else {
			err = fmt.Errorf("db save failed: %w", err)
		}
		s.log.Error("upload_failed", zap.String("file_id", file.ID), zap.Error(err))
		s.recordSync(ctx, nil, model.SyncActionUpload, model.SyncStatusFailed, err.Error())
		s.metrics.upload(model.SyncStatusFailed)
		return nil, err
	}

	for _, d := range stored.Documents {
		s.metrics.document(d.Category, d.Size)
	}
	s.metrics.upload(model.SyncStatusSuccess)
	s.recordSync(ctx, &stored.ID, model.SyncActionUpload, model.SyncStatusSuccess,
		fmt.Sprintf("stored %d document(s)", len(stored.Documents)))
	s.log.Info("upload_stored",
		zap.String("file_id", stored.ID),
		zap.String("fiscal_year", stored.FiscalYearID),
		zap.Int("documents", len(stored.Documents)),
	)
	return stored, nil
}

func (s *fileService) storeAttachment(ctx context.Context, fileID string, a Attachment, now time.Time) (*model.Document, error) {
	if a.Open == nil {
		return nil, ErrReaderNil
	}
	r, err := a.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.Filename, err)
	}
	defer r.Close()

	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	genName := uuid.NewString() + strings.ToLower(filepath.Ext(a.Filename))
	key := storage.DocumentKey(fileID, a.Category.Field(), genName)

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        a.Size,
		ContentType: ct,
		Metadata: map[string]string{
			"original-filename": a.Filename,
			"category":          a.Category.Field(),
		},
	})
	if err != nil {
		return nil, err
	}

	return &model.Document{
		ID:               uuid.NewString(),
		FileID:           fileID,
		Category:         a.Category.Field(),
		Filename:         genName,
		OriginalFilename: a.Filename,
		StoragePath:      info.Key,
		Size:             info.Size,
		ContentType:      ct,
		CreatedAt:        now,
	}, nil
}

func (s *fileService) rollback(ctx context.Context, keys []string) error {
	var errs []error
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// recordSync never fails the caller; a lost sync log is only logged.
func (s *fileService) recordSync(ctx context.Context, fileID *string, action, status, msg string) {
	if s.syncLogs == nil {
		return
	}
	entry := &model.SyncLog{
		ID:        uuid.NewString(),
		FileID:    fileID,
		Action:    action,
		Status:    status,
		Message:   msg,
		CreatedAt: s.now(),
	}
	if err := s.syncLogs.Create(ctx, entry); err != nil {
		s.log.Warn("sync_log_failed",
			zap.String("action", action),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}

// List returns paginated files without exposing repository types.
func (s *fileService) List(ctx context.Context, filter repository.FileFilter, limit, offset int) (*FileListResult, error) {
	pq := normalizePage(limit, offset)
	res, err := s.files.List(ctx, filter, pq)
	if err != nil {
		return nil, err
	}
	return &FileListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a file by ID.
func (s *fileService) Get(ctx context.Context, id string) (*model.File, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes a file's objects from storage, then deletes its record.
func (s *fileService) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Storage goes first; if it fails the row stays so the objects remain findable.
	if err := s.store.DeletePrefix(ctx, storage.FilePrefix(f.ID)); err != nil {
		err = fmt.Errorf("delete storage: %w", err)
		s.recordSync(ctx, &f.ID, model.SyncActionDelete, model.SyncStatusFailed, err.Error())
		return err
	}
	if err := s.files.Delete(ctx, f.ID); err != nil {
		s.recordSync(ctx, &f.ID, model.SyncActionDelete, model.SyncStatusFailed, err.Error())
		return err
	}
	s.recordSync(ctx, &f.ID, model.SyncActionDelete, model.SyncStatusSuccess,
		fmt.Sprintf("removed %d document(s)", len(f.Documents)))
	return nil
}

func (s *fileService) DocumentURL(ctx context.Context, fileID, docID string) (string, error) {
	doc, err := s.findDocument(ctx, fileID, docID)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
}

func (s *fileService) OpenDocument(ctx context.Context, fileID, docID string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.findDocument(ctx, fileID, docID)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return rc, doc, nil
}

func (s *fileService) findDocument(ctx context.Context, fileID, docID string) (*model.Document, error) {
	if docID == "" {
		return nil, ErrIDRequired
	}
	f, err := s.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	for i := range f.Documents {
		if f.Documents[i].ID == docID {
			return &f.Documents[i], nil
		}
	}
	return nil, ErrNotFound
}

// validateUpload checks presence, enum membership and per-category file types.
// It never touches storage or the database.
func validateUpload(req UploadRequest) error {
	switch {
	case req.Title == "":
		return ErrTitleRequired
	case req.FiscalYear == "":
		return ErrFiscalYearRequired
	case req.Source == "":
		return ErrSourceRequired
	case req.GrantType == "":
		return ErrGrantTypeRequired
	}
	if !catalog.IsSource(req.Source) {
		return ErrInvalidSource
	}
	if !catalog.IsGrantType(req.GrantType) {
		return ErrInvalidGrantType
	}
	for _, a := range req.Attachments {
		if !a.Category.Valid() {
			return ErrUnknownCategory
		}
		if !a.Category.Accepts(a.Filename) {
			return fileTypeError(a.Category.Field(), a.Filename)
		}
	}
	return nil
}

func lookupErr(err error, invalid *ValidationError, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return invalid
	}
	return fmt.Errorf("lookup %s: %w", what, err)
}

func normalizePage(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
