package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kart-io/graphlens/internal/graphlens/metrics"
	"github.com/kart-io/graphlens/internal/graphlens/store"
	"github.com/kart-io/graphlens/internal/model"
	"github.com/kart-io/graphlens/pkg/archive"
	"github.com/kart-io/graphlens/pkg/errors"
	"github.com/kart-io/graphlens/pkg/id"
	"github.com/kart-io/graphlens/pkg/knowledge"
)

// supportedExtensions are the plain-text formats accepted for ingestion.
var supportedExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
}

// UploadRequest describes a document ingestion request.
type UploadRequest struct {
	TenantID    string
	UserID      string
	FileName    string
	ContentType string
	Content     []byte
}

// UploadResult is the outcome of an ingestion.
type UploadResult struct {
	Record *model.IngestionRecord
	// Deduplicated is true when the fingerprint matched an existing
	// indexed document and nothing was re-indexed.
	Deduplicated bool
}

// DocumentService handles document ingestion and management.
type DocumentService struct {
	registry  store.Registry
	archive   *archive.Store
	knowledge knowledge.Store
	idgen     *id.Generator
	metrics   *metrics.Metrics
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(registry store.Registry, arch *archive.Store, ks knowledge.Store) *DocumentService {
	return &DocumentService{
		registry:  registry,
		archive:   arch,
		knowledge: ks,
		idgen:     id.NewGenerator(),
		metrics:   metrics.Get(),
	}
}

// Fingerprint derives the content address of an upload. User and tenant are
// part of the address, so identical bytes uploaded by another user or into
// another tenant index again.
func Fingerprint(userID, tenantID string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(tenantID))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// Upload ingests a document: fingerprint, dedup, archive, index, register.
func (s *DocumentService) Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	if err := validateUpload(req); err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(req.UserID, req.TenantID, req.Content)

	// 指纹命中：内容已在该租户索引过，直接返回既有记录。
	if existing, err := s.registry.LookupFingerprint(ctx, req.TenantID, fingerprint); err == nil {
		logger.Infow("upload deduplicated",
			"tenant", req.TenantID,
			"user", req.UserID,
			"file", req.FileName,
			"storage_path", existing.StoragePath,
		)
		s.metrics.RecordIngestDedup()
		return &UploadResult{Record: existing, Deduplicated: true}, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.ErrRegistryUnavailable.WithCause(err)
	}

	storagePath, err := s.archive.Save(req.UserID, req.TenantID, req.FileName, req.Content)
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err)
	}

	rec := &model.IngestionRecord{
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		StoragePath: storagePath,
		FileName:    path.Base(req.FileName),
		Size:        int64(len(req.Content)),
		Fingerprint: fingerprint,
	}

	docID := s.idgen.Generate()
	chunks, err := s.knowledge.Index(ctx, req.TenantID, docID, string(req.Content))
	if err != nil {
		// 索引失败也要留痕，方便排查与重试。
		rec.Status = model.StatusFailed
		if putErr := s.registry.Put(ctx, rec); putErr != nil {
			logger.Errorw("failed to record failed ingestion",
				"tenant", req.TenantID,
				"storage_path", storagePath,
				"error", putErr.Error(),
			)
		}
		s.metrics.RecordIngestFailed()
		return nil, errors.ErrIndexingFailed.WithCause(err)
	}

	rec.ChunkCount = chunks
	rec.Status = model.StatusIndexed
	if err := s.registry.Put(ctx, rec); err != nil {
		return nil, errors.ErrRegistryUnavailable.WithCause(err)
	}

	logger.Infow("document ingested",
		"tenant", req.TenantID,
		"user", req.UserID,
		"file", rec.FileName,
		"chunks", chunks,
		"storage_path", storagePath,
	)
	s.metrics.RecordIngestIndexed(chunks)

	return &UploadResult{Record: rec}, nil
}

// List returns all documents owned by a user, newest first.
func (s *DocumentService) List(ctx context.Context, userID string) ([]*model.IngestionRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.ErrInvalidParam.WithMessage("user_id is required")
	}
	recs, err := s.registry.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.ErrRegistryUnavailable.WithCause(err)
	}
	return recs, nil
}

// Delete removes a single document from the registry and the archive. The
// indexed knowledge stays; only a tenant reset removes it. An empty tenantID
// is resolved from the user's own records.
func (s *DocumentService) Delete(ctx context.Context, tenantID, userID, storagePath string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(storagePath) == "" {
		return errors.ErrInvalidParam.WithMessage("user_id and storage_path are required")
	}

	if tenantID == "" {
		resolved, err := s.resolveTenant(ctx, userID, storagePath)
		if err != nil {
			return err
		}
		tenantID = resolved
	}

	if _, err := s.registry.Get(ctx, tenantID, userID, storagePath); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.ErrDocumentNotFound
		}
		return errors.ErrRegistryUnavailable.WithCause(err)
	}

	if err := s.registry.Delete(ctx, tenantID, userID, storagePath); err != nil {
		return errors.ErrRegistryUnavailable.WithCause(err)
	}
	if err := s.archive.Delete(storagePath); err != nil {
		logger.Warnw("failed to delete archived content",
			"storage_path", storagePath,
			"error", err.Error(),
		)
	}
	return nil
}

// resolveTenant finds which tenant a user's storage path belongs to.
func (s *DocumentService) resolveTenant(ctx context.Context, userID, storagePath string) (string, error) {
	recs, err := s.registry.ListByUser(ctx, userID)
	if err != nil {
		return "", errors.ErrRegistryUnavailable.WithCause(err)
	}
	for _, rec := range recs {
		if rec.StoragePath == storagePath {
			return rec.TenantID, nil
		}
	}
	return "", errors.ErrDocumentNotFound
}

func validateUpload(req *UploadRequest) error {
	if strings.TrimSpace(req.TenantID) == "" {
		return errors.ErrEmptyTenant
	}
	if strings.TrimSpace(req.UserID) == "" {
		return errors.ErrInvalidParam.WithMessage("user_id is required")
	}
	if strings.TrimSpace(req.FileName) == "" {
		return errors.ErrInvalidParam.WithMessage("fileName is required")
	}
	if len(req.Content) == 0 {
		return errors.ErrInvalidParam.WithMessage("fileContent is empty")
	}

	ext := strings.ToLower(path.Ext(req.FileName))
	if _, ok := supportedExtensions[ext]; !ok {
		return errors.ErrUnsupportedFormat.WithMessagef("unsupported file format %q, only .txt and .md are accepted", ext)
	}
	return nil
}
