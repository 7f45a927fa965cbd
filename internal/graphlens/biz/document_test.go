package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/graphlens/internal/graphlens/store"
	"github.com/kart-io/graphlens/internal/model"
	"github.com/kart-io/graphlens/pkg/archive"
	"github.com/kart-io/graphlens/pkg/errors"
	archiveopts "github.com/kart-io/graphlens/pkg/options/archive"
)

func newDocumentService(t *testing.T, ks *fakeKnowledge) (*DocumentService, store.Registry) {
	t.Helper()

	registry, err := store.NewSQLiteRegistry(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Close(context.Background()) })

	archOpts := archiveopts.NewOptions()
	archOpts.Root = t.TempDir()

	return NewDocumentService(registry, archive.New(archOpts), ks), registry
}

func uploadReq(content string) *UploadRequest {
	return &UploadRequest{
		TenantID:    "tenant-a",
		UserID:      "user-1",
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Content:     []byte(content),
	}
}

func TestUploadIndexesNewDocument(t *testing.T) {
	ks := &fakeKnowledge{
		indexFn: func(_, _, _ string) (int, error) { return 4, nil },
	}
	svc, _ := newDocumentService(t, ks)

	res, err := svc.Upload(context.Background(), uploadReq("some content"))
	require.NoError(t, err)

	assert.False(t, res.Deduplicated)
	assert.Equal(t, 4, res.Record.ChunkCount)
	assert.Equal(t, model.StatusIndexed, res.Record.Status)
	assert.Equal(t, int64(len("some content")), res.Record.Size)
	assert.Contains(t, res.Record.StoragePath, "private/user-1/tenant-a/documents/")
	assert.Len(t, ks.indexed(), 1)
}

func TestUploadDeduplicates(t *testing.T) {
	ks := &fakeKnowledge{}
	svc, _ := newDocumentService(t, ks)
	ctx := context.Background()

	first, err := svc.Upload(ctx, uploadReq("same content"))
	require.NoError(t, err)

	second, err := svc.Upload(ctx, uploadReq("same content"))
	require.NoError(t, err)

	assert.True(t, second.Deduplicated)
	assert.Equal(t, first.Record.StoragePath, second.Record.StoragePath)
	// The toolkit was only called once.
	assert.Len(t, ks.indexed(), 1)
}

func TestUploadSameContentDifferentTenantIndexesAgain(t *testing.T) {
	ks := &fakeKnowledge{}
	svc, _ := newDocumentService(t, ks)
	ctx := context.Background()

	_, err := svc.Upload(ctx, uploadReq("shared content"))
	require.NoError(t, err)

	other := uploadReq("shared content")
	other.TenantID = "tenant-b"
	res, err := svc.Upload(ctx, other)
	require.NoError(t, err)

	assert.False(t, res.Deduplicated)
	assert.Len(t, ks.indexed(), 2)
}

func TestUploadSameContentDifferentUserIndexesAgain(t *testing.T) {
	ks := &fakeKnowledge{}
	svc, _ := newDocumentService(t, ks)
	ctx := context.Background()

	_, err := svc.Upload(ctx, uploadReq("shared content"))
	require.NoError(t, err)

	other := uploadReq("shared content")
	other.UserID = "user-2"
	res, err := svc.Upload(ctx, other)
	require.NoError(t, err)

	assert.False(t, res.Deduplicated)
	assert.Len(t, ks.indexed(), 2)
}

func TestUploadIndexingFailureRecordsFailed(t *testing.T) {
	ks := &fakeKnowledge{
		indexFn: func(_, _, _ string) (int, error) { return 0, fmt.Errorf("toolkit down") },
	}
	svc, registry := newDocumentService(t, ks)
	ctx := context.Background()

	_, err := svc.Upload(ctx, uploadReq("doomed content"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIndexingFailed.Code))

	// The failed attempt is registered and must not satisfy dedup.
	recs, listErr := registry.ListByUser(ctx, "user-1")
	require.NoError(t, listErr)
	require.Len(t, recs, 1)
	assert.Equal(t, model.StatusFailed, recs[0].Status)

	ks.indexFn = func(_, _, _ string) (int, error) { return 2, nil }
	res, err := svc.Upload(ctx, uploadReq("doomed content"))
	require.NoError(t, err)
	assert.False(t, res.Deduplicated)
	assert.Equal(t, model.StatusIndexed, res.Record.Status)
}

func TestUploadValidation(t *testing.T) {
	svc, _ := newDocumentService(t, &fakeKnowledge{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*UploadRequest)
		code   int
	}{
		{"missing tenant", func(r *UploadRequest) { r.TenantID = " " }, errors.ErrEmptyTenant.Code},
		{"missing user", func(r *UploadRequest) { r.UserID = "" }, errors.ErrInvalidParam.Code},
		{"missing file name", func(r *UploadRequest) { r.FileName = "" }, errors.ErrInvalidParam.Code},
		{"empty content", func(r *UploadRequest) { r.Content = nil }, errors.ErrInvalidParam.Code},
		{"unsupported format", func(r *UploadRequest) { r.FileName = "slides.pdf" }, errors.ErrUnsupportedFormat.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadReq("content")
			tt.mutate(req)
			_, err := svc.Upload(ctx, req)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code))
		})
	}
}

func TestListAndDelete(t *testing.T) {
	svc, _ := newDocumentService(t, &fakeKnowledge{})
	ctx := context.Background()

	res, err := svc.Upload(ctx, uploadReq("list me"))
	require.NoError(t, err)

	recs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.NoError(t, svc.Delete(ctx, "tenant-a", "user-1", res.Record.StoragePath))

	recs, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDeleteResolvesTenant(t *testing.T) {
	svc, _ := newDocumentService(t, &fakeKnowledge{})
	ctx := context.Background()

	res, err := svc.Upload(ctx, uploadReq("resolve me"))
	require.NoError(t, err)

	// No tenant supplied: resolved from the user's records.
	require.NoError(t, svc.Delete(ctx, "", "user-1", res.Record.StoragePath))

	recs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDeleteMissingDocument(t *testing.T) {
	svc, _ := newDocumentService(t, &fakeKnowledge{})

	err := svc.Delete(context.Background(), "tenant-a", "user-1", "private/user-1/tenant-a/documents/1_gone.txt")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDocumentNotFound.Code))
}
