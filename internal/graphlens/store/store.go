package store

import (
	"context"
	"errors"
	"fmt"

	registryopts "github.com/kart-io/graphlens/pkg/options/registry"

	"github.com/kart-io/graphlens/internal/model"
)

// ErrNotFound is returned when a registry record does not exist.
var ErrNotFound = errors.New("registry record not found")

// Registry 定义内容登记表接口。
type Registry interface {
	// Put inserts the record, or replaces it when the (tenant, user,
	// storage path) key already exists.
	Put(ctx context.Context, rec *model.IngestionRecord) error

	// LookupFingerprint returns the indexed record matching the
	// fingerprint within a tenant, or ErrNotFound.
	LookupFingerprint(ctx context.Context, tenantID, fingerprint string) (*model.IngestionRecord, error)

	// Get returns the record for the exact key, or ErrNotFound.
	Get(ctx context.Context, tenantID, userID, storagePath string) (*model.IngestionRecord, error)

	// ListByUser returns all records owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*model.IngestionRecord, error)

	// Delete removes a single record. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context, tenantID, userID, storagePath string) error

	// DeleteAllForTenant removes every record of a tenant and returns
	// how many were removed.
	DeleteAllForTenant(ctx context.Context, tenantID string) (int64, error)

	// CountByTenant returns the number of records per tenant.
	CountByTenant(ctx context.Context) (map[string]int64, error)

	// Ping checks backend health.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// New creates the registry backend selected by the options.
func New(ctx context.Context, opts *registryopts.Options) (Registry, error) {
	switch opts.Driver {
	case registryopts.DriverSQLite:
		return NewSQLiteRegistry(opts.DSN)
	case registryopts.DriverMongo:
		return NewMongoRegistry(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown registry driver: %q", opts.Driver)
	}
}
