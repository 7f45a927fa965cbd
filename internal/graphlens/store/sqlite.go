package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/kart-io/graphlens/internal/model"
)

// sqliteRegistry is the gorm-backed registry implementation.
type sqliteRegistry struct {
	db *gorm.DB
}

var _ Registry = (*sqliteRegistry)(nil)

// NewSQLiteRegistry opens (and migrates) a sqlite-backed registry.
// DSN ":memory:" 用于测试，保持登记表在进程内。
func NewSQLiteRegistry(dsn string) (Registry, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite registry: %w", err)
	}

	if err := db.AutoMigrate(&model.IngestionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate registry schema: %w", err)
	}

	return &sqliteRegistry{db: db}, nil
}

// Put implements Registry.
func (r *sqliteRegistry) Put(ctx context.Context, rec *model.IngestionRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "tenant_id"}, {Name: "user_id"}, {Name: "storage_path"},
			},
			UpdateAll: true,
		}).
		Create(rec).Error
}

// LookupFingerprint implements Registry.
func (r *sqliteRegistry) LookupFingerprint(ctx context.Context, tenantID, fingerprint string) (*model.IngestionRecord, error) {
	var rec model.IngestionRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND fingerprint = ? AND status = ?", tenantID, fingerprint, model.StatusIndexed).
		Order("uploaded_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get implements Registry.
func (r *sqliteRegistry) Get(ctx context.Context, tenantID, userID, storagePath string) (*model.IngestionRecord, error) {
	var rec model.IngestionRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND storage_path = ?", tenantID, userID, storagePath).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByUser implements Registry.
func (r *sqliteRegistry) ListByUser(ctx context.Context, userID string) ([]*model.IngestionRecord, error) {
	var recs []*model.IngestionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Delete implements Registry.
func (r *sqliteRegistry) Delete(ctx context.Context, tenantID, userID, storagePath string) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND storage_path = ?", tenantID, userID, storagePath).
		Delete(&model.IngestionRecord{}).Error
}

// DeleteAllForTenant implements Registry.
func (r *sqliteRegistry) DeleteAllForTenant(ctx context.Context, tenantID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&model.IngestionRecord{})
	return res.RowsAffected, res.Error
}

// CountByTenant implements Registry.
func (r *sqliteRegistry) CountByTenant(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TenantID string
		Total    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.IngestionRecord{}).
		Select("tenant_id, COUNT(*) AS total").
		Group("tenant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.TenantID] = r.Total
	}
	return counts, nil
}

// Ping implements Registry.
func (r *sqliteRegistry) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close implements Registry.
func (r *sqliteRegistry) Close(_ context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
