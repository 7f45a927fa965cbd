// Package model provides data models for the GraphLens platform.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Ingestion status values for IngestionRecord.Status.
const (
	// StatusIndexed marks a record whose content was indexed successfully.
	StatusIndexed = "indexed"
	// StatusFailed marks a record whose indexing attempt failed. A re-upload
	// of the same content retries indexing and promotes the record to indexed.
	StatusFailed = "failed"
)

// IngestionRecord represents one ingested document in the content registry.
// The primary identity is (TenantID, UserID, StoragePath); deduplication
// lookups go through the (TenantID, Fingerprint) secondary index.
type IngestionRecord struct {
	TenantID    string    `json:"tenantId" gorm:"primaryKey;type:varchar(64);index:idx_tenant_fingerprint,priority:1" bson:"tenantId"`
	UserID      string    `json:"userId" gorm:"primaryKey;type:varchar(64);index:idx_user" bson:"userId"`
	StoragePath string    `json:"storagePath" gorm:"primaryKey;type:varchar(512)" bson:"storagePath"`
	FileName    string    `json:"fileName" gorm:"type:varchar(255);not null" bson:"fileName"`
	Size        int64     `json:"size" gorm:"default:0" bson:"size"`
	Fingerprint string    `json:"fingerprint" gorm:"type:varchar(64);index:idx_tenant_fingerprint,priority:2" bson:"fingerprint"`
	ChunkCount  int       `json:"chunksCreated" gorm:"default:0" bson:"chunksCreated"`
	Status      string    `json:"status" gorm:"type:varchar(32);default:'indexed'" bson:"status"`
	UploadedAt  time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// TableName specifies the table name for IngestionRecord.
func (IngestionRecord) TableName() string {
	return "ingestion_records"
}

// BeforeSave stamps UploadedAt when the caller did not.
func (r *IngestionRecord) BeforeSave(_ *gorm.DB) error {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now().UTC()
	}
	return nil
}

// Indexed reports whether the record represents a successful ingestion.
func (r *IngestionRecord) Indexed() bool {
	return r.Status == StatusIndexed
}
