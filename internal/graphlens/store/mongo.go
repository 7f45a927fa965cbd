package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kart-io/graphlens/internal/model"
	registryopts "github.com/kart-io/graphlens/pkg/options/registry"
)

// mongoRegistry is the mongodb-backed registry implementation.
type mongoRegistry struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Registry = (*mongoRegistry)(nil)

// NewMongoRegistry connects to mongodb and ensures the registry indexes.
func NewMongoRegistry(ctx context.Context, opts *registryopts.Options) (Registry, error) {
	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(opts.MongoDatabase).Collection(opts.MongoCollection)

	_, err = coll.Indexes().CreateMany(connectCtx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "userId", Value: 1},
				{Key: "storagePath", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "fingerprint", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create registry indexes: %w", err)
	}

	return &mongoRegistry{client: client, coll: coll}, nil
}

func keyFilter(tenantID, userID, storagePath string) bson.M {
	return bson.M{
		"tenantId":    tenantID,
		"userId":      userID,
		"storagePath": storagePath,
	}
}

// Put implements Registry.
func (r *mongoRegistry) Put(ctx context.Context, rec *model.IngestionRecord) error {
	if rec.UploadedAt.IsZero() {
		_ = rec.BeforeSave(nil)
	}
	_, err := r.coll.ReplaceOne(ctx,
		keyFilter(rec.TenantID, rec.UserID, rec.StoragePath),
		rec,
		options.Replace().SetUpsert(true),
	)
	return err
}

// LookupFingerprint implements Registry.
func (r *mongoRegistry) LookupFingerprint(ctx context.Context, tenantID, fingerprint string) (*model.IngestionRecord, error) {
	var rec model.IngestionRecord
	err := r.coll.FindOne(ctx,
		bson.M{
			"tenantId":    tenantID,
			"fingerprint": fingerprint,
			"status":      model.StatusIndexed,
		},
		options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}}),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get implements Registry.
func (r *mongoRegistry) Get(ctx context.Context, tenantID, userID, storagePath string) (*model.IngestionRecord, error) {
	var rec model.IngestionRecord
	err := r.coll.FindOne(ctx, keyFilter(tenantID, userID, storagePath)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByUser implements Registry.
func (r *mongoRegistry) ListByUser(ctx context.Context, userID string) ([]*model.IngestionRecord, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []*model.IngestionRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Delete implements Registry.
func (r *mongoRegistry) Delete(ctx context.Context, tenantID, userID, storagePath string) error {
	_, err := r.coll.DeleteOne(ctx, keyFilter(tenantID, userID, storagePath))
	return err
}

// DeleteAllForTenant implements Registry.
func (r *mongoRegistry) DeleteAllForTenant(ctx context.Context, tenantID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"tenantId": tenantID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByTenant implements Registry.
func (r *mongoRegistry) CountByTenant(ctx context.Context) (map[string]int64, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$tenantId",
			"total": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TenantID string `bson:"_id"`
		Total    int64  `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.TenantID] = row.Total
	}
	return counts, nil
}

// Ping implements Registry.
func (r *mongoRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close implements Registry.
func (r *mongoRegistry) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
