package repository

import (
	"context"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPayloadArchiveRepository implements PayloadArchiveRepository, storing
// raw inbound webhook payloads for replay and debugging
type MongoPayloadArchiveRepository struct {
	collection *mongo.Collection
}

// NewMongoPayloadArchiveRepository creates a new payload archive repository
func NewMongoPayloadArchiveRepository(db *mongo.Database) repository.PayloadArchiveRepository {
	collection := db.Collection("inbound_payloads")

	// Index on correlation id for cross-system tracing lookups
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"correlationId": 1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoPayloadArchiveRepository{
		collection: collection,
	}
}

// Archive stores one raw inbound payload
func (r *MongoPayloadArchiveRepository) Archive(ctx context.Context, payload *entity.InboundPayload) error {
	if payload.ID == "" {
		payload.ID = primitive.NewObjectID().Hex()
	}
	if payload.ReceivedAt.IsZero() {
		payload.ReceivedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, payload)
	return err
}
