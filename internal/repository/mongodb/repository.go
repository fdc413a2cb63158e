package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/ecolog/internal/domain/models"
)

// Repository defines the interface for weekly report storage.
type Repository interface {
	SaveWeeklyReport(ctx context.Context, report models.WeeklyReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "weekly_reports",
	}, nil
}

// SaveWeeklyReport upserts the report keyed by its window, so a re-run for the
// same week replaces the earlier document.
func (r *MongoDBRepository) SaveWeeklyReport(ctx context.Context, report models.WeeklyReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	filter := bson.M{"start": report.Start, "end": report.End}
	_, err := collection.ReplaceOne(ctx, filter, report, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert weekly report: %w", err)
	}
	return nil
}

// Name identifies the repository as a report sink.
func (r *MongoDBRepository) Name() string { return "mongodb" }

// PublishWeeklyReport implements reporting.Sink.
func (r *MongoDBRepository) PublishWeeklyReport(ctx context.Context, report models.WeeklyReport) error {
	return r.SaveWeeklyReport(ctx, report)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
