package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/fields"
	"github.com/mamadbah2/dairy/internal/repository"
)

// Repository defines the read-only access to mirrored farm sheets.
type Repository interface {
	FetchRows(ctx context.Context, collection string) ([]models.RawRecord, error)
	Close(ctx context.Context) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

var _ repository.RowSource = (*MongoDBRepository)(nil)

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// FetchRows reads every document of the collection, in natural order, as a row.
func (r *MongoDBRepository) FetchRows(ctx context.Context, collection string) ([]models.RawRecord, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection must not be empty")
	}

	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cursor, err := r.client.Database(r.dbName).Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var records []models.RawRecord
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		records = append(records, documentToRecord(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}

	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func documentToRecord(doc bson.M) models.RawRecord {
	rec := make(models.RawRecord, len(doc))
	for key, value := range doc {
		if value == nil {
			continue
		}
		rec[fields.CleanHeader(key)] = stringify(value)
	}
	return rec
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case primitive.DateTime:
		return fields.FormatDate(v.Time())
	case time.Time:
		return fields.FormatDate(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case primitive.Decimal128:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
