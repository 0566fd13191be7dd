package repositories

import (
	"context"
	"time"

	"github.com/anonto42/content-hub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JobFilter narrows job listings. Zero values mean no filter.
type JobFilter struct {
	AuthorID uint
}

// JobRepository defines the interface for job data operations
type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error)
}

// MongoJobRepository implements JobRepository for MongoDB
type MongoJobRepository struct {
	collection *mongo.Collection
}

// NewMongoJobRepository creates a new MongoJobRepository
func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{collection: db.Collection("jobs")}
}

// EnsureIndexes creates the indexes used by ListJobs.
func (r *MongoJobRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// CreateJob creates a new job posting in MongoDB
func (r *MongoJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	job.ID = primitive.NewObjectID()
	job.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, job)
	return err
}

// ListJobs retrieves job postings newest first
func (r *MongoJobRepository) ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	query := bson.M{}
	if filter.AuthorID != 0 {
		query["author_id"] = filter.AuthorID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
