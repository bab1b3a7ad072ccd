package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	experrors "booklt/internal/experiences/errors"
	"booklt/pkg/config"
	mongodb "booklt/pkg/db/mongo"
	"booklt/pkg/model"
)

const CollectionName = "Experiences"

type ExperienceRepository interface {
	Create(ctx context.Context, exp *model.Experience) error
	FindAll(ctx context.Context) ([]*model.Experience, error)
	FindByID(ctx context.Context, id string) (*model.Experience, error)
	FindSummary(ctx context.Context, id string) (*model.ExperienceSummary, error)
}

type mongoExperienceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoExperienceRepository(cfg *config.Config) ExperienceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoExperienceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoExperienceRepository) Create(ctx context.Context, exp *model.Experience) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	exp.CreatedAt = now
	exp.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exp)
	if err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		exp.ID = oid.Hex()
	}
	return nil
}

func (r *mongoExperienceRepository) FindAll(ctx context.Context) ([]*model.Experience, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find experiences: %w", err)
	}
	defer cursor.Close(ctx)

	var exps []*model.Experience
	if err = cursor.All(ctx, &exps); err != nil {
		return nil, fmt.Errorf("failed to decode experiences: %w", err)
	}

	return exps, nil
}

func (r *mongoExperienceRepository) FindByID(ctx context.Context, id string) (*model.Experience, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", experrors.ErrInvalidID, id)
	}

	var exp model.Experience
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&exp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, experrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find experience: %w", err)
	}

	return &exp, nil
}

func (r *mongoExperienceRepository) FindSummary(ctx context.Context, id string) (*model.ExperienceSummary, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", experrors.ErrInvalidID, id)
	}

	opts := options.FindOne().SetProjection(bson.M{"title": 1, "price": 1, "image": 1})

	var summary model.ExperienceSummary
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, experrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find experience summary: %w", err)
	}

	return &summary, nil
}
