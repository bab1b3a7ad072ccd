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

	promoserrors "booklt/internal/promos/errors"
	"booklt/pkg/config"
	mongodb "booklt/pkg/db/mongo"
	"booklt/pkg/model"
)

const CollectionName = "Promo_codes"

type PromoRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) error
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)
	FindAll(ctx context.Context) ([]*model.PromoCode, error)
	// Redeem performs the conditional atomic increment of used_count. It
	// succeeds only while the code is active, unexpired, and under its usage
	// limit; otherwise it returns ErrNotApplicable.
	Redeem(ctx context.Context, code string, now time.Time) (*model.PromoCode, error)
	// DeactivateExpired flips is_active off for codes whose expiry has
	// passed, returning how many documents changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type mongoPromoRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPromoRepository(cfg *config.Config) PromoRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPromoRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPromoRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	promo.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, promo)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return promoserrors.ErrCodeTaken
		}
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		promo.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPromoRepository) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var promo model.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, promoserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}

	return &promo, nil
}

func (r *mongoPromoRepository) FindAll(ctx context.Context) ([]*model.PromoCode, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find promo codes: %w", err)
	}
	defer cursor.Close(ctx)

	var promos []*model.PromoCode
	if err = cursor.All(ctx, &promos); err != nil {
		return nil, fmt.Errorf("failed to decode promo codes: %w", err)
	}

	return promos, nil
}

func (r *mongoPromoRepository) Redeem(ctx context.Context, code string, now time.Time) (*model.PromoCode, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	// All usability conditions live in the filter so two concurrent
	// redemptions can never push used_count past usage_limit.
	filter := bson.M{
		"code":        code,
		"is_active":   true,
		"expiry_date": bson.M{"$gt": now},
		"$expr":       bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}},
	}
	update := bson.M{"$inc": bson.M{"used_count": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var promo model.PromoCode
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&promo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, promoserrors.ErrNotApplicable
		}
		return nil, fmt.Errorf("failed to redeem promo code: %w", err)
	}

	return &promo, nil
}

func (r *mongoPromoRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"is_active":   true,
		"expiry_date": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"is_active": false}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired promo codes: %w", err)
	}

	return result.ModifiedCount, nil
}
