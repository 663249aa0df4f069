package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

const profileCollection = "user_profiles"

type MongoProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(profileCollection)}
}

type mongoProfile struct {
	UserID    string   `bson:"user_id"`
	FullName  *string  `bson:"full_name,omitempty"`
	Age       *int     `bson:"age,omitempty"`
	Gender    *string  `bson:"gender,omitempty"`
	Languages []string `bson:"languages,omitempty"`
	Interests []string `bson:"interests,omitempty"`
	UpdatedAt int64    `bson:"updated_at"`
}

// CreateEmpty inserts a blank profile row for a freshly registered user.
// Idempotent: a profile that already exists is left alone.
func (r *MongoProfileRepository) CreateEmpty(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": mongoProfile{UserID: userID, UpdatedAt: time.Now().UTC().Unix()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var mp mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return mp.toDomain(), nil
}

// Update applies only the fields the update carries, plus the timestamp.
func (r *MongoProfileRepository) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Languages != nil {
		set["languages"] = update.Languages
	}
	if update.Interests != nil {
		set["interests"] = update.Interests
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var mp mongoProfile
	if err := res.Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return mp.toDomain(), nil
}

func (mp *mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		UserID:    mp.UserID,
		FullName:  mp.FullName,
		Age:       mp.Age,
		Gender:    mp.Gender,
		Languages: mp.Languages,
		Interests: mp.Interests,
		UpdatedAt: unixToTime(mp.UpdatedAt),
	}
}
