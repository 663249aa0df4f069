package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

const assessmentCollection = "assessments"

type MongoAssessmentRepository struct {
	coll *mongo.Collection
}

func NewAssessmentRepository(db *mongo.Database) *MongoAssessmentRepository {
	return &MongoAssessmentRepository{coll: db.Collection(assessmentCollection)}
}

type mongoAssessment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Type       string             `bson:"type"`
	Responses  []domain.Response  `bson:"responses"`
	TotalScore int                `bson:"total_score"`
	RiskLevel  string             `bson:"risk_level"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *MongoAssessmentRepository) Insert(ctx context.Context, a *domain.Assessment) error {
	doc := mongoAssessment{
		UserID:     a.UserID,
		Type:       string(a.Type),
		Responses:  a.Responses,
		TotalScore: a.TotalScore,
		RiskLevel:  a.RiskLevel,
		CreatedAt:  a.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// ListByUser returns the user's submissions, newest first.
func (r *MongoAssessmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Assessment, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Assessment
	for cur.Next(ctx) {
		var ma mongoAssessment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assessment: %w", err)
		}
		out = append(out, domain.Assessment{
			ID:         ma.ID.Hex(),
			UserID:     ma.UserID,
			Type:       domain.AssessmentType(ma.Type),
			Responses:  ma.Responses,
			TotalScore: ma.TotalScore,
			RiskLevel:  ma.RiskLevel,
			CreatedAt:  unixToTime(ma.CreatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return out, nil
}
