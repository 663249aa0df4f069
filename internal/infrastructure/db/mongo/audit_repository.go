package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

const auditCollection = "auth_audit"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID      string `bson:"_id"`
	Actor   string `bson:"actor"`
	Action  string `bson:"action"`
	Outcome string `bson:"outcome"`
	Reason  string `bson:"reason,omitempty"`
	At      int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		ID:      event.ID,
		Actor:   event.Actor,
		Action:  event.Action,
		Outcome: event.Outcome,
		Reason:  event.Reason,
		At:      event.At.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
