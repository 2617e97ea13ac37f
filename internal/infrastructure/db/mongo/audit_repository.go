package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/examboard/portal-api/internal/core/domain"
)

const auditCollection = "audit_events"

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SubjectID string             `bson:"subject_id,omitempty"`
	Email     string             `bson:"email"`
	Action    string             `bson:"action"`
	Detail    string             `bson:"detail,omitempty"`
	Timestamp int64              `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEvent) error {
	doc := mongoAuditEvent{
		SubjectID: e.SubjectID,
		Email:     e.Email,
		Action:    e.Action,
		Detail:    e.Detail,
		Timestamp: e.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListBySubject(ctx context.Context, subjectID string, limit int64) ([]domain.AuditEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AuditEvent
	for cur.Next(ctx) {
		var me mongoAuditEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		out = append(out, domain.AuditEvent{
			ID:        me.ID.Hex(),
			SubjectID: me.SubjectID,
			Email:     me.Email,
			Action:    me.Action,
			Detail:    me.Detail,
			Timestamp: unixToTime(me.Timestamp),
		})
	}
	return out, cur.Err()
}
