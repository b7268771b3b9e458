package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends account-activity events. The collection is
// write-mostly; reads happen through operational tooling, not the API.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Username   string `bson:"username"`
	Action     string `bson:"action"`
	ActorID    int64  `bson:"actor_id,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		Username:   event.Username,
		Action:     string(event.Action),
		ActorID:    event.ActorID,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
