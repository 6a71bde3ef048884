// Package events handles event emission for duplicate-resolution lifecycle changes
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/sorrel/pkg/kafka"
	"github.com/Ramsey-B/sorrel/pkg/models"
	"github.com/Ramsey-B/sorrel/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter handles event emission for Sorrel
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitDuplicateDetected emits an event when a create action is blocked on
// similar entities. Emission failures are logged and swallowed so that a
// broker outage never blocks the action flow.
func (e *Emitter) EmitDuplicateDetected(ctx context.Context, tenantID, conversationID string, kind models.EntityKind, matches []models.SimilarEntity) {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitDuplicateDetected")
	defer span.End()

	data, _ := json.Marshal(map[string]any{
		"schema_version":   SchemaVersion,
		"similar_entities": matches,
	})

	event := &kafka.ResolutionEvent{
		EventType:      "duplicate.detected",
		TenantID:       tenantID,
		ConversationID: conversationID,
		EntityType:     string(kind),
		Data:           data,
	}

	if err := e.producer.PublishResolutionEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit duplicate.detected event")
	}
}

// EmitDuplicateResolved emits an event when a pending confirmation is
// resolved by a user choice. Emission failures are logged and swallowed.
func (e *Emitter) EmitDuplicateResolved(ctx context.Context, tenantID, conversationID string, kind models.EntityKind, choice models.ConfirmationChoice, entityID string) {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitDuplicateResolved")
	defer span.End()

	data, _ := json.Marshal(map[string]any{
		"schema_version": SchemaVersion,
		"choice":         string(choice),
	})

	event := &kafka.ResolutionEvent{
		EventType:      "duplicate.resolved",
		TenantID:       tenantID,
		ConversationID: conversationID,
		EntityType:     string(kind),
		EntityID:       entityID,
		Data:           data,
	}

	if err := e.producer.PublishResolutionEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit duplicate.resolved event")
	}
}
