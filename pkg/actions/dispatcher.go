// Package actions routes create actions through duplicate detection and
// replays them once the user has confirmed a choice.
package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/sorrel/pkg/confirmation"
	"github.com/Ramsey-B/sorrel/pkg/matching"
	"github.com/Ramsey-B/sorrel/pkg/models"
	"github.com/Ramsey-B/sorrel/pkg/tracing"
)

// EventEmitter publishes duplicate-resolution lifecycle notifications
type EventEmitter interface {
	EmitDuplicateDetected(ctx context.Context, tenantID, conversationID string, kind models.EntityKind, matches []models.SimilarEntity)
	EmitDuplicateResolved(ctx context.Context, tenantID, conversationID string, kind models.EntityKind, choice models.ConfirmationChoice, entityID string)
}

// HandlerFunc executes the real create once duplicate detection has cleared
// or been bypassed. It returns the created entity's result.
type HandlerFunc func(ctx context.Context, tenantID string, req models.CreateActionRequest) (models.ActionResult, error)

// Dispatcher sits between the conversational action pipeline and the
// resolution engine. Create actions pass through FindSimilar before their
// handler runs; blocked actions park a pending confirmation and replay when
// the user answers.
type Dispatcher struct {
	log      ectologger.Logger
	resolver *matching.Resolver
	machine  *confirmation.Machine
	emitter  EventEmitter
	handlers map[string]HandlerFunc
}

func NewDispatcher(
	log ectologger.Logger,
	resolver *matching.Resolver,
	machine *confirmation.Machine,
	emitter EventEmitter,
) *Dispatcher {
	return &Dispatcher{
		log:      log,
		resolver: resolver,
		machine:  machine,
		emitter:  emitter,
		handlers: map[string]HandlerFunc{},
	}
}

// Register binds an action name to its create handler
func (d *Dispatcher) Register(action string, fn HandlerFunc) {
	d.handlers[action] = fn
}

// ResolveCreate runs duplicate detection for a create action. The scan is
// skipped when the params carry the force-create flag or already link to an
// existing entity; otherwise a hit blocks the action and parks a pending
// confirmation for the conversation.
func (d *Dispatcher) ResolveCreate(ctx context.Context, tenantID, conversationID string, req models.CreateActionRequest) (models.ActionResult, error) {
	ctx, span := tracing.StartSpan(ctx, "actions.Dispatcher.ResolveCreate")
	defer span.End()

	kind := req.EntityType
	if !kind.Valid() {
		return models.ActionResult{}, fmt.Errorf("resolve create %q: %w %q", req.Action, models.ErrUnknownEntityKind, kind)
	}

	if isTruthy(req.Params[models.ForceCreateParam(kind)]) {
		return d.execute(ctx, tenantID, req)
	}

	if existingID := stringParam(req.Params[models.ExistingIDParam(kind)]); existingID != "" {
		d.log.WithContext(ctx).WithFields(map[string]any{
			"action":    req.Action,
			"entity_id": existingID,
		}).Debug("create action linked to existing entity")
		return models.ActionResult{
			Success:  true,
			EntityID: existingID,
			Linked:   true,
		}, nil
	}

	matches, err := d.resolver.FindSimilar(ctx, tenantID, matching.Query{
		Kind:      kind,
		Fields:    req.Fields,
		ExcludeID: req.ExcludeID,
		MinScore:  req.MinScore,
	})
	if err != nil {
		return models.ActionResult{}, fmt.Errorf("resolve create %q: %w", req.Action, err)
	}

	if len(matches) == 0 {
		return d.execute(ctx, tenantID, req)
	}

	limit := d.resolver.MaxSuggestions()
	similar := matching.SimilarEntities(matches, limit)
	pending := models.NewPendingConfirmation(req.Action, paramsForReplay(req), kind, matches[0].Entity.ID)

	if err := d.machine.Begin(ctx, conversationID, pending); err != nil {
		return models.ActionResult{}, fmt.Errorf("resolve create %q: %w", req.Action, err)
	}

	d.emitter.EmitDuplicateDetected(ctx, tenantID, conversationID, kind, similar)

	return models.ActionResult{
		Success:              false,
		Error:                models.ErrorSimilarEntitiesFound,
		Message:              matching.SimilarityMessage(kind, matches, limit),
		RequiresConfirmation: true,
		EntityType:           kind,
		SimilarEntities:      similar,
		PendingConfirmation:  pending,
	}, nil
}

// HandleReply feeds a free-text user message through the conversation's
// pending confirmation. The bool is false when the message is not a
// confirmation reply and should flow through normal conversation handling.
func (d *Dispatcher) HandleReply(ctx context.Context, tenantID, conversationID, message string) (models.ActionResult, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "actions.Dispatcher.HandleReply")
	defer span.End()

	resolution, err := d.machine.HandleMessage(ctx, conversationID, message)
	if err != nil {
		return models.ActionResult{}, false, err
	}
	if !resolution.Classified {
		return models.ActionResult{}, false, nil
	}

	return d.applyResolution(ctx, tenantID, conversationID, resolution)
}

// ResolveChoice applies an explicit confirmation choice, for callers that
// replay the original action with one of the choice patches instead of a
// free-text reply.
func (d *Dispatcher) ResolveChoice(ctx context.Context, tenantID, conversationID string, choice models.ConfirmationChoice) (models.ActionResult, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "actions.Dispatcher.ResolveChoice")
	defer span.End()

	resolution, err := d.machine.Resolve(ctx, conversationID, choice)
	if err != nil {
		return models.ActionResult{}, false, err
	}
	if !resolution.Classified {
		return models.ActionResult{}, false, nil
	}

	return d.applyResolution(ctx, tenantID, conversationID, resolution)
}

func (d *Dispatcher) applyResolution(ctx context.Context, tenantID, conversationID string, resolution confirmation.Resolution) (models.ActionResult, bool, error) {
	pending := resolution.Pending

	if resolution.Choice == models.ChoiceCancel {
		d.emitter.EmitDuplicateResolved(ctx, tenantID, conversationID, pending.EntityType, resolution.Choice, "")
		return models.ActionResult{
			Success:   true,
			Cancelled: true,
			Message:   "D'accord, j'annule la création.",
		}, true, nil
	}

	params := mergeParams(d.coerceParams(ctx, pending.OriginalParams), d.coerceParams(ctx, resolution.Params))
	req := models.CreateActionRequest{
		Action:     pending.Action,
		EntityType: pending.EntityType,
		Fields:     fieldsFromParams(params),
		Params:     params,
	}

	result, err := d.ResolveCreate(ctx, tenantID, conversationID, req)
	if err != nil {
		return models.ActionResult{}, true, err
	}

	d.emitter.EmitDuplicateResolved(ctx, tenantID, conversationID, pending.EntityType, resolution.Choice, result.EntityID)
	return result, true, nil
}

func (d *Dispatcher) execute(ctx context.Context, tenantID string, req models.CreateActionRequest) (models.ActionResult, error) {
	fn, ok := d.handlers[req.Action]
	if !ok {
		return models.ActionResult{}, fmt.Errorf("no handler registered for action %q", req.Action)
	}
	return fn(ctx, tenantID, req)
}

// coerceParams defensively re-parses params that arrive malformed, typically
// serialized as a JSON string instead of an object. Unparseable input
// degrades to an empty patch rather than aborting the action.
func (d *Dispatcher) coerceParams(ctx context.Context, raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	case string:
		var parsed map[string]any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			d.log.WithContext(ctx).WithError(err).Warn("params arrived as an unparseable string, degrading to empty")
			return map[string]any{}
		}
		return parsed
	case json.RawMessage:
		var parsed map[string]any
		if err := json.Unmarshal(v, &parsed); err != nil {
			d.log.WithContext(ctx).WithError(err).Warn("params arrived as unparseable JSON, degrading to empty")
			return map[string]any{}
		}
		return parsed
	default:
		d.log.WithContext(ctx).WithFields(map[string]any{
			"type": fmt.Sprintf("%T", raw),
		}).Warn("params arrived with an unexpected type, degrading to empty")
		return map[string]any{}
	}
}

func mergeParams(base, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// paramsForReplay captures the original request so a confirmation resolution
// can rebuild it. Fields are flattened alongside the caller's params.
func paramsForReplay(req models.CreateActionRequest) map[string]any {
	params := make(map[string]any, len(req.Params)+8)
	for k, v := range req.Params {
		params[k] = v
	}

	raw, _ := json.Marshal(req.Fields)
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)
	for k, v := range fields {
		params[k] = v
	}

	if req.ExcludeID != "" {
		params["exclude_id"] = req.ExcludeID
	}
	return params
}

// fieldsFromParams rebuilds the typed fields from a replayed param map,
// ignoring keys that do not belong to the entity fields.
func fieldsFromParams(params map[string]any) models.EntityFields {
	var fields models.EntityFields
	raw, err := json.Marshal(params)
	if err != nil {
		return fields
	}
	_ = json.Unmarshal(raw, &fields)
	return fields
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}

func stringParam(v any) string {
	s, _ := v.(string)
	return s
}
