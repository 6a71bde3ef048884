package models

// ErrorSimilarEntitiesFound is the error code on a blocked create result
const ErrorSimilarEntitiesFound = "similar_entities_found"

// CreateActionRequest is the contract the action dispatcher hands to the
// engine for a create action.
type CreateActionRequest struct {
	Action     string         `json:"action" validate:"required"`
	EntityType EntityKind     `json:"entity_type" validate:"required"`
	Fields     EntityFields   `json:"fields"`
	Params     map[string]any `json:"params,omitempty"`
	ExcludeID  string         `json:"exclude_id,omitempty"`
	MinScore   *float64       `json:"min_score,omitempty"`
}

// SimilarEntity is one suggestion in a blocked result. Similarity is always
// an integer 0..100 at this boundary, never a float ratio.
type SimilarEntity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Similarity int     `json:"similarity"`
	Reason     string  `json:"reason"`
}

// ActionResult is the engine's response to the dispatcher. On a duplicate it
// carries the blocked payload with up to three suggestions and the pending
// confirmation; otherwise Success is true and the caller proceeds.
type ActionResult struct {
	Success              bool                 `json:"success"`
	Error                string               `json:"error,omitempty"`
	Message              string               `json:"message,omitempty"`
	RequiresConfirmation bool                 `json:"requires_confirmation,omitempty"`
	EntityType           EntityKind           `json:"entity_type,omitempty"`
	SimilarEntities      []SimilarEntity      `json:"similar_entities,omitempty"`
	PendingConfirmation  *PendingConfirmation `json:"pending_confirmation,omitempty"`
	EntityID             string               `json:"entity_id,omitempty"`
	Linked               bool                 `json:"linked,omitempty"`
	Cancelled            bool                 `json:"cancelled,omitempty"`
}
