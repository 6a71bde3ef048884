package models

import (
	"fmt"
	"time"
)

// ConfirmationChoice is the closed set of decisions a user can make on a
// pending confirmation
type ConfirmationChoice string

const (
	ChoiceUseExisting ConfirmationChoice = "use_existing"
	ChoiceForceCreate ConfirmationChoice = "force_create"
	ChoiceCancel      ConfirmationChoice = "cancel"
)

// ConfirmationChoices maps each choice to the parameter patch merged into the
// original params before the action is re-invoked. Cancel never carries a
// patch.
type ConfirmationChoices struct {
	UseExisting map[string]any `json:"use_existing"`
	ForceCreate map[string]any `json:"force_create"`
	Cancel      map[string]any `json:"cancel"`
}

// PendingConfirmation is a suspended create action awaiting a user decision.
// At most one is live per conversation; a newer one always overwrites it.
type PendingConfirmation struct {
	Action            string              `json:"action"`
	OriginalParams    map[string]any      `json:"original_params"`
	EntityType        EntityKind          `json:"entity_type"`
	SuggestedEntityID string              `json:"suggested_entity_id"`
	Choices           ConfirmationChoices `json:"choices"`
	CreatedAt         time.Time           `json:"created_at"`
}

// NewPendingConfirmation builds the confirmation for a blocked create action.
// The use_existing patch routes the replay to the top match; the force_create
// patch bypasses duplicate detection on replay.
func NewPendingConfirmation(action string, params map[string]any, kind EntityKind, suggestedID string) *PendingConfirmation {
	return &PendingConfirmation{
		Action:            action,
		OriginalParams:    params,
		EntityType:        kind,
		SuggestedEntityID: suggestedID,
		Choices: ConfirmationChoices{
			UseExisting: map[string]any{ExistingIDParam(kind): suggestedID},
			ForceCreate: map[string]any{ForceCreateParam(kind): true},
			Cancel:      nil,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// Patch returns the parameter patch for a choice, nil for cancel
func (p *PendingConfirmation) Patch(choice ConfirmationChoice) map[string]any {
	switch choice {
	case ChoiceUseExisting:
		return p.Choices.UseExisting
	case ChoiceForceCreate:
		return p.Choices.ForceCreate
	default:
		return nil
	}
}

// ExistingIDParam names the replay parameter that links to an existing entity
func ExistingIDParam(kind EntityKind) string {
	return fmt.Sprintf("%s_id", kind)
}

// ForceCreateParam names the replay parameter that bypasses duplicate checks
func ForceCreateParam(kind EntityKind) string {
	return fmt.Sprintf("force_create_%s", kind)
}
