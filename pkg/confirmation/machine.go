package confirmation

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/sorrel/pkg/models"
	"github.com/Ramsey-B/sorrel/pkg/tracing"
)

// Store persists at most one pending confirmation per conversation.
// Load returns nil with no error when nothing is pending.
type Store interface {
	Save(ctx context.Context, conversationID string, pending *models.PendingConfirmation) error
	Load(ctx context.Context, conversationID string) (*models.PendingConfirmation, error)
	Clear(ctx context.Context, conversationID string) error
}

// Resolution is the outcome of feeding a user message through the machine.
// Classified is false when the message is not a confirmation reply, in which
// case the pending state is left untouched and the caller routes the message
// through normal conversation handling.
type Resolution struct {
	Classified bool
	Choice     models.ConfirmationChoice
	Pending    *models.PendingConfirmation
	Params     map[string]any
}

type Machine struct {
	log        ectologger.Logger
	store      Store
	classifier *Classifier
}

func NewMachine(log ectologger.Logger, store Store, classifier *Classifier) *Machine {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Machine{log: log, store: store, classifier: classifier}
}

// Begin records a fresh pending confirmation for the conversation,
// overwriting any prior one. Last write wins; confirmations never stack.
func (m *Machine) Begin(ctx context.Context, conversationID string, pending *models.PendingConfirmation) error {
	ctx, span := tracing.StartSpan(ctx, "confirmation.Begin")
	defer span.End()

	if err := m.store.Save(ctx, conversationID, pending); err != nil {
		m.log.WithContext(ctx).WithError(err).Errorf("failed to save pending confirmation for conversation %s", conversationID)
		return err
	}
	return nil
}

// HandleMessage classifies a free-text reply against the conversation's
// pending confirmation. When the reply classifies as one of the three
// choices, the pending state is consumed and the patched params for the
// original action are returned. An unclassified reply leaves the pending
// state in place.
func (m *Machine) HandleMessage(ctx context.Context, conversationID, message string) (Resolution, error) {
	ctx, span := tracing.StartSpan(ctx, "confirmation.HandleMessage")
	defer span.End()

	pending, err := m.store.Load(ctx, conversationID)
	if err != nil {
		return Resolution{}, err
	}
	if pending == nil {
		return Resolution{}, nil
	}

	choice, ok := m.classifier.Classify(message)
	if !ok {
		m.log.WithContext(ctx).Debugf("message for conversation %s did not classify as a confirmation reply", conversationID)
		return Resolution{Pending: pending}, nil
	}

	return m.resolve(ctx, conversationID, pending, choice)
}

// Resolve applies an explicit choice to the conversation's pending
// confirmation, bypassing free-text classification.
func (m *Machine) Resolve(ctx context.Context, conversationID string, choice models.ConfirmationChoice) (Resolution, error) {
	ctx, span := tracing.StartSpan(ctx, "confirmation.Resolve")
	defer span.End()

	pending, err := m.store.Load(ctx, conversationID)
	if err != nil {
		return Resolution{}, err
	}
	if pending == nil {
		return Resolution{}, nil
	}

	return m.resolve(ctx, conversationID, pending, choice)
}

func (m *Machine) resolve(ctx context.Context, conversationID string, pending *models.PendingConfirmation, choice models.ConfirmationChoice) (Resolution, error) {
	if err := m.store.Clear(ctx, conversationID); err != nil {
		m.log.WithContext(ctx).WithError(err).Errorf("failed to clear pending confirmation for conversation %s", conversationID)
		return Resolution{}, err
	}

	m.log.WithContext(ctx).WithFields(map[string]interface{}{
		"conversation_id": conversationID,
		"choice":          string(choice),
		"action":          pending.Action,
	}).Infof("pending confirmation resolved")

	return Resolution{
		Classified: true,
		Choice:     choice,
		Pending:    pending,
		Params:     pending.Patch(choice),
	}, nil
}
