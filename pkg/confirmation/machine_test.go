package confirmation

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

type memoryStore struct {
	pendings map[string]*models.PendingConfirmation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{pendings: map[string]*models.PendingConfirmation{}}
}

func (s *memoryStore) Save(_ context.Context, conversationID string, pending *models.PendingConfirmation) error {
	s.pendings[conversationID] = pending
	return nil
}

func (s *memoryStore) Load(_ context.Context, conversationID string) (*models.PendingConfirmation, error) {
	return s.pendings[conversationID], nil
}

func (s *memoryStore) Clear(_ context.Context, conversationID string) error {
	delete(s.pendings, conversationID)
	return nil
}

func newTestMachine(store Store) *Machine {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewMachine(logger, store, NewClassifier())
}

func TestMachine_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("no pending confirmation", func(t *testing.T) {
		m := newTestMachine(newMemoryStore())
		res, err := m.HandleMessage(ctx, "conv-1", "utilise le premier")
		require.NoError(t, err)
		assert.False(t, res.Classified)
		assert.Nil(t, res.Pending)
	})

	t.Run("use existing consumes the pending state and patches params", func(t *testing.T) {
		store := newMemoryStore()
		m := newTestMachine(store)

		pending := models.NewPendingConfirmation(
			"create_client",
			map[string]any{"name": "Jean Dupont"},
			models.EntityKindClient,
			"entity-42",
		)
		require.NoError(t, m.Begin(ctx, "conv-1", pending))

		res, err := m.HandleMessage(ctx, "conv-1", "oui, utilise le premier")
		require.NoError(t, err)
		assert.True(t, res.Classified)
		assert.Equal(t, models.ChoiceUseExisting, res.Choice)
		assert.Equal(t, "entity-42", res.Params["client_id"])
		assert.Nil(t, store.pendings["conv-1"])
	})

	t.Run("force create patches the bypass flag", func(t *testing.T) {
		m := newTestMachine(newMemoryStore())
		pending := models.NewPendingConfirmation("create_supplier", nil, models.EntityKindSupplier, "entity-7")
		require.NoError(t, m.Begin(ctx, "conv-1", pending))

		res, err := m.HandleMessage(ctx, "conv-1", "créer quand même")
		require.NoError(t, err)
		assert.True(t, res.Classified)
		assert.Equal(t, models.ChoiceForceCreate, res.Choice)
		assert.Equal(t, true, res.Params["force_create_supplier"])
	})

	t.Run("cancel carries no patch", func(t *testing.T) {
		m := newTestMachine(newMemoryStore())
		pending := models.NewPendingConfirmation("create_product", nil, models.EntityKindProduct, "entity-9")
		require.NoError(t, m.Begin(ctx, "conv-1", pending))

		res, err := m.HandleMessage(ctx, "conv-1", "annuler")
		require.NoError(t, err)
		assert.True(t, res.Classified)
		assert.Equal(t, models.ChoiceCancel, res.Choice)
		assert.Nil(t, res.Params)
	})

	t.Run("unclassified message leaves the pending state in place", func(t *testing.T) {
		store := newMemoryStore()
		m := newTestMachine(store)
		pending := models.NewPendingConfirmation("create_client", nil, models.EntityKindClient, "entity-1")
		require.NoError(t, m.Begin(ctx, "conv-1", pending))

		res, err := m.HandleMessage(ctx, "conv-1", "quelle heure est-il ?")
		require.NoError(t, err)
		assert.False(t, res.Classified)
		assert.NotNil(t, res.Pending)
		assert.NotNil(t, store.pendings["conv-1"])
	})

	t.Run("a newer confirmation overwrites the old one", func(t *testing.T) {
		store := newMemoryStore()
		m := newTestMachine(store)

		first := models.NewPendingConfirmation("create_client", nil, models.EntityKindClient, "entity-1")
		second := models.NewPendingConfirmation("create_client", nil, models.EntityKindClient, "entity-2")
		require.NoError(t, m.Begin(ctx, "conv-1", first))
		require.NoError(t, m.Begin(ctx, "conv-1", second))

		res, err := m.HandleMessage(ctx, "conv-1", "1")
		require.NoError(t, err)
		require.True(t, res.Classified)
		assert.Equal(t, "entity-2", res.Pending.SuggestedEntityID)
	})
}

func TestMachine_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit choice bypasses classification", func(t *testing.T) {
		m := newTestMachine(newMemoryStore())
		pending := models.NewPendingConfirmation("create_client", nil, models.EntityKindClient, "entity-1")
		require.NoError(t, m.Begin(ctx, "conv-1", pending))

		res, err := m.Resolve(ctx, "conv-1", models.ChoiceForceCreate)
		require.NoError(t, err)
		assert.True(t, res.Classified)
		assert.Equal(t, models.ChoiceForceCreate, res.Choice)
	})

	t.Run("nothing pending", func(t *testing.T) {
		m := newTestMachine(newMemoryStore())
		res, err := m.Resolve(ctx, "conv-1", models.ChoiceCancel)
		require.NoError(t, err)
		assert.False(t, res.Classified)
	})
}
