package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"

	"github.com/Ramsey-B/sorrel/pkg/models"
	"github.com/Ramsey-B/sorrel/pkg/tracing"
)

const confirmationKeyPrefix = "sorrel:confirmation:"

// DefaultConfirmationTTL bounds how long an unanswered confirmation stays
// live before the conversation falls back to normal handling.
const DefaultConfirmationTTL = 24 * time.Hour

// ConfirmationStore keeps at most one pending confirmation per conversation.
// A save always overwrites; stale or malformed entries read as "nothing
// pending" rather than failing the conversation turn.
type ConfirmationStore struct {
	client *Client
	logger ectologger.Logger
	ttl    time.Duration
}

// NewConfirmationStore creates a confirmation store on top of a Redis client
func NewConfirmationStore(client *Client, logger ectologger.Logger, ttl time.Duration) *ConfirmationStore {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &ConfirmationStore{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func confirmationKey(conversationID string) string {
	return confirmationKeyPrefix + conversationID
}

// Save stores the pending confirmation, overwriting any prior one
func (s *ConfirmationStore) Save(ctx context.Context, conversationID string, pending *models.PendingConfirmation) error {
	ctx, span := tracing.StartSpan(ctx, "redis.ConfirmationStore.Save")
	defer span.End()

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending confirmation: %w", err)
	}

	if err := s.client.Set(ctx, confirmationKey(conversationID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to store pending confirmation: %w", err)
	}
	return nil
}

// Load returns the conversation's pending confirmation, or nil when nothing
// is pending. A malformed stored value is dropped and read as nil.
func (s *ConfirmationStore) Load(ctx context.Context, conversationID string) (*models.PendingConfirmation, error) {
	ctx, span := tracing.StartSpan(ctx, "redis.ConfirmationStore.Load")
	defer span.End()

	data, err := s.client.Get(ctx, confirmationKey(conversationID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load pending confirmation: %w", err)
	}

	var pending models.PendingConfirmation
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Dropping malformed pending confirmation")
		_ = s.client.Del(ctx, confirmationKey(conversationID))
		return nil, nil
	}
	return &pending, nil
}

// Clear removes the conversation's pending confirmation
func (s *ConfirmationStore) Clear(ctx context.Context, conversationID string) error {
	ctx, span := tracing.StartSpan(ctx, "redis.ConfirmationStore.Clear")
	defer span.End()

	return s.client.Del(ctx, confirmationKey(conversationID))
}
