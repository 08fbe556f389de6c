package event

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OutboxRelayConfig holds configuration for the outbox relay
type OutboxRelayConfig struct {
	BatchSize        int
	PollInterval     time.Duration
	ChannelPrefix    string
	CleanupEnabled   bool
	CleanupRetention time.Duration
	CleanupInterval  time.Duration
}

// DefaultOutboxRelayConfig returns default configuration
func DefaultOutboxRelayConfig() OutboxRelayConfig {
	return OutboxRelayConfig{
		BatchSize:        100,
		PollInterval:     5 * time.Second,
		ChannelPrefix:    "rationshop.events.",
		CleanupEnabled:   true,
		CleanupRetention: 7 * 24 * time.Hour,
		CleanupInterval:  time.Hour,
	}
}

// Message is the envelope published for every relayed outbox entry
type Message struct {
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// OutboxRelay delivers outbox entries to a Publisher in the background.
// Delivery is at-least-once; consumers deduplicate by event_id.
type OutboxRelay struct {
	repo       shared.OutboxRepository
	publisher  Publisher
	serializer *EventSerializer
	config     OutboxRelayConfig
	logger     *zap.Logger
	now        func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOutboxRelay creates a new outbox relay
func NewOutboxRelay(
	repo shared.OutboxRepository,
	publisher Publisher,
	serializer *EventSerializer,
	config OutboxRelayConfig,
	logger *zap.Logger,
) *OutboxRelay {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultOutboxRelayConfig().BatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultOutboxRelayConfig().PollInterval
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultOutboxRelayConfig().CleanupInterval
	}
	return &OutboxRelay{
		repo:       repo,
		publisher:  publisher,
		serializer: serializer,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Start starts the background relay loops
func (r *OutboxRelay) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.relayLoop(ctx)

	if r.config.CleanupEnabled {
		r.wg.Add(1)
		go r.cleanupLoop(ctx)
	}

	r.logger.Info("outbox relay started",
		zap.Int("batch_size", r.config.BatchSize),
		zap.Duration("poll_interval", r.config.PollInterval),
		zap.String("channel_prefix", r.config.ChannelPrefix),
		zap.Strings("event_types", r.serializer.RegisteredTypes()),
	)

	return nil
}

// Stop gracefully stops the relay
func (r *OutboxRelay) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("outbox relay stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *OutboxRelay) relayLoop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RelayBatch(ctx)
		}
	}
}

// RelayBatch delivers one batch of due entries and returns how many were sent
func (r *OutboxRelay) RelayBatch(ctx context.Context) int {
	entries, err := r.repo.FindDue(ctx, r.now(), r.config.BatchSize)
	if err != nil {
		r.logger.Error("failed to find due outbox entries", zap.Error(err))
		return 0
	}

	sent := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if r.relayEntry(ctx, entry) {
			sent++
		}
	}
	return sent
}

func (r *OutboxRelay) relayEntry(ctx context.Context, entry *shared.OutboxEntry) bool {
	event, err := r.serializer.Deserialize(entry.EventType, entry.Payload)
	if err != nil {
		r.fail(ctx, entry, "failed to deserialize event", err)
		return false
	}

	message, err := json.Marshal(Message{
		EventID:       entry.EventID,
		EventType:     entry.EventType,
		AggregateType: entry.AggregateType,
		AggregateID:   entry.AggregateID,
		OccurredAt:    event.OccurredAt(),
		Payload:       entry.Payload,
	})
	if err != nil {
		r.fail(ctx, entry, "failed to encode message", err)
		return false
	}

	if err := r.publisher.Publish(ctx, r.config.ChannelPrefix+entry.EventType, message); err != nil {
		r.fail(ctx, entry, "failed to publish event", err)
		return false
	}

	if err := entry.MarkSent(r.now()); err != nil {
		r.logger.Warn("outbox entry already settled", zap.String("event_id", entry.EventID.String()))
		return false
	}
	if err := r.repo.Update(ctx, entry); err != nil {
		r.logger.Error("failed to mark entry as sent",
			zap.String("event_id", entry.EventID.String()),
			zap.Error(err),
		)
		return false
	}

	r.logger.Debug("event relayed",
		zap.String("event_id", entry.EventID.String()),
		zap.String("event_type", entry.EventType),
	)
	return true
}

func (r *OutboxRelay) fail(ctx context.Context, entry *shared.OutboxEntry, msg string, cause error) {
	r.logger.Error(msg,
		zap.String("event_id", entry.EventID.String()),
		zap.String("event_type", entry.EventType),
		zap.Error(cause),
	)

	entry.MarkFailed(r.now(), cause.Error())
	if entry.Status == shared.OutboxStatusDead {
		r.logger.Warn("event moved to dead letter state",
			zap.String("event_id", entry.EventID.String()),
			zap.String("aggregate_type", entry.AggregateType),
			zap.String("aggregate_id", entry.AggregateID.String()),
			zap.Int("retry_count", entry.RetryCount),
			zap.String("last_error", entry.LastError),
		)
	}
	if err := r.repo.Update(ctx, entry); err != nil {
		r.logger.Error("failed to update entry", zap.Error(err))
	}
}

func (r *OutboxRelay) cleanupLoop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Cleanup(ctx)
		}
	}
}

// Cleanup removes delivered entries older than the retention window
func (r *OutboxRelay) Cleanup(ctx context.Context) int64 {
	cutoff := r.now().Add(-r.config.CleanupRetention)
	deleted, err := r.repo.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		r.logger.Error("failed to cleanup old entries", zap.Error(err))
		return 0
	}

	if deleted > 0 {
		r.logger.Info("cleaned up old outbox entries",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return deleted
}
