package event

import (
	"context"
	"fmt"

	"github.com/rationshop/backend/internal/domain/shared"
)

// OutboxWriter saves domain events as outbox entries through a repository.
// Bound to a transactional repository, the entries commit with the aggregate change.
type OutboxWriter struct {
	serializer *EventSerializer
	repo       shared.OutboxRepository
}

// NewOutboxWriter creates a new outbox writer
func NewOutboxWriter(serializer *EventSerializer, repo shared.OutboxRepository) *OutboxWriter {
	return &OutboxWriter{
		serializer: serializer,
		repo:       repo,
	}
}

// SaveEvents serializes events and stores them as pending outbox entries.
// Types the relay could not decode are refused so they never reach the table.
func (w *OutboxWriter) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		if !w.serializer.IsRegistered(event.EventType()) {
			return fmt.Errorf("%w: %s", ErrUnknownEventType, event.EventType())
		}
		payload, err := w.serializer.Serialize(event)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", event.EventType(), err)
		}
		entries = append(entries, shared.NewOutboxEntry(event, payload))
	}

	return w.repo.Save(ctx, entries...)
}

// Ensure OutboxWriter implements EventSaver
var _ shared.EventSaver = (*OutboxWriter)(nil)
