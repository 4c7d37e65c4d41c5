package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated        EventType = "user_created"
	EventTypeUserDeleted        EventType = "user_deleted"
	EventTypeBetRecorded        EventType = "bet_recorded"
	EventTypeReflectionRecorded EventType = "reflection_recorded"
	EventTypeReportGenerated    EventType = "report_generated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent represents a new user registration
type UserCreatedEvent struct {
	UserID int64
	Name   string
	Email  string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// UserDeletedEvent represents a user deletion, including how many dependent
// records were removed with it
type UserDeletedEvent struct {
	UserID             int64
	BetsDeleted        int
	ReflectionsDeleted int
}

func (e UserDeletedEvent) Type() EventType {
	return EventTypeUserDeleted
}

// BetRecordedEvent represents a bet that was registered
type BetRecordedEvent struct {
	UserID int64
	BetID  int64
	Amount int64
	Result string
}

func (e BetRecordedEvent) Type() EventType {
	return EventTypeBetRecorded
}

// ReflectionRecordedEvent represents a reflection that was registered
type ReflectionRecordedEvent struct {
	UserID       int64
	ReflectionID int64
}

func (e ReflectionRecordedEvent) Type() EventType {
	return EventTypeReflectionRecorded
}

// ReportGeneratedEvent represents a report that was built
type ReportGeneratedEvent struct {
	Kind   string // "user", "system" or "period"
	UserID int64  // zero for system-wide reports
}

func (e ReportGeneratedEvent) Type() EventType {
	return EventTypeReportGenerated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the caller
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events until the surrounding database transaction
// commits, then flushes them to the real bus. Discarded on rollback.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus on top of the real bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	// Events outlive the transaction context, so emit on a fresh one
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops all pending events; called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
