package metrics

import (
	"context"

	"xperiencia/events"
)

// Subscribe wires the domain events to their counters
func Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, e events.Event) {
		UsersCreated.Inc()
	})

	bus.Subscribe(events.EventTypeUserDeleted, func(ctx context.Context, e events.Event) {
		UsersDeleted.Inc()
	})

	bus.Subscribe(events.EventTypeBetRecorded, func(ctx context.Context, e events.Event) {
		if recorded, ok := e.(events.BetRecordedEvent); ok {
			BetsRecorded.WithLabelValues(recorded.Result).Inc()
		}
	})

	bus.Subscribe(events.EventTypeReflectionRecorded, func(ctx context.Context, e events.Event) {
		ReflectionsRecorded.Inc()
	})

	bus.Subscribe(events.EventTypeReportGenerated, func(ctx context.Context, e events.Event) {
		if generated, ok := e.(events.ReportGeneratedEvent); ok {
			ReportsGenerated.WithLabelValues(generated.Kind).Inc()
		}
	})
}
