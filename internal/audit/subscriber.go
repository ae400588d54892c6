package audit

import (
	"context"

	"github.com/waynenilsen/safeworkout/internal/domain/event"
)

// Subscribe wires a Sink to a bus's EventRuleFired stream: every rule firing
// observed by the rules engine becomes one audit record, persisted
// out-of-band from plan assembly. Subscribe is a no-op if bus is nil.
func Subscribe(bus *event.Bus, sink Sink) {
	if bus == nil {
		return
	}
	bus.Subscribe(event.EventRuleFired, func(ctx context.Context, e event.StateEvent) error {
		return sink.Write(ctx, Record{
			UserID:      e.UserID,
			PlanID:      e.PlanID,
			RuleID:      e.GetString(event.PayloadRuleID),
			Category:    e.GetString(event.PayloadCategory),
			ActionType:  e.GetString(event.PayloadActionType),
			UserMessage: e.GetString(event.PayloadMessage),
			OccurredAt:  e.Timestamp,
		})
	})
}
