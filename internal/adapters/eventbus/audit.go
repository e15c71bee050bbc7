package eventbus

import (
	"AEBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

// AuditTopics lists every topic the audit subscriber records.
var AuditTopics = []string{
	ports.TopicAccountCreated,
	ports.TopicAccountAuthenticated,
	ports.TopicAccountBlocked,
	ports.TopicAccountDeposited,
	ports.TopicAccountWithdrawn,
	ports.TopicAdminBalanceSet,
	ports.TopicAdminPinReset,
	ports.TopicAdminRenamed,
	ports.TopicAdminUnblocked,
	ports.TopicAdminDeleted,
	ports.TopicReportGenerated,
	ports.TopicRegistrySaved,
}

// NewAuditSubscriber subscribes a structured audit logger to every ATM topic.
func NewAuditSubscriber(bus ports.EventBus, baseLogger *zerolog.Logger) {
	log := baseLogger.With().Str("component", "audit").Logger()
	handler := func(ctx context.Context, event ports.Event) error {
		ev := log.Info().Str("topic", event.Topic)
		switch data := event.Data.(type) {
		case ports.AccountEvent:
			ev = ev.Str("session_id", data.SessionID.String()).
				Int("index", data.Index).
				Str("first_name", data.FirstName).
				Str("last_name", data.LastName).
				Float64("amount", data.Amount).
				Float64("balance", data.Balance)
		case ports.RegistryEvent:
			ev = ev.Str("session_id", data.SessionID.String()).
				Int("capacity", data.Capacity).
				Int("accounts", data.Accounts)
		default:
			ev = ev.Interface("data", data)
		}
		ev.Msg("Audit")
		return nil
	}
	for _, topic := range AuditTopics {
		bus.Subscribe(topic, handler)
	}
}
