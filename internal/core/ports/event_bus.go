package ports

import (
	"context"

	"github.com/google/uuid"
)

// Event topics published by the transaction engine and the registry.
const (
	TopicAccountCreated       = "account.created"
	TopicAccountAuthenticated = "account.authenticated"
	TopicAccountBlocked       = "account.blocked"
	TopicAccountDeposited     = "account.deposited"
	TopicAccountWithdrawn     = "account.withdrawn"
	TopicAdminBalanceSet      = "admin.balance_set"
	TopicAdminPinReset        = "admin.pin_reset"
	TopicAdminRenamed         = "admin.renamed"
	TopicAdminUnblocked       = "admin.unblocked"
	TopicAdminDeleted         = "admin.deleted"
	TopicReportGenerated      = "report.generated"
	TopicRegistrySaved        = "registry.saved"
)

// Event is a generic wrapper for any event payload
type Event struct {
	Topic string
	Data  interface{}
}

// AccountEvent is the payload of every account and admin topic.
type AccountEvent struct {
	SessionID uuid.UUID
	Index     int
	FirstName string
	LastName  string
	Amount    float64
	Balance   float64
}

// RegistryEvent is the payload of registry-wide topics.
type RegistryEvent struct {
	SessionID uuid.UUID
	Capacity  int
	Accounts  int
}

// EventHandler is a function that can handle a specific event
type EventHandler func(ctx context.Context, event Event) error

// EventBus defines the interface for our in-process pub/sub system
type EventBus interface {
	// Publish delivers an event to every subscriber of a topic before returning.
	Publish(ctx context.Context, topic string, data interface{}) error

	// Subscribe registers a handler for a specific topic
	Subscribe(topic string, handler EventHandler)
}
