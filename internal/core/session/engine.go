// Package session runs authenticated ATM sessions and administrative overrides
// against the account registry.
package session

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"AEBank/internal/core/registry"
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReportEntry is one line of the descending-balance report.
type ReportEntry struct {
	Index      int
	FirstName  string
	LastName   string
	Statistics domain.Statistics
}

// Engine executes transactions for sessions it opens and carries out
// administrative operations.
type Engine struct {
	reg *registry.Registry
	bus ports.EventBus
	log zerolog.Logger
}

// NewEngine creates a transaction engine over reg. Events go to bus.
func NewEngine(reg *registry.Registry, bus ports.EventBus, baseLogger *zerolog.Logger) *Engine {
	return &Engine{
		reg: reg,
		bus: bus,
		log: baseLogger.With().Str("component", "session_engine").Logger(),
	}
}

// Registry returns the registry the engine works on.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Authenticate checks pin against the account at index. A wrong PIN blocks the
// account and returns a session in the Blocked state with ErrAuthenticationBlocked.
func (e *Engine) Authenticate(ctx context.Context, index int, pin int) (*Session, error) {
	s := &Session{
		ID:         uuid.New(),
		index:      index,
		generation: e.reg.Generation(),
		state:      StateUnauthenticated,
		engine:     e,
	}
	log := e.log.With().Str("session_id", s.ID.String()).Int("index", index).Logger()

	var owner bool
	var snapshot domain.Account
	err := e.reg.Update(index, func(acct *domain.Account) error {
		owner = acct.IsOwner(pin)
		snapshot = *acct
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("Authentication against missing account")
		return nil, err
	}

	if !owner {
		s.state = StateBlocked
		log.Warn().Msg("Authentication failed, account blocked")
		e.publish(ctx, ports.TopicAccountBlocked, accountEvent(s.ID, index, snapshot, 0))
		return s, domain.ErrAuthenticationBlocked
	}

	s.state = StateAuthenticated
	log.Info().Msg("Session authenticated")
	e.publish(ctx, ports.TopicAccountAuthenticated, accountEvent(s.ID, index, snapshot, 0))
	return s, nil
}

// OpenAccount creates an account for a holder that was not found by name.
func (e *Engine) OpenAccount(ctx context.Context, firstName, lastName string, pins ports.PinSource) (int, error) {
	index, err := e.reg.CreateAccount(ctx, firstName, lastName, pins)
	if err != nil {
		return index, err
	}
	acct, err := e.reg.Get(index)
	if err != nil {
		return registry.NoSlot, err
	}
	e.publish(ctx, ports.TopicAccountCreated, accountEvent(uuid.Nil, index, acct, 0))
	return index, nil
}

// Report sorts the occupied slots by balance, highest first. Equal balances keep
// their slot order.
func (e *Engine) Report(ctx context.Context) []ReportEntry {
	slots := e.reg.Occupied()
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Account.Balance > slots[j].Account.Balance
	})

	out := make([]ReportEntry, 0, len(slots))
	for _, s := range slots {
		out = append(out, ReportEntry{
			Index:      s.Index,
			FirstName:  s.Account.FirstName,
			LastName:   s.Account.LastName,
			Statistics: s.Account.Statistics(),
		})
	}
	e.log.Info().Int("accounts", len(out)).Msg("Balance report generated")
	e.publish(ctx, ports.TopicReportGenerated, ports.RegistryEvent{
		Capacity: e.reg.Capacity(),
		Accounts: len(out),
	})
	return out
}

// Save writes the registry back to its store.
func (e *Engine) Save(ctx context.Context) error {
	if err := e.reg.Save(ctx); err != nil {
		return err
	}
	e.publish(ctx, ports.TopicRegistrySaved, ports.RegistryEvent{
		Capacity: e.reg.Capacity(),
		Accounts: e.reg.Len(),
	})
	return nil
}

func (e *Engine) publish(ctx context.Context, topic string, data interface{}) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, topic, data); err != nil {
		e.log.Error().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
}

func accountEvent(sessionID uuid.UUID, index int, acct domain.Account, amount float64) ports.AccountEvent {
	return ports.AccountEvent{
		SessionID: sessionID,
		Index:     index,
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Amount:    amount,
		Balance:   acct.Balance,
	}
}
