package session

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Admin performs unconditional overrides on any account. It needs no PIN.
// Indexes are only trusted while no account has been deleted since the last
// Select; after that every override fails with ErrSessionClosed.
type Admin struct {
	ID         uuid.UUID
	generation uint64
	engine     *Engine
	log        zerolog.Logger
}

// Admin opens an administrative session.
func (e *Engine) Admin() *Admin {
	id := uuid.New()
	log := e.log.With().Str("admin_session_id", id.String()).Logger()
	log.Info().Msg("Admin session opened")
	return &Admin{ID: id, generation: e.reg.Generation(), engine: e, log: log}
}

// Select checks that index holds an account and pins the current registry
// generation for the overrides that follow.
func (a *Admin) Select(index int) error {
	if _, err := a.engine.reg.Get(index); err != nil {
		return err
	}
	a.generation = a.engine.reg.Generation()
	a.log.Debug().Int("index", index).Uint64("generation", a.generation).Msg("Account selected")
	return nil
}

func (a *Admin) check(index int) error {
	if a.engine.reg.Generation() != a.generation {
		a.log.Warn().Int("index", index).Msg("Selection outdated by account deletion")
		return domain.ErrSessionClosed
	}
	return nil
}

// SetBalance overwrites the balance of the account at index. History is untouched.
func (a *Admin) SetBalance(ctx context.Context, index int, balance float64) error {
	if err := domain.ValidateBalance(balance); err != nil {
		return err
	}
	return a.update(ctx, index, ports.TopicAdminBalanceSet, balance, func(acct *domain.Account) error {
		acct.SetBalance(balance)
		return nil
	})
}

// ResetPin stores the digest of a new PIN for the account at index.
func (a *Admin) ResetPin(ctx context.Context, index int, pin int) error {
	digest, err := domain.EncryptPin(pin)
	if err != nil {
		return err
	}
	return a.update(ctx, index, ports.TopicAdminPinReset, 0, func(acct *domain.Account) error {
		acct.ResetPin(digest)
		return nil
	})
}

// Unblock clears the blocked flag of the account at index.
func (a *Admin) Unblock(ctx context.Context, index int) error {
	return a.update(ctx, index, ports.TopicAdminUnblocked, 0, func(acct *domain.Account) error {
		acct.Unblock()
		return nil
	})
}

// Rename replaces the record at index with one carrying the new names. Digest,
// balance and history are kept.
func (a *Admin) Rename(ctx context.Context, index int, firstName, lastName string) error {
	if err := domain.ValidateName(firstName, lastName); err != nil {
		return err
	}
	if err := a.check(index); err != nil {
		return err
	}
	current, err := a.engine.reg.Get(index)
	if err != nil {
		return err
	}
	renamed := current.Renamed(firstName, lastName)
	if err := a.engine.reg.Replace(index, renamed); err != nil {
		return err
	}
	a.log.Info().Int("index", index).Msg("Account renamed")
	a.engine.publish(ctx, ports.TopicAdminRenamed, accountEvent(a.ID, index, *renamed, 0))
	return nil
}

// Delete removes the account at index. Later accounts move down one slot, so
// indexes held for them are no longer valid.
func (a *Admin) Delete(ctx context.Context, index int) error {
	if err := a.check(index); err != nil {
		return err
	}
	acct, err := a.engine.reg.Get(index)
	if err != nil {
		return err
	}
	if err := a.engine.reg.DeleteAt(index); err != nil {
		return err
	}
	a.log.Info().Int("index", index).Msg("Account deleted")
	a.engine.publish(ctx, ports.TopicAdminDeleted, accountEvent(a.ID, index, acct, 0))
	return nil
}

func (a *Admin) update(ctx context.Context, index int, topic string, amount float64, fn func(*domain.Account) error) error {
	if err := a.check(index); err != nil {
		return err
	}
	var snapshot domain.Account
	err := a.engine.reg.Update(index, func(acct *domain.Account) error {
		if err := fn(acct); err != nil {
			return err
		}
		snapshot = *acct
		return nil
	})
	if err != nil {
		a.log.Warn().Err(err).Int("index", index).Str("topic", topic).Msg("Admin operation failed")
		return err
	}
	a.log.Info().Int("index", index).Str("topic", topic).Msg("Admin operation applied")
	a.engine.publish(ctx, topic, accountEvent(a.ID, index, snapshot, amount))
	return nil
}
