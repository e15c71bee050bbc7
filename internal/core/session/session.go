package session

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"context"

	"github.com/google/uuid"
)

// State is the position of a session in its lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
	StateBlocked         State = "blocked"
	StateExited          State = "exited"
)

// Session is one authenticated use of an account. It keeps only the slot index
// and reads the record through the registry on every call.
type Session struct {
	ID         uuid.UUID
	index      int
	generation uint64
	state      State
	engine     *Engine
}

// Index returns the slot the session was opened on.
func (s *Session) Index() int { return s.index }

// State returns where the session is in its lifecycle.
func (s *Session) State() State { return s.state }

// Deposit adds amount to the account and returns the new balance.
func (s *Session) Deposit(ctx context.Context, amount float64) (float64, error) {
	return s.transact(ctx, amount, ports.TopicAccountDeposited, (*domain.Account).Deposit)
}

// Withdraw takes amount from the account and returns the new balance.
// The balance may go negative.
func (s *Session) Withdraw(ctx context.Context, amount float64) (float64, error) {
	return s.transact(ctx, amount, ports.TopicAccountWithdrawn, (*domain.Account).Withdraw)
}

func (s *Session) transact(ctx context.Context, amount float64, topic string, apply func(*domain.Account, float64)) (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var snapshot domain.Account
	err := s.engine.reg.Update(s.index, func(acct *domain.Account) error {
		next := *acct
		apply(&next, amount)
		if err := domain.ValidateBalance(next.Balance); err != nil {
			return err
		}
		*acct = next
		snapshot = next
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.engine.log.Info().
		Str("session_id", s.ID.String()).
		Str("topic", topic).
		Float64("amount", amount).
		Msg("Transaction applied")
	s.engine.publish(ctx, topic, accountEvent(s.ID, s.index, snapshot, amount))
	return snapshot.Balance, nil
}

// Balance returns the current balance.
func (s *Session) Balance() (float64, error) {
	acct, err := s.account()
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// Statistics returns min, max and average of the last five transactions.
func (s *Session) Statistics() (domain.Statistics, error) {
	acct, err := s.account()
	if err != nil {
		return domain.Statistics{}, err
	}
	return acct.Statistics(), nil
}

// History returns the last five transactions, most recent first.
func (s *Session) History() ([domain.HistoryLen]float64, error) {
	acct, err := s.account()
	if err != nil {
		return [domain.HistoryLen]float64{}, err
	}
	return acct.History, nil
}

// Holder returns the names on the account.
func (s *Session) Holder() (string, string, error) {
	acct, err := s.account()
	if err != nil {
		return "", "", err
	}
	return acct.FirstName, acct.LastName, nil
}

// Exit ends the session. Further calls fail with ErrSessionClosed.
func (s *Session) Exit() {
	if s.state == StateAuthenticated {
		s.state = StateExited
		s.engine.log.Info().Str("session_id", s.ID.String()).Msg("Session exited")
	}
}

func (s *Session) account() (domain.Account, error) {
	if err := s.check(); err != nil {
		return domain.Account{}, err
	}
	return s.engine.reg.Get(s.index)
}

// check ends the session once a deletion has shifted the slot it was opened on.
func (s *Session) check() error {
	if s.state != StateAuthenticated {
		return domain.ErrSessionClosed
	}
	if s.engine.reg.Generation() != s.generation {
		s.state = StateExited
		s.engine.log.Info().Str("session_id", s.ID.String()).Msg("Session ended by account deletion")
		return domain.ErrSessionClosed
	}
	return nil
}
