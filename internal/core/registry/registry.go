// Package registry holds the fixed-capacity, slot-ordered collection of accounts.
//
// A slot index is the account number shown to the operator. The registry owns
// every record: callers keep an index and go through the registry for each
// operation. All methods take a single registry-wide lock.
package registry

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"context"
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// NoSlot is returned in place of an index when no slot applies.
const NoSlot = -1

// Slot is a copy of an occupied slot.
type Slot struct {
	Index   int
	Account domain.Account
}

// Registry is the in-memory account table.
type Registry struct {
	mu    sync.Mutex
	slots []*domain.Account
	// deletions counts DeleteAt calls; any index taken before a deletion may now
	// point at a different account.
	deletions uint64
	store     ports.AccountStore
	log       zerolog.Logger
}

// New creates an empty registry with a fixed capacity.
func New(capacity int, store ports.AccountStore, baseLogger *zerolog.Logger) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{
		slots: make([]*domain.Account, capacity),
		store: store,
		log:   baseLogger.With().Str("component", "registry").Logger(),
	}
}

// Load builds the registry from the store.
//
// A missing accounts file yields an empty registry of defaultCapacity and no
// error. A format error still yields a registry holding the accounts parsed
// before the bad line; the error is returned alongside it. Any other store
// error is returned with a nil registry.
func Load(ctx context.Context, store ports.AccountStore, defaultCapacity int, baseLogger *zerolog.Logger) (*Registry, error) {
	capacity, accounts, err := store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		capacity, accounts, err = defaultCapacity, nil, nil
	case errors.Is(err, domain.ErrFormat):
		if capacity == 0 && len(accounts) == 0 {
			capacity = defaultCapacity
		}
	default:
		return nil, err
	}

	r := New(capacity, store, baseLogger)
	for i, acct := range accounts {
		if i >= len(r.slots) {
			break
		}
		r.slots[i] = acct
	}

	if err != nil {
		r.log.Warn().Err(err).Int("capacity", capacity).Int("accounts", len(accounts)).
			Msg("Registry loaded from a partially readable accounts file")
		return r, err
	}
	r.log.Info().Int("capacity", capacity).Int("accounts", len(accounts)).Msg("Registry loaded")
	return r, nil
}

// Save writes every occupied slot, in slot order, to the store.
func (r *Registry) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]*domain.Account, 0, len(r.slots))
	for _, acct := range r.slots {
		if acct != nil {
			accounts = append(accounts, acct)
		}
	}
	if err := r.store.Save(ctx, len(r.slots), accounts); err != nil {
		r.log.Error().Err(err).Msg("Failed to save registry")
		return err
	}
	return nil
}

// Capacity returns the fixed number of slots.
func (r *Registry) Capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Generation changes every time a deletion shifts slots.
func (r *Registry) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deletions
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, acct := range r.slots {
		if acct != nil {
			n++
		}
	}
	return n
}

// FindByName returns the first slot whose holder matches both names exactly.
func (r *Registry) FindByName(firstName, lastName string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, acct := range r.slots {
		if acct != nil && acct.FirstName == firstName && acct.LastName == lastName {
			return i, true
		}
	}
	return NoSlot, false
}

// FirstFreeSlot scans forward and returns the last empty slot it saw, which is
// the highest-indexed empty slot.
func (r *Registry) FirstFreeSlot() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.freeSlotLocked()
}

func (r *Registry) freeSlotLocked() (int, bool) {
	free := NoSlot
	for i, acct := range r.slots {
		if acct == nil {
			free = i
		}
	}
	return free, free != NoSlot
}

// HasFreeSlot reports whether any slot is empty.
func (r *Registry) HasFreeSlot() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acct := range r.slots {
		if acct == nil {
			return true
		}
	}
	return false
}

// CreateAccount installs a new account in the slot chosen by FirstFreeSlot.
// The PIN is requested from pins only when there is room. A full registry
// returns NoSlot and ErrNoCapacity.
func (r *Registry) CreateAccount(ctx context.Context, firstName, lastName string, pins ports.PinSource) (int, error) {
	if err := domain.ValidateName(firstName, lastName); err != nil {
		return NoSlot, err
	}
	if !r.HasFreeSlot() {
		return NoSlot, domain.ErrNoCapacity
	}

	pin, err := pins.NewPin(ctx)
	if err != nil {
		return NoSlot, err
	}
	digest, err := domain.EncryptPin(pin)
	if err != nil {
		return NoSlot, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	index, ok := r.freeSlotLocked()
	if !ok {
		return NoSlot, domain.ErrNoCapacity
	}
	r.slots[index] = domain.NewAccount(firstName, lastName, digest)
	r.log.Info().Int("index", index).Msg("Account created")
	return index, nil
}

// DeleteAt removes the account at index and moves every later slot down by one,
// leaving the last slot empty.
func (r *Registry) DeleteAt(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.occupiedLocked(index); err != nil {
		return err
	}
	copy(r.slots[index:], r.slots[index+1:])
	r.slots[len(r.slots)-1] = nil
	r.deletions++
	r.log.Info().Int("index", index).Msg("Account deleted")
	return nil
}

// Get returns a copy of the account at index.
func (r *Registry) Get(index int) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, err := r.occupiedLocked(index)
	if err != nil {
		return domain.Account{}, err
	}
	return *acct, nil
}

// Update runs fn against the account at index while holding the registry lock.
// fn must not keep the pointer.
func (r *Registry) Update(index int, fn func(acct *domain.Account) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, err := r.occupiedLocked(index)
	if err != nil {
		return err
	}
	return fn(acct)
}

// Replace swaps the record in an occupied slot for a new one.
func (r *Registry) Replace(index int, acct *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.occupiedLocked(index); err != nil {
		return err
	}
	r.slots[index] = acct
	return nil
}

// Occupied returns copies of all occupied slots in slot order.
func (r *Registry) Occupied() []Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Slot, 0, len(r.slots))
	for i, acct := range r.slots {
		if acct != nil {
			out = append(out, Slot{Index: i, Account: *acct})
		}
	}
	return out
}

func (r *Registry) occupiedLocked(index int) (*domain.Account, error) {
	if index < 0 || index >= len(r.slots) || r.slots[index] == nil {
		return nil, domain.ErrNotFound
	}
	return r.slots[index], nil
}
