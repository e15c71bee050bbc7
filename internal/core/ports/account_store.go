package ports

import (
	"AEBank/internal/core/domain"
	"context"
)

// AccountStore defines where the registry is loaded from and saved to.
type AccountStore interface {
	// Load returns the declared capacity and the accounts in file order.
	// A missing source is reported with an error matching os.ErrNotExist.
	// On a format error it returns the capacity and the accounts parsed so far
	// together with a *domain.FormatError.
	Load(ctx context.Context) (capacity int, accounts []*domain.Account, err error)

	// Save overwrites the destination with the header and the given accounts.
	Save(ctx context.Context, capacity int, accounts []*domain.Account) error
}
