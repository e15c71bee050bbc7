package domain

import (
	"math"
	"strings"
	"unicode"
)

// HistoryLen is the number of transactions an account remembers.
const HistoryLen = 5

// Account is a single bank account held in one registry slot.
type Account struct {
	FirstName string
	LastName  string
	PinDigest int
	Balance   float64
	// History holds the most recent transactions first. Deposits are positive,
	// withdrawals negative, and zero marks an unused entry.
	History [HistoryLen]float64
	// Blocked latches on the first failed PIN check and stays set until Unblock.
	Blocked bool
}

// Statistics summarises the transaction history of an account.
type Statistics struct {
	Min     float64
	Max     float64
	Average float64
	Balance float64
}

// NewAccount creates an empty account for the given holder and PIN digest.
func NewAccount(firstName, lastName string, pinDigest int) *Account {
	return &Account{
		FirstName: firstName,
		LastName:  lastName,
		PinDigest: pinDigest,
	}
}

// IsOwner checks a candidate PIN. A mismatch blocks the account; a match only
// succeeds while the account is not blocked.
func (a *Account) IsOwner(pin int) bool {
	digest, err := EncryptPin(pin)
	if err != nil || digest != a.PinDigest {
		a.Blocked = true
		return false
	}
	return !a.Blocked
}

// Deposit adds amount to the balance and records it. The caller validates amount.
func (a *Account) Deposit(amount float64) {
	a.Balance += amount
	a.record(amount)
}

// Withdraw subtracts amount from the balance and records it as a negative entry.
// There is no overdraft check.
func (a *Account) Withdraw(amount float64) {
	a.Balance -= amount
	a.record(-amount)
}

func (a *Account) record(signed float64) {
	copy(a.History[1:], a.History[:HistoryLen-1])
	a.History[0] = signed
}

// Statistics computes min, max and average over all history entries, unused
// zero entries included.
func (a *Account) Statistics() Statistics {
	st := Statistics{
		Min:     a.History[0],
		Max:     a.History[0],
		Balance: a.Balance,
	}
	var sum float64
	for _, t := range a.History {
		st.Min = math.Min(st.Min, t)
		st.Max = math.Max(st.Max, t)
		sum += t
	}
	st.Average = sum / HistoryLen
	return st
}

// SetBalance overwrites the balance without recording a transaction.
func (a *Account) SetBalance(balance float64) { a.Balance = balance }

// Unblock clears the blocked flag.
func (a *Account) Unblock() { a.Blocked = false }

// ResetPin replaces the stored PIN digest.
func (a *Account) ResetPin(digest int) { a.PinDigest = digest }

// Renamed returns a fresh record for the new holder names that carries over the
// digest, balance and history. The replacement starts unblocked.
func (a *Account) Renamed(firstName, lastName string) *Account {
	return &Account{
		FirstName: firstName,
		LastName:  lastName,
		PinDigest: a.PinDigest,
		Balance:   a.Balance,
		History:   a.History,
	}
}

// ValidateAmount rejects amounts that are not positive finite numbers.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateBalance rejects balances that cannot be written to the accounts file.
func ValidateBalance(balance float64) error {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return ErrBalanceOutOfRange
	}
	return nil
}

// ValidateName rejects holder names that cannot be stored as single fields of
// an account line.
func ValidateName(firstName, lastName string) error {
	for _, n := range []string{firstName, lastName} {
		if n == "" || strings.ContainsFunc(n, unicode.IsSpace) {
			return ErrInvalidName
		}
	}
	return nil
}
