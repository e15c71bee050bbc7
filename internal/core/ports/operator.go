package ports

import "context"

// Operator is the person at the terminal. The core never talks to the console
// directly; everything interactive goes through this interface.
type Operator interface {
	// Say writes text to the operator as is.
	Say(text string)

	// ReadToken shows prompt and returns the next whitespace-delimited token.
	ReadToken(ctx context.Context, prompt string) (string, error)

	// ReadSecret shows prompt and reads a token without echoing it when possible.
	ReadSecret(ctx context.Context, prompt string) (string, error)
}

// PinSource supplies a validated new PIN, e.g. by asking the operator twice.
type PinSource interface {
	NewPin(ctx context.Context) (int, error)
}
