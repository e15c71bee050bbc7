package atm

import (
	"AEBank/internal/core/ports"
	"context"
)

type pinSetup struct {
	op ports.Operator
}

// NewPinSetup returns a PinSource that asks for a PIN and its confirmation until
// both entries match.
func NewPinSetup(op ports.Operator) ports.PinSource {
	return &pinSetup{op: op}
}

func (p *pinSetup) NewPin(ctx context.Context) (int, error) {
	for {
		first, err := ReadPin(ctx, p.op)
		if err != nil {
			return 0, err
		}
		p.op.Say("\nPlease confirm your pin...\n")
		second, err := ReadPin(ctx, p.op)
		if err != nil {
			return 0, err
		}
		if first == second {
			return first, nil
		}
		p.op.Say("They have to match!\n")
	}
}
