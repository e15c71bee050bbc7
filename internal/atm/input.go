package atm

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"AEBank/internal/core/registry"
	"context"
	"math"
	"strconv"
	"strings"
)

// QuitWord ends the account number prompt and, typed as both names, the program.
const QuitWord = "Quit"

// ReadPin asks until the operator types an integer PIN in [2, 9999].
func ReadPin(ctx context.Context, op ports.Operator) (int, error) {
	for {
		raw, err := op.ReadSecret(ctx, "Please input your pin: ")
		if err != nil {
			return 0, err
		}
		pin, err := strconv.Atoi(raw)
		if err == nil && domain.ValidPin(pin) {
			return pin, nil
		}
		op.Say("Invalid pin. ")
	}
}

// ReadPositiveAmount asks until the operator types a positive finite number.
func ReadPositiveAmount(ctx context.Context, op ports.Operator, prompt string) (float64, error) {
	for {
		v, err := ReadNumber(ctx, op, prompt)
		if err != nil {
			return 0, err
		}
		if domain.ValidateAmount(v) == nil {
			return v, nil
		}
	}
}

// ReadNumber asks until the operator types a finite number.
func ReadNumber(ctx context.Context, op ports.Operator, prompt string) (float64, error) {
	for {
		raw, err := op.ReadToken(ctx, prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
	}
}

// ReadYesNo asks until the operator answers with a word starting with Y or N.
func ReadYesNo(ctx context.Context, op ports.Operator, prompt string) (bool, error) {
	for {
		raw, err := op.ReadToken(ctx, prompt)
		if err != nil {
			return false, err
		}
		switch {
		case strings.HasPrefix(strings.ToUpper(raw), "Y"):
			return true, nil
		case strings.HasPrefix(strings.ToUpper(raw), "N"):
			return false, nil
		}
	}
}

// ReadAccountNumber asks for the index of an occupied slot. It returns false
// when the operator types QuitWord or there are no accounts at all.
func ReadAccountNumber(ctx context.Context, op ports.Operator, reg *registry.Registry) (int, bool, error) {
	if reg.Len() == 0 {
		op.Say("There are no accounts.\n")
		return registry.NoSlot, false, nil
	}
	for {
		raw, err := op.ReadToken(ctx, "Please input the account number: ")
		if err != nil {
			return registry.NoSlot, false, err
		}
		if raw == QuitWord {
			return registry.NoSlot, false, nil
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			op.Say("Invalid input. ")
			continue
		}
		if _, err := reg.Get(index); err != nil {
			op.Say("Invalid number. ")
			continue
		}
		return index, true, nil
	}
}
