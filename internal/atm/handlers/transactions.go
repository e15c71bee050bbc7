package handlers

import (
	"AEBank/internal/atm"
	"AEBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	atm.RegisterAccountOption(NewDepositHandler)
	atm.RegisterAccountOption(NewWithdrawHandler)
}

// depositHandler is the plugin for the D option.
type depositHandler struct {
	log zerolog.Logger
	op  ports.Operator
}

// NewDepositHandler creates the handler that deposits into the session account.
func NewDepositHandler(deps atm.Deps) atm.OptionHandler {
	return &depositHandler{
		log: deps.Log.With().Str("component", "deposit_handler").Logger(),
		op:  deps.Operator,
	}
}

func (h *depositHandler) Code() string  { return "D" }
func (h *depositHandler) Label() string { return "D eposit" }

func (h *depositHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	h.op.Say("You have selected deposit.\n")
	amount, err := atm.ReadPositiveAmount(ctx, h.op, "How much do you wish to deposit?\n")
	if err != nil {
		return atm.Stay, err
	}
	balance, err := req.Session.Deposit(ctx, amount)
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", req.Session.ID.String()).Msg("Deposit rejected")
		return atm.Stay, err
	}
	h.op.Say("Your new balance is: " + atm.Money(balance) + "\n")
	return atm.Stay, nil
}

// withdrawHandler is the plugin for the W option.
type withdrawHandler struct {
	log zerolog.Logger
	op  ports.Operator
}

// NewWithdrawHandler creates the handler that withdraws from the session account.
func NewWithdrawHandler(deps atm.Deps) atm.OptionHandler {
	return &withdrawHandler{
		log: deps.Log.With().Str("component", "withdraw_handler").Logger(),
		op:  deps.Operator,
	}
}

func (h *withdrawHandler) Code() string  { return "W" }
func (h *withdrawHandler) Label() string { return "W ithdraw" }

func (h *withdrawHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	h.op.Say("You have selected withdraw.\n")
	amount, err := atm.ReadPositiveAmount(ctx, h.op, "How much do you wish to withdraw?\n")
	if err != nil {
		return atm.Stay, err
	}
	balance, err := req.Session.Withdraw(ctx, amount)
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", req.Session.ID.String()).Msg("Withdrawal rejected")
		return atm.Stay, err
	}
	h.op.Say("Your new balance is: " + atm.Money(balance) + "\n")
	return atm.Stay, nil
}
