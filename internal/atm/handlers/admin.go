package handlers

import (
	"AEBank/internal/atm"
	"AEBank/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	atm.RegisterAdminOption(NewSetBalanceHandler)
	atm.RegisterAdminOption(NewPinChangeHandler)
	atm.RegisterAdminOption(NewRenameHandler)
	atm.RegisterAdminOption(NewUnblockHandler)
	atm.RegisterAdminOption(NewRegularMenuHandler)
	atm.RegisterAdminOption(NewDeleteHandler)
	atm.RegisterAdminOption(NewAdminExitHandler)
}

type setBalanceHandler struct {
	op ports.Operator
}

// NewSetBalanceHandler creates the S admin option.
func NewSetBalanceHandler(deps atm.Deps) atm.OptionHandler {
	return &setBalanceHandler{op: deps.Operator}
}

func (h *setBalanceHandler) Code() string  { return "S" }
func (h *setBalanceHandler) Label() string { return "S et balance" }

func (h *setBalanceHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	balance, err := atm.ReadNumber(ctx, h.op, "What is the new balance?\n")
	if err != nil {
		return atm.Stay, err
	}
	return atm.Stay, req.Admin.SetBalance(ctx, req.Index, balance)
}

type pinChangeHandler struct {
	op ports.Operator
}

// NewPinChangeHandler creates the P admin option.
func NewPinChangeHandler(deps atm.Deps) atm.OptionHandler {
	return &pinChangeHandler{op: deps.Operator}
}

func (h *pinChangeHandler) Code() string  { return "P" }
func (h *pinChangeHandler) Label() string { return "P in change" }

func (h *pinChangeHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	pin, err := atm.NewPinSetup(h.op).NewPin(ctx)
	if err != nil {
		return atm.Stay, err
	}
	return atm.Stay, req.Admin.ResetPin(ctx, req.Index, pin)
}

type renameHandler struct {
	op ports.Operator
}

// NewRenameHandler creates the N admin option.
func NewRenameHandler(deps atm.Deps) atm.OptionHandler {
	return &renameHandler{op: deps.Operator}
}

func (h *renameHandler) Code() string  { return "N" }
func (h *renameHandler) Label() string { return "N ames change" }

func (h *renameHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	first, err := h.op.ReadToken(ctx, "What is the new first name? ")
	if err != nil {
		return atm.Stay, err
	}
	last, err := h.op.ReadToken(ctx, "What is the new last name? ")
	if err != nil {
		return atm.Stay, err
	}
	return atm.Stay, req.Admin.Rename(ctx, req.Index, first, last)
}

type unblockHandler struct {
	op ports.Operator
}

// NewUnblockHandler creates the U admin option.
func NewUnblockHandler(deps atm.Deps) atm.OptionHandler {
	return &unblockHandler{op: deps.Operator}
}

func (h *unblockHandler) Code() string  { return "U" }
func (h *unblockHandler) Label() string { return "U nblock account" }

func (h *unblockHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	if err := req.Admin.Unblock(ctx, req.Index); err != nil {
		return atm.Stay, err
	}
	h.op.Say("Account unblocked.\n")
	return atm.Stay, nil
}

type regularMenuHandler struct{}

// NewRegularMenuHandler creates the R admin option, which runs the customer menu
// for the selected account after a PIN check.
func NewRegularMenuHandler(deps atm.Deps) atm.OptionHandler {
	return regularMenuHandler{}
}

func (regularMenuHandler) Code() string  { return "R" }
func (regularMenuHandler) Label() string { return "R egular menu" }

func (regularMenuHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	return atm.Stay, req.Machine.RunAccount(ctx, req.Index)
}

type deleteHandler struct {
	log zerolog.Logger
	op  ports.Operator
}

// NewDeleteHandler creates the D admin option. Deleting leaves the menu because
// the selected index now belongs to another account.
func NewDeleteHandler(deps atm.Deps) atm.OptionHandler {
	return &deleteHandler{
		log: deps.Log.With().Str("component", "delete_handler").Logger(),
		op:  deps.Operator,
	}
}

func (h *deleteHandler) Code() string  { return "D" }
func (h *deleteHandler) Label() string { return "D elete account" }

func (h *deleteHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	if err := req.Admin.Delete(ctx, req.Index); err != nil {
		return atm.Stay, err
	}
	h.log.Info().Int("index", req.Index).Msg("Account deleted from admin menu")
	h.op.Say("Account deleted.\n")
	return atm.Leave, nil
}

type adminExitHandler struct{}

// NewAdminExitHandler creates the E admin option.
func NewAdminExitHandler(deps atm.Deps) atm.OptionHandler {
	return adminExitHandler{}
}

func (adminExitHandler) Code() string  { return "E" }
func (adminExitHandler) Label() string { return "E xit" }

func (adminExitHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	return atm.Leave, nil
}
