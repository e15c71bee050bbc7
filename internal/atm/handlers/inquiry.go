package handlers

import (
	"AEBank/internal/atm"
	"AEBank/internal/core/ports"
	"context"
)

func init() {
	atm.RegisterAccountOption(NewBalanceHandler)
	atm.RegisterAccountOption(NewStatisticsHandler)
	atm.RegisterAccountOption(NewHistoryHandler)
}

type balanceHandler struct {
	op ports.Operator
}

// NewBalanceHandler creates the C option, which shows the current balance.
func NewBalanceHandler(deps atm.Deps) atm.OptionHandler {
	return &balanceHandler{op: deps.Operator}
}

func (h *balanceHandler) Code() string  { return "C" }
func (h *balanceHandler) Label() string { return "C heck balance" }

func (h *balanceHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	balance, err := req.Session.Balance()
	if err != nil {
		return atm.Stay, err
	}
	h.op.Say("Your current balance is: " + atm.Money(balance) + "\n")
	return atm.Stay, nil
}

type statisticsHandler struct {
	op ports.Operator
}

// NewStatisticsHandler creates the S option.
func NewStatisticsHandler(deps atm.Deps) atm.OptionHandler {
	return &statisticsHandler{op: deps.Operator}
}

func (h *statisticsHandler) Code() string  { return "S" }
func (h *statisticsHandler) Label() string { return "S tatistics" }

func (h *statisticsHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	st, err := req.Session.Statistics()
	if err != nil {
		return atm.Stay, err
	}
	h.op.Say(atm.RenderStatistics(st))
	return atm.Stay, nil
}

type historyHandler struct {
	op ports.Operator
}

// NewHistoryHandler creates the V option, which lists the last transactions.
func NewHistoryHandler(deps atm.Deps) atm.OptionHandler {
	return &historyHandler{op: deps.Operator}
}

func (h *historyHandler) Code() string  { return "V" }
func (h *historyHandler) Label() string { return "V iew last 5 transactions" }

func (h *historyHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	history, err := req.Session.History()
	if err != nil {
		return atm.Stay, err
	}
	h.op.Say(atm.RenderHistory(history))
	return atm.Stay, nil
}
