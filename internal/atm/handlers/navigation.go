package handlers

import (
	"AEBank/internal/atm"
	"AEBank/internal/core/ports"
	"AEBank/internal/core/session"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	atm.RegisterAccountOption(NewExitHandler)
	atm.RegisterAccountOption(NewReportHandler)
	atm.RegisterAccountOption(NewAdminEntryHandler)
}

type exitHandler struct{}

// NewExitHandler creates the E option of the account menu.
func NewExitHandler(deps atm.Deps) atm.OptionHandler {
	return exitHandler{}
}

func (exitHandler) Code() string  { return "E" }
func (exitHandler) Label() string { return "E xit" }

func (exitHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	req.Session.Exit()
	return atm.Leave, nil
}

// reportHandler prints every account ordered by balance. It is hidden from the
// menu and also reached by typing the hacker code.
type reportHandler struct {
	log    zerolog.Logger
	engine *session.Engine
	op     ports.Operator
}

func NewReportHandler(deps atm.Deps) atm.OptionHandler {
	return &reportHandler{
		log:    deps.Log.With().Str("component", "report_handler").Logger(),
		engine: deps.Engine,
		op:     deps.Operator,
	}
}

func (h *reportHandler) Code() string  { return "H" }
func (h *reportHandler) Label() string { return "" }

func (h *reportHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	h.log.Warn().Int("index", req.Index).Msg("Balance report requested from account menu")
	h.op.Say(atm.RenderReport(h.engine.Report(ctx)))
	return atm.Stay, nil
}

type adminEntryHandler struct{}

// NewAdminEntryHandler creates the hidden A option, which opens the admin menu.
func NewAdminEntryHandler(deps atm.Deps) atm.OptionHandler {
	return adminEntryHandler{}
}

func (adminEntryHandler) Code() string  { return "A" }
func (adminEntryHandler) Label() string { return "" }

func (adminEntryHandler) Handle(ctx context.Context, req *atm.Request) (atm.Outcome, error) {
	return atm.Stay, req.Machine.RunAdmin(ctx)
}
