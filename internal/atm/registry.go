package atm

import (
	"AEBank/internal/core/ports"
	"AEBank/internal/core/session"
	"AEBank/internal/shared/config"
	"context"

	"github.com/rs/zerolog"
)

// Outcome tells a menu whether to keep prompting after a handler ran.
type Outcome int

const (
	Stay Outcome = iota
	Leave
)

// Request carries the state a menu option works on.
type Request struct {
	// Session is set in the account menu.
	Session *session.Session
	// Admin is set in the admin menu.
	Admin *session.Admin
	// Index is the slot the menu was opened for.
	Index   int
	Machine *Machine
}

// OptionHandler is the "plugin" interface for a single letter menu option.
type OptionHandler interface {
	// Code returns the upper-case letter that selects the option.
	Code() string
	// Label returns the menu line, or "" for a hidden option.
	Label() string
	Handle(ctx context.Context, req *Request) (Outcome, error)
}

// Deps are passed from the machine to every handler constructor.
type Deps struct {
	Cfg      *config.Config
	Engine   *session.Engine
	Operator ports.Operator
	Log      *zerolog.Logger
}

// OptionHandlerConstructor builds a handler from its dependencies.
type OptionHandlerConstructor func(deps Deps) OptionHandler

var (
	accountOptions []OptionHandlerConstructor
	adminOptions   []OptionHandlerConstructor
)

// RegisterAccountOption is called by account menu handlers in their init() function
func RegisterAccountOption(constructor OptionHandlerConstructor) {
	accountOptions = append(accountOptions, constructor)
}

// RegisterAdminOption is called by admin menu handlers in their init() function
func RegisterAdminOption(constructor OptionHandlerConstructor) {
	adminOptions = append(adminOptions, constructor)
}

func buildHandlers(constructors []OptionHandlerConstructor, deps Deps) []OptionHandler {
	out := make([]OptionHandler, 0, len(constructors))
	for _, constructor := range constructors {
		out = append(out, constructor(deps))
	}
	return out
}
