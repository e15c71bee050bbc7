// Package atm is the console front end of the ATM: the welcome loop, the
// account and admin menus and the operator input rules.
package atm

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"AEBank/internal/core/session"
	"AEBank/internal/shared/config"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Display order of the menus.
var (
	AccountMenuOrder = []string{"D", "W", "C", "S", "V", "E", "H", "A"}
	AdminMenuOrder   = []string{"S", "P", "N", "U", "R", "D", "E"}
)

// Machine is one ATM terminal.
type Machine struct {
	cfg         *config.Config
	engine      *session.Engine
	op          ports.Operator
	accountMenu *Menu
	adminMenu   *Menu
	log         zerolog.Logger
}

// NewMachine builds the terminal and its menus from every registered option.
func NewMachine(cfg *config.Config, engine *session.Engine, op ports.Operator, baseLogger *zerolog.Logger) *Machine {
	m := &Machine{
		cfg:         cfg,
		engine:      engine,
		op:          op,
		accountMenu: NewMenu("account", "Please select a transaction", op, AccountMenuOrder, baseLogger),
		adminMenu:   NewMenu("admin", "Admin options", op, AdminMenuOrder, baseLogger),
		log:         baseLogger.With().Str("component", "atm_machine").Logger(),
	}

	deps := Deps{Cfg: cfg, Engine: engine, Operator: op, Log: baseLogger}
	for _, h := range buildHandlers(accountOptions, deps) {
		m.accountMenu.Register(h)
	}
	for _, h := range buildHandlers(adminOptions, deps) {
		m.adminMenu.Register(h)
	}
	m.accountMenu.Alias(cfg.HackerCode, "H")

	m.log.Info().
		Strs("account_options", m.accountMenu.Codes()).
		Strs("admin_options", m.adminMenu.Codes()).
		Msg("ATM menus ready")
	return m
}

// Run serves customers until both names are QuitWord or the input ends.
func (m *Machine) Run(ctx context.Context) error {
	for {
		m.op.Say(Headline + "Welcome to AEBank's ATM\n")

		first, err := m.op.ReadToken(ctx, "What is your first name? ")
		if err != nil {
			return endOfInput(err)
		}
		last, err := m.op.ReadToken(ctx, "What is your last name? ")
		if err != nil {
			return endOfInput(err)
		}

		switch {
		case first == m.cfg.AdminFirstName && last == m.cfg.AdminLastName:
			m.log.Info().Msg("Admin login")
			err = m.RunAdmin(ctx)
		case first == QuitWord && last == QuitWord:
			m.log.Info().Msg("Quit requested")
			return nil
		default:
			err = m.serveCustomer(ctx, first, last)
		}
		if err != nil {
			return endOfInput(err)
		}
		m.op.Say(Divisor)
	}
}

func (m *Machine) serveCustomer(ctx context.Context, first, last string) error {
	reg := m.engine.Registry()
	if index, ok := reg.FindByName(first, last); ok {
		return m.RunAccount(ctx, index)
	}

	m.op.Say("No account was found under your name")
	if !reg.HasFreeSlot() {
		m.op.Say(", and no space is available at the moment.\n")
		return nil
	}
	m.op.Say(", but you can set one up right now.\n")

	want, err := ReadYesNo(ctx, m.op, "Do you want to create a new one "+first+"? ")
	if err != nil || !want {
		return err
	}

	m.op.Say("A new account is being created for you.\n")
	index, err := m.engine.OpenAccount(ctx, first, last, NewPinSetup(m.op))
	if err != nil {
		if errors.Is(err, domain.ErrNoCapacity) || errors.Is(err, domain.ErrInvalidName) {
			m.op.Say(Describe(err) + "\n")
			return nil
		}
		return err
	}
	m.op.Say("Account created successfully!\n")
	return m.RunAccount(ctx, index)
}

// RunAccount asks for the PIN of the account at index and, if it is accepted,
// runs the account menu until the customer exits.
func (m *Machine) RunAccount(ctx context.Context, index int) error {
	pin, err := ReadPin(ctx, m.op)
	if err != nil {
		return err
	}

	s, err := m.engine.Authenticate(ctx, index, pin)
	if errors.Is(err, domain.ErrAuthenticationBlocked) {
		m.op.Say(BlockedMessage + "\n")
		return nil
	}
	if err != nil {
		m.op.Say(Describe(err) + "\n")
		return nil
	}
	defer s.Exit()

	return m.accountMenu.Run(ctx, &Request{Session: s, Index: index, Machine: m})
}

// RunAdmin repeatedly asks for an account number and runs the admin menu for it.
func (m *Machine) RunAdmin(ctx context.Context) error {
	admin := m.engine.Admin()
	for {
		index, ok, err := ReadAccountNumber(ctx, m.op, m.engine.Registry())
		if err != nil || !ok {
			return err
		}
		if err := admin.Select(index); err != nil {
			m.op.Say(Describe(err) + "\n")
			continue
		}
		if err := m.adminMenu.Run(ctx, &Request{Admin: admin, Index: index, Machine: m}); err != nil {
			return err
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
