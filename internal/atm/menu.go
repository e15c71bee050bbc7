package atm

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/ports"
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Menu routes single-letter choices to the registered option handlers.
type Menu struct {
	name     string
	title    string
	op       ports.Operator
	handlers map[string]OptionHandler
	order    []string
	aliases  map[string]string
	log      zerolog.Logger
}

// NewMenu creates a menu. Options are listed in the given display order; any
// registered code missing from order is appended alphabetically.
func NewMenu(name, title string, op ports.Operator, order []string, baseLogger *zerolog.Logger) *Menu {
	return &Menu{
		name:     name,
		title:    title,
		op:       op,
		handlers: make(map[string]OptionHandler),
		order:    order,
		aliases:  make(map[string]string),
		log:      baseLogger.With().Str("component", "menu").Str("menu", name).Logger(),
	}
}

// Register adds a "plugin" to the menu.
func (m *Menu) Register(handler OptionHandler) {
	code := strings.ToUpper(handler.Code())
	m.handlers[code] = handler
	m.log.Debug().Str("code", code).Msg("Registered menu option")
}

// Alias makes a whole typed word select code.
func (m *Menu) Alias(word, code string) {
	m.aliases[strings.ToUpper(word)] = strings.ToUpper(code)
}

// Codes returns the registered codes in display order.
func (m *Menu) Codes() []string {
	seen := make(map[string]bool, len(m.handlers))
	var codes []string
	for _, c := range m.order {
		if _, ok := m.handlers[c]; ok && !seen[c] {
			codes = append(codes, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range m.handlers {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(codes, rest...)
}

// Run prompts until a handler asks to leave. Invalid input errors are reported
// and the prompt repeats; a closed session ends the menu.
func (m *Menu) Run(ctx context.Context, req *Request) error {
	for {
		m.op.Say(Divisor)
		code, err := m.choose(ctx)
		if err != nil {
			return err
		}

		handler := m.handlers[code]
		m.log.Debug().Str("code", code).Int("index", req.Index).Msg("Routing to option handler")
		outcome, err := handler.Handle(ctx, req)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrSessionClosed), errors.Is(err, domain.ErrNotFound):
			m.op.Say("\nThis account is no longer available.\n")
			return nil
		case recoverable(err):
			m.op.Say("\n" + Describe(err) + "\n")
			continue
		default:
			m.log.Error().Err(err).Str("code", code).Msg("Option handler failed")
			return err
		}
		if outcome == Leave {
			return nil
		}
	}
}

func (m *Menu) choose(ctx context.Context) (string, error) {
	prompt := m.title + ":\n\n" + m.listing()
	for {
		token, err := m.op.ReadToken(ctx, prompt)
		if err != nil {
			return "", err
		}
		token = strings.ToUpper(token)
		if code, ok := m.aliases[token]; ok {
			if _, registered := m.handlers[code]; registered {
				return code, nil
			}
		}
		if token != "" {
			if _, ok := m.handlers[token[:1]]; ok {
				return token[:1], nil
			}
		}
		prompt = "Please select one of the following options:\n\n" + m.listing()
	}
}

func (m *Menu) listing() string {
	var b strings.Builder
	for _, code := range m.Codes() {
		if label := m.handlers[code].Label(); label != "" {
			b.WriteString("  " + label + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func recoverable(err error) bool {
	return errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrInvalidPin) ||
		errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrNoCapacity) ||
		errors.Is(err, domain.ErrFormat)
}

// Describe turns a core error into a message for the operator.
func Describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrBalanceOutOfRange):
		return "That would put the balance out of range."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "The amount must be a positive number."
	case errors.Is(err, domain.ErrInvalidPin):
		return "Invalid pin."
	case errors.Is(err, domain.ErrInvalidName):
		return "Names must be single words."
	case errors.Is(err, domain.ErrNoCapacity):
		return "No space is available at the moment."
	case errors.Is(err, domain.ErrNotFound):
		return "No such account."
	case errors.Is(err, domain.ErrAuthenticationBlocked):
		return BlockedMessage
	default:
		return "An internal error occurred."
	}
}
