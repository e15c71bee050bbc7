// Package terminal talks to the person at the ATM through a text console.
package terminal

import (
	"AEBank/internal/core/ports"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var _ ports.Operator = (*Prompter)(nil) // Ensure compliance

// Prompter reads whitespace-delimited tokens from in and writes prompts to out.
// Input is consumed a line at a time; tokens typed ahead on a line are queued
// and handed out before anything else is read.
type Prompter struct {
	reader  *bufio.Reader
	pending []string
	out     io.Writer
	fd      int
	secret  bool
	log     zerolog.Logger
}

// NewPrompter creates an operator over in and out. When in is a terminal, secret
// input is read without echo.
func NewPrompter(in io.Reader, out io.Writer, baseLogger *zerolog.Logger) *Prompter {
	p := &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
		fd:     -1,
		log:    baseLogger.With().Str("component", "terminal_prompter").Logger(),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.secret = true
	}
	return p
}

// Say writes text as is.
func (p *Prompter) Say(text string) {
	fmt.Fprint(p.out, text)
}

// ReadToken shows prompt and returns the next token. It returns io.EOF once the
// input is exhausted.
func (p *Prompter) ReadToken(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	for len(p.pending) == 0 {
		if err := p.fill(); err != nil {
			return "", err
		}
	}
	return p.next(), nil
}

// ReadSecret shows prompt and reads one line without echo on a terminal. A token
// already typed ahead is used as is. On anything else it behaves like ReadToken.
func (p *Prompter) ReadSecret(ctx context.Context, prompt string) (string, error) {
	if !p.secret || len(p.pending) > 0 {
		return p.ReadToken(ctx, prompt)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprint(p.out, "\n")
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to read secret input")
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// fill queues the tokens of the next input line.
func (p *Prompter) fill() error {
	line, err := p.reader.ReadString('\n')
	p.pending = append(p.pending, strings.Fields(line)...)
	if err == nil {
		return nil
	}
	if len(p.pending) > 0 && errors.Is(err, io.EOF) {
		return nil
	}
	if !errors.Is(err, io.EOF) {
		p.log.Error().Err(err).Msg("Failed to read operator input")
	}
	return err
}

func (p *Prompter) next() string {
	tok := p.pending[0]
	p.pending = p.pending[1:]
	return tok
}
