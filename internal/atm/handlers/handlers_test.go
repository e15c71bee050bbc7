package handlers

import (
	"AEBank/internal/adapters/eventbus"
	"AEBank/internal/adapters/terminal"
	"AEBank/internal/adapters/textfile"
	"AEBank/internal/atm"
	"AEBank/internal/core/domain"
	"AEBank/internal/core/registry"
	"AEBank/internal/core/session"
	"AEBank/internal/shared/config"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPin int

func (p fixedPin) NewPin(ctx context.Context) (int, error) { return int(p), nil }

type testATM struct {
	machine *atm.Machine
	engine  *session.Engine
	out     *bytes.Buffer
	path    string
}

// newTestATM wires a machine over a scripted console and a temporary accounts file.
func newTestATM(t *testing.T, capacity int, script string) *testATM {
	t.Helper()
	nopLogger := zerolog.Nop()
	cfg := &config.Config{
		AdminFirstName: "4DM1N",
		AdminLastName:  "157R470R",
		HackerCode:     "H4CK3R",
	}

	path := filepath.Join(t.TempDir(), "BankAccounts.txt")
	store := textfile.NewFileStore(path, &nopLogger)
	reg := registry.New(capacity, store, &nopLogger)
	bus := eventbus.NewInMemoryEventBus(&nopLogger)
	engine := session.NewEngine(reg, bus, &nopLogger)

	out := &bytes.Buffer{}
	prompter := terminal.NewPrompter(strings.NewReader(script), out, &nopLogger)
	return &testATM{
		machine: atm.NewMachine(cfg, engine, prompter, &nopLogger),
		engine:  engine,
		out:     out,
		path:    path,
	}
}

func (a *testATM) seed(t *testing.T, first, last string, pin int) int {
	t.Helper()
	index, err := a.engine.OpenAccount(context.Background(), first, last, fixedPin(pin))
	require.NoError(t, err)
	return index
}

func TestMachine_CreateDepositAndSave(t *testing.T) {
	ctx := context.Background()
	a := newTestATM(t, 3, "Ann Lee\nY\n1234\n1234\n1234\nD\n100\nC\nE\nQuit Quit\n")

	require.NoError(t, a.machine.Run(ctx))
	require.NoError(t, a.engine.Save(ctx))

	out := a.out.String()
	assert.Contains(t, out, "No account was found under your name, but you can set one up right now.")
	assert.Contains(t, out, "Account created successfully!")
	assert.Contains(t, out, "Your new balance is: 100.00")
	assert.Contains(t, out, "Your current balance is: 100.00")

	// The newest account takes the highest free slot.
	index, ok := a.engine.Registry().FindByName("Ann", "Lee")
	require.True(t, ok)
	assert.Equal(t, 2, index)

	digest, err := domain.EncryptPin(1234)
	require.NoError(t, err)
	data, err := os.ReadFile(a.path)
	require.NoError(t, err)
	assert.Equal(t,
		"AEBank-AccountsFileIsValid-MaxAccounts:3\nAnn Lee "+strconv.Itoa(digest)+" 100 100 0 0 0 0\n",
		string(data))
}

func TestMachine_DeclineAccountCreation(t *testing.T) {
	a := newTestATM(t, 3, "Ann Lee\nNo\nQuit Quit\n")

	require.NoError(t, a.machine.Run(context.Background()))

	assert.Equal(t, 0, a.engine.Registry().Len())
}

func TestMachine_NoSpaceForNewAccount(t *testing.T) {
	a := newTestATM(t, 1, "Ben Kay\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	assert.Contains(t, a.out.String(), "and no space is available at the moment.")
}

func TestMachine_WrongPinBlocksUntilAdminUnblocks(t *testing.T) {
	a := newTestATM(t, 1,
		"Ann Lee\n9999\n"+
			"Ann Lee\n1234\n"+
			"4DM1N 157R470R\n0\nU\nE\nQuit\n"+
			"Ann Lee\n1234\nC\nE\n"+
			"Quit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	out := a.out.String()
	assert.Equal(t, 2, strings.Count(out, "You inputted the wrong pin!"))
	assert.Contains(t, out, "Account unblocked.")
	assert.Contains(t, out, "Your current balance is: 0.00")
}

func TestMachine_InvalidPinIsReprompted(t *testing.T) {
	a := newTestATM(t, 1, "Ann Lee\n1\nabc\n1234\nE\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	out := a.out.String()
	assert.Equal(t, 2, strings.Count(out, "Invalid pin. "))
	assert.NotContains(t, out, "You inputted the wrong pin!")
}

func TestMachine_HackerCodeShowsReport(t *testing.T) {
	a := newTestATM(t, 2, "Ann Lee\n1234\nW\n5\nh4ck3r\nE\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)
	a.seed(t, "Ben", "Kay", 4321)

	require.NoError(t, a.machine.Run(context.Background()))

	out := a.out.String()
	ben := strings.Index(out, "Account: Ben Kay")
	ann := strings.Index(out, "Account: Ann Lee")
	require.NotEqual(t, -1, ben)
	require.NotEqual(t, -1, ann)
	assert.Less(t, ben, ann, "higher balance is listed first")
	assert.Contains(t, out, "Current balance:     -5.00")
}

func TestMachine_HiddenOptionsAreNotListed(t *testing.T) {
	a := newTestATM(t, 1, "Ann Lee\n1234\nE\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	assert.Contains(t, a.out.String(), "Please select a transaction:\n\n"+
		"  D eposit\n"+
		"  W ithdraw\n"+
		"  C heck balance\n"+
		"  S tatistics\n"+
		"  V iew last 5 transactions\n"+
		"  E xit\n\n")
}

func TestMachine_AdminRenameAndSetBalance(t *testing.T) {
	a := newTestATM(t, 1, "4DM1N 157R470R\nx\n7\n0\nS\n42.5\nN\nAnna\nLeigh\nE\nQuit\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	acct, err := a.engine.Registry().Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Anna", acct.FirstName)
	assert.Equal(t, "Leigh", acct.LastName)
	assert.Equal(t, 42.5, acct.Balance)

	out := a.out.String()
	assert.Contains(t, out, "Invalid input. ")
	assert.Contains(t, out, "Invalid number. ")
}

func TestMachine_AdminPinChange(t *testing.T) {
	a := newTestATM(t, 1, "4DM1N 157R470R\n0\nP\n1111\n2222\n3333\n3333\nR\n3333\nE\nE\nQuit\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	out := a.out.String()
	assert.Contains(t, out, "They have to match!")
	assert.NotContains(t, out, "You inputted the wrong pin!")
	acct, err := a.engine.Registry().Get(0)
	require.NoError(t, err)
	assert.False(t, acct.Blocked)
}

func TestMachine_AdminDeleteEndsOpenSession(t *testing.T) {
	a := newTestATM(t, 1, "Ann Lee\n1234\nA\n0\nD\nW\n5\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(context.Background()))

	out := a.out.String()
	assert.Contains(t, out, "Account deleted.")
	assert.Contains(t, out, "There are no accounts.")
	assert.Contains(t, out, "This account is no longer available.")
	assert.Equal(t, 0, a.engine.Registry().Len())
}

func TestMachine_EndOfInputIsNotAnError(t *testing.T) {
	a := newTestATM(t, 1, "Ann Lee\n1234\nD\n")
	a.seed(t, "Ann", "Lee", 1234)

	assert.NoError(t, a.machine.Run(context.Background()))
}

func TestMachine_NestedDeleteInvalidatesAdminSelection(t *testing.T) {
	a := newTestATM(t, 2,
		"4DM1N 157R470R\n0\n"+
			// Regular menu for Yul, then a nested admin deletes Yul.
			"R\n2222\nA\n0\nD\nQuit\nE\n"+
			// Back in the outer admin menu the old selection must not reach Xan.
			"S\n999\nQuit\nQuit Quit\n")
	xan := a.seed(t, "Xan", "One", 1111)
	yul := a.seed(t, "Yul", "Two", 2222)
	require.Equal(t, 1, xan)
	require.Equal(t, 0, yul)

	require.NoError(t, a.machine.Run(context.Background()))

	acct, err := a.engine.Registry().Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Xan", acct.FirstName)
	assert.Equal(t, 0.0, acct.Balance)
	assert.Contains(t, a.out.String(), "This account is no longer available.")
}

func TestMachine_OverflowingDepositKeepsFileReadable(t *testing.T) {
	ctx := context.Background()
	a := newTestATM(t, 1, "Ann Lee\n1234\nD\n1e308\nD\n1e308\nE\nQuit Quit\n")
	a.seed(t, "Ann", "Lee", 1234)

	require.NoError(t, a.machine.Run(ctx))
	require.NoError(t, a.engine.Save(ctx))

	assert.Contains(t, a.out.String(), "That would put the balance out of range.")

	nopLogger := zerolog.Nop()
	reloaded, err := registry.Load(ctx, textfile.NewFileStore(a.path, &nopLogger), 1, &nopLogger)
	require.NoError(t, err)
	acct, err := reloaded.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1e308, acct.Balance)
}
