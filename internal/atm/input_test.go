package atm

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/registry"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPin int

func (p fixedPin) NewPin(ctx context.Context) (int, error) { return int(p), nil }

func TestReadPin(t *testing.T) {
	op := newScriptedOperator("abc 1 10000 2")

	pin, err := ReadPin(context.Background(), op)

	require.NoError(t, err)
	assert.Equal(t, 2, pin)
	assert.Equal(t, 3, strings.Count(op.out.String(), "Invalid pin. "))
}

func TestReadPositiveAmount(t *testing.T) {
	op := newScriptedOperator("ten -5 0 NaN Inf 12.5")

	v, err := ReadPositiveAmount(context.Background(), op, "How much? ")

	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
}

func TestReadNumber_AcceptsNegative(t *testing.T) {
	op := newScriptedOperator("-3.25")

	v, err := ReadNumber(context.Background(), op, "")

	require.NoError(t, err)
	assert.Equal(t, -3.25, v)
}

func TestReadYesNo(t *testing.T) {
	ctx := context.Background()

	yes, err := ReadYesNo(ctx, newScriptedOperator("maybe yes"), "")
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := ReadYesNo(ctx, newScriptedOperator("nope"), "")
	require.NoError(t, err)
	assert.False(t, no)

	_, err = ReadYesNo(ctx, newScriptedOperator(""), "")
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadAccountNumber(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	reg := registry.New(3, nil, &nopLogger)

	t.Run("empty registry", func(t *testing.T) {
		op := newScriptedOperator("0")
		_, ok, err := ReadAccountNumber(ctx, op, reg)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, op.out.String(), "There are no accounts.")
	})

	index, err := reg.CreateAccount(ctx, "Ann", "Lee", fixedPin(1234))
	require.NoError(t, err)

	t.Run("occupied slot", func(t *testing.T) {
		op := newScriptedOperator("one 0 " + strconv.Itoa(index))
		got, ok, err := ReadAccountNumber(ctx, op, reg)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, index, got)
		assert.Contains(t, op.out.String(), "Invalid input. ")
		assert.Contains(t, op.out.String(), "Invalid number. ")
	})

	t.Run("quit", func(t *testing.T) {
		_, ok, err := ReadAccountNumber(ctx, newScriptedOperator("Quit"), reg)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPinSetup_RequiresMatchingEntries(t *testing.T) {
	op := newScriptedOperator("1234 4321 5555 5555")

	pin, err := NewPinSetup(op).NewPin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5555, pin)
	assert.Contains(t, op.out.String(), "They have to match!")
}

func TestRenderStatistics(t *testing.T) {
	acct := &domain.Account{Balance: 50}
	acct.Deposit(100)
	acct.Withdraw(50)

	assert.Equal(t,
		"Minimum transaction: -50.00\n"+
			"Maximum transaction: 100.00\n"+
			"Average transaction: 10.00\n"+
			"Current balance:     100.00\n",
		RenderStatistics(acct.Statistics()))
}
