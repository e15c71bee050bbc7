package textfile

import (
	"AEBank/internal/core/domain"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAccount_FieldOrder(t *testing.T) {
	acct := domain.NewAccount("Ann", "Lee", 25)
	acct.Balance = 150
	acct.History = [domain.HistoryLen]float64{50, 100, -12.5, 0, 0}

	assert.Equal(t, "Ann Lee 25 150 50 100 -12.5 0 0", FormatAccount(acct))
}

func TestParseAccount_InverseOfFormat(t *testing.T) {
	acct := domain.NewAccount("Ben", "Ng", 9876)
	acct.Balance = -0.1
	acct.History = [domain.HistoryLen]float64{-0.1, 1e-7, 123456789.25, 3, -4}

	parsed, err := ParseAccount(2, FormatAccount(acct))
	require.NoError(t, err)
	assert.Equal(t, acct, parsed)
}

func TestParseAccount_AcceptsJavaStyleNumbers(t *testing.T) {
	parsed, err := ParseAccount(2, "Ann Lee 25 150.0 50.0 100.0 0.0 0.0 1.0E2")
	require.NoError(t, err)
	assert.Equal(t, 150.0, parsed.Balance)
	assert.Equal(t, [domain.HistoryLen]float64{50, 100, 0, 0, 100}, parsed.History)
}

func TestParseAccount_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		reason string
	}{
		{name: "too few fields", line: "Ann Lee 25 150 50 100 0 0", reason: "expected 9 fields, got 8"},
		{name: "too many fields", line: "Ann Lee 25 150 50 100 0 0 0 7", reason: "expected 9 fields, got 10"},
		{name: "bad digest", line: "Ann Lee x 150 50 100 0 0 0", reason: "invalid pin digest"},
		{name: "bad balance", line: "Ann Lee 25 abc 50 100 0 0 0", reason: "invalid balance"},
		{name: "bad transaction", line: "Ann Lee 25 150 50 100 zz 0 0", reason: "invalid transaction 2"},
		{name: "non-finite", line: "Ann Lee 25 NaN 0 0 0 0 0", reason: "invalid balance"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAccount(4, tc.line)
			require.ErrorIs(t, err, domain.ErrFormat)

			var fe *domain.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, 4, fe.Line)
			assert.Equal(t, tc.reason, fe.Reason)
		})
	}
}

func TestParseHeader(t *testing.T) {
	capacity, err := ParseHeader("AEBank-AccountsFileIsValid-MaxAccounts:12\r")
	require.NoError(t, err)
	assert.Equal(t, 12, capacity)

	for _, bad := range []string{
		"",
		"MaxAccounts:12",
		"AEBank-AccountsFileIsValid-MaxAccounts:",
		"AEBank-AccountsFileIsValid-MaxAccounts: 12",
		"AEBank-AccountsFileIsValid-MaxAccounts:-1",
	} {
		_, err := ParseHeader(bad)
		assert.ErrorIs(t, err, domain.ErrFormat, "header %q", bad)
	}
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	a := domain.NewAccount("Ann", "Lee", 25)
	a.Deposit(100)
	a.Deposit(50)
	b := domain.NewAccount("Ben", "Ng", 125)
	b.Withdraw(7.75)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, 5, []*domain.Account{a, b}))
	assert.Equal(t,
		"AEBank-AccountsFileIsValid-MaxAccounts:5\n"+
			"Ann Lee 25 150 50 100 0 0 0\n"+
			"Ben Ng 125 -7.75 -7.75 0 0 0 0\n",
		buf.String())

	capacity, accounts, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, capacity)
	assert.Equal(t, []*domain.Account{a, b}, accounts)
}

func TestDecode_StopsAtCapacityAndSkipsBlankLines(t *testing.T) {
	input := strings.Join([]string{
		"AEBank-AccountsFileIsValid-MaxAccounts:2",
		"",
		"Ann Lee 25 1 0 0 0 0 0",
		"Ben Ng 125 2 0 0 0 0 0",
		"not even an account line",
	}, "\n")

	capacity, accounts, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, capacity)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Ben", accounts[1].FirstName)
}

func TestDecode_ReturnsPartialResultOnFormatError(t *testing.T) {
	input := strings.Join([]string{
		"AEBank-AccountsFileIsValid-MaxAccounts:4",
		"Ann Lee 25 1 0 0 0 0 0",
		"Ben Ng broken",
		"Cid Ox 125 2 0 0 0 0 0",
	}, "\n")

	capacity, accounts, err := Decode(strings.NewReader(input))

	var fe *domain.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 3, fe.Line)
	assert.Equal(t, 4, capacity)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Ann", accounts[0].FirstName)
}

func TestDecode_EmptyInput(t *testing.T) {
	_, _, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrFormat)
}
