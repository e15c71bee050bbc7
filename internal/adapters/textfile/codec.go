// Package textfile persists the account registry as the plain text accounts file.
//
// The file starts with a header line declaring the registry capacity, followed by
// one space-separated line per account:
//
//	AEBank-AccountsFileIsValid-MaxAccounts:<capacity>
//	<first> <last> <pinDigest> <balance> <t0> <t1> <t2> <t3> <t4>
package textfile

import (
	"AEBank/internal/core/domain"
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Header is the literal prefix of the first line of a valid accounts file.
const Header = "AEBank-AccountsFileIsValid-MaxAccounts:"

// fieldCount is first, last, digest, balance and the five history entries.
const fieldCount = 4 + domain.HistoryLen

// FormatHeader renders the header line for a registry of the given capacity.
func FormatHeader(capacity int) string {
	return Header + strconv.Itoa(capacity)
}

// ParseHeader extracts the capacity from a header line.
func ParseHeader(line string) (int, error) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, Header) {
		return 0, &domain.FormatError{Line: 1, Reason: "missing header prefix"}
	}
	capacity, err := strconv.Atoi(line[len(Header):])
	if err != nil {
		return 0, &domain.FormatError{Line: 1, Reason: "invalid capacity", Err: err}
	}
	if capacity < 0 {
		return 0, &domain.FormatError{Line: 1, Reason: fmt.Sprintf("negative capacity %d", capacity)}
	}
	return capacity, nil
}

// FormatAccount renders one account line.
func FormatAccount(a *domain.Account) string {
	fields := make([]string, 0, fieldCount)
	fields = append(fields,
		a.FirstName,
		a.LastName,
		strconv.Itoa(a.PinDigest),
		formatNumber(a.Balance),
	)
	for _, t := range a.History {
		fields = append(fields, formatNumber(t))
	}
	return strings.Join(fields, " ")
}

// ParseAccount parses one account line. lineNo is only used for error reporting.
func ParseAccount(lineNo int, line string) (*domain.Account, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldCount {
		return nil, &domain.FormatError{
			Line:   lineNo,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	digest, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, &domain.FormatError{Line: lineNo, Reason: "invalid pin digest", Err: err}
	}

	numbers := make([]float64, 0, 1+domain.HistoryLen)
	for i, raw := range fields[3:] {
		v, err := parseNumber(raw)
		if err != nil {
			reason := "invalid balance"
			if i > 0 {
				reason = fmt.Sprintf("invalid transaction %d", i-1)
			}
			return nil, &domain.FormatError{Line: lineNo, Reason: reason, Err: err}
		}
		numbers = append(numbers, v)
	}

	acct := domain.NewAccount(fields[0], fields[1], digest)
	acct.Balance = numbers[0]
	copy(acct.History[:], numbers[1:])
	return acct, nil
}

// Encode writes the header and one line per account.
func Encode(w io.Writer, capacity int, accounts []*domain.Account) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(FormatHeader(capacity)); err != nil {
		return err
	}
	for _, a := range accounts {
		if _, err := bw.WriteString("\n" + FormatAccount(a)); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads a header and up to capacity account lines. Blank lines are skipped
// and lines beyond capacity are ignored. On a parse failure the accounts read so
// far are returned along with the error.
func Decode(r io.Reader) (int, []*domain.Account, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, nil, err
		}
		return 0, nil, &domain.FormatError{Line: 1, Reason: "missing header"}
	}
	capacity, err := ParseHeader(sc.Text())
	if err != nil {
		return 0, nil, err
	}

	accounts := make([]*domain.Account, 0, capacity)
	lineNo := 1
	for len(accounts) < capacity && sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		acct, err := ParseAccount(lineNo, line)
		if err != nil {
			return capacity, accounts, err
		}
		accounts = append(accounts, acct)
	}
	if err := sc.Err(); err != nil {
		return capacity, accounts, err
	}
	return capacity, accounts, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", raw)
	}
	return v, nil
}
