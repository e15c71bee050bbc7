package atm

import (
	"AEBank/internal/core/domain"
	"AEBank/internal/core/session"
	"fmt"
	"strings"
)

const (
	Divisor  = "\n------------------------------ $ ------------------------------\n\n"
	Headline = "------------------------------ $ ------------------------------\n" +
		"                          AE Bank ATM                          \n" +
		"------------------------------ $ ------------------------------\n\n"

	BlockedMessage = "You inputted the wrong pin!\n" +
		"Your account is blocked; you will not be able to make transactions until an administrator resets the ATM."
)

// Money formats an amount with two decimals.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// RenderStatistics renders the statistics block of an account.
func RenderStatistics(st domain.Statistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Minimum transaction: %s\n", Money(st.Min))
	fmt.Fprintf(&b, "Maximum transaction: %s\n", Money(st.Max))
	fmt.Fprintf(&b, "Average transaction: %s\n", Money(st.Average))
	fmt.Fprintf(&b, "Current balance:     %s\n", Money(st.Balance))
	return b.String()
}

// RenderHistory lists the last transactions, most recent first.
func RenderHistory(history [domain.HistoryLen]float64) string {
	var b strings.Builder
	b.WriteString("Your last 5 transactions (most recent first):\n")
	for i, t := range history {
		kind := "deposit"
		switch {
		case t < 0:
			kind = "withdrawal"
		case t == 0:
			kind = "-"
		}
		fmt.Fprintf(&b, "  %d. %10s  %s\n", i+1, Money(t), kind)
	}
	return b.String()
}

// RenderReport renders the descending-balance report.
func RenderReport(entries []session.ReportEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "\nAccount: %s %s\n", e.FirstName, e.LastName)
		b.WriteString(RenderStatistics(e.Statistics))
	}
	b.WriteString("\n")
	return b.String()
}
