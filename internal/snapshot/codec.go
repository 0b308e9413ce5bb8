// Package snapshot parses and formats the textual balance snapshot.
//
// The snapshot is sectioned by the literal markers USDT and THB; the
// leading span before USDT is the implicit MMK section. Line items read
// Prefix(Bank) -amount where the hyphen separates label from amount and
// carries no sign: every stored balance is a magnitude.
package snapshot

import (
	"regexp"
	"strings"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
)

// Matches: San(KBZ)-11044185, TZT (Binance)-(222.6), NDT (Wave) -2864900
// and amounts with a trailing ignored annotation: NDT(Binance)-6.96(52.96).
var lineItem = regexp.MustCompile(`([A-Za-z\s]+?)\s*\(([^)]+)\)\s*-\s*\(?([\d,]+(?:\.\d+)?)\)?(?:\([^)]+\))?`)

// Parse reads a balance snapshot into a ledger.
//
// The USDT marker is mandatory; MMK and THB sections are optional and
// may contain zero items. A line item with an unparseable amount is
// skipped rather than failing the whole snapshot.
func Parse(text string) (domain.Ledger, error) {
	var l domain.Ledger

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "MMK")

	usdtStart := strings.Index(text, "USDT")
	if usdtStart == -1 {
		return l, domain.ErrMissingUSDTSection
	}

	mmkSection := text[:usdtStart]
	rest := text[usdtStart+len("USDT"):]

	usdtSection := rest
	thbSection := ""

	if thbStart := strings.Index(rest, "THB"); thbStart != -1 {
		usdtSection = rest[:thbStart]
		thbSection = rest[thbStart+len("THB"):]
	}

	l.MMK = parseSection(mmkSection, currencypkg.MMK)
	l.USDT = parseSection(usdtSection, currencypkg.USDT)
	l.THB = parseSection(thbSection, currencypkg.THB)

	return l, nil
}

func parseSection(section, currency string) []domain.Account {
	var accounts []domain.Account

	for _, m := range lineItem.FindAllStringSubmatch(section, -1) {
		amount, err := currencypkg.ParseAmount(m[3])
		if err != nil {
			continue
		}

		accounts = append(accounts, domain.Account{
			Prefix:   strings.TrimSpace(m[1]),
			Bank:     strings.TrimSpace(m[2]),
			Balance:  amount.Abs(),
			Currency: currency,
		})
	}

	return accounts
}

// Format renders the ledger back to snapshot text. MMK items come first
// with no header token, then the USDT section, then THB only if any THB
// accounts exist. Round-trips through Parse.
func Format(l domain.Ledger) string {
	var sb strings.Builder

	for _, a := range l.MMK {
		writeItem(&sb, a)
	}

	sb.WriteString("\nUSDT\n")

	for _, a := range l.USDT {
		writeItem(&sb, a)
	}

	if len(l.THB) > 0 {
		sb.WriteString("\nTHB\n")

		for _, a := range l.THB {
			writeItem(&sb, a)
		}
	}

	return strings.TrimSpace(sb.String())
}

func writeItem(sb *strings.Builder, a domain.Account) {
	sb.WriteString(a.Label())
	sb.WriteString(" -")
	sb.WriteString(currencypkg.FormatAmount(a.Balance, a.Currency))
	sb.WriteString("\n")
}

// IsSnapshot reports whether the text carries the mandatory section
// marker; the router uses it to decide whether a balance-topic message
// should be auto-loaded.
func IsSnapshot(text string) bool {
	return strings.Contains(text, "USDT")
}

// Equal reports whether two ledgers hold the same accounts with the
// same magnitudes, ignoring decimal representation.
func Equal(a, b domain.Ledger) bool {
	return sectionEqual(a.MMK, b.MMK) && sectionEqual(a.USDT, b.USDT) && sectionEqual(a.THB, b.THB)
}

func sectionEqual(a, b []domain.Account) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Label() != b[i].Label() || a[i].Currency != b[i].Currency {
			return false
		}

		if !a[i].Balance.Round(4).Equal(b[i].Balance.Round(4)) {
			return false
		}
	}

	return true
}
