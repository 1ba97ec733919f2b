package ledger

import (
	"strings"

	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
)

// FormatCurrency renders an integer cent amount for display using the
// currency's symbol and fraction digits with locale-appropriate
// separators. All arithmetic stays in int64, so amounts near the int64
// range format without precision loss.
func FormatCurrency(amountCents int64, currencyCode, locale string) string {
	cur := money.GetCurrency(strings.ToUpper(currencyCode))
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}

	decimal, thousand := localeSeparators(locale, cur)
	formatter := money.NewFormatter(cur.Fraction, decimal, thousand, cur.Grapheme, cur.Template)
	return formatter.Format(amountCents)
}

// localeSeparators picks decimal and thousand separators for a BCP 47
// locale tag, falling back to the currency's own defaults when the tag
// does not parse.
func localeSeparators(locale string, cur *money.Currency) (string, string) {
	tag, err := language.Parse(locale)
	if err != nil {
		return cur.Decimal, cur.Thousand
	}

	base, _ := tag.Base()
	switch base.String() {
	case "de", "es", "it", "nl", "pt", "tr", "id", "vi", "pl", "da":
		return ",", "."
	case "fr", "ru", "uk", "cs", "sv", "fi", "nb":
		return ",", " "
	case "en", "ja", "zh", "ko", "he", "th", "hi":
		return ".", ","
	default:
		return cur.Decimal, cur.Thousand
	}
}

// Balance severity buckets, from worst to best.
const (
	SeverityCriticalNegative = "critical-negative"
	SeverityNegative         = "negative"
	SeverityLowPositive      = "low-positive"
	SeverityPositive         = "positive"
	SeverityStrongPositive   = "strong-positive"
)

// BalanceFill describes how a running balance cell should be painted.
type BalanceFill struct {
	Severity        string `json:"severity"`
	BackgroundColor string `json:"background_color"`
	TextClass       string `json:"text_class"`
	Label           string `json:"label"`
}

// ClassifyBalance maps a running balance to its severity bucket. The
// thresholds are fixed cent values: below -R$500 is critical, R$1000
// and R$2000 split the positive range.
func ClassifyBalance(balanceCents int64) BalanceFill {
	switch {
	case balanceCents < -50000:
		return BalanceFill{
			Severity:        SeverityCriticalNegative,
			BackgroundColor: "#ff0000",
			TextClass:       "text-white",
			Label:           "Critically negative balance",
		}
	case balanceCents < 0:
		return BalanceFill{
			Severity:        SeverityNegative,
			BackgroundColor: "#f4cccc",
			TextClass:       "text-foreground",
			Label:           "Negative balance",
		}
	case balanceCents > 200000:
		return BalanceFill{
			Severity:        SeverityStrongPositive,
			BackgroundColor: "#6aa84f",
			TextClass:       "text-white",
			Label:           "Strong positive balance",
		}
	case balanceCents >= 100000:
		return BalanceFill{
			Severity:        SeverityPositive,
			BackgroundColor: "#b7e1cd",
			TextClass:       "text-foreground",
			Label:           "Positive balance",
		}
	default:
		return BalanceFill{
			Severity:        SeverityLowPositive,
			BackgroundColor: "#fce8b2",
			TextClass:       "text-foreground",
			Label:           "Low positive balance",
		}
	}
}
