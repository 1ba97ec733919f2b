package ledger

import "testing"

func TestFormatCurrency_USDEnglish(t *testing.T) {
	if got := FormatCurrency(123456, "USD", "en"); got != "$1,234.56" {
		t.Errorf("FormatCurrency = %q, want $1,234.56", got)
	}
}

func TestFormatCurrency_BRLPortuguese(t *testing.T) {
	if got := FormatCurrency(123456, "BRL", "pt"); got != "R$1.234,56" {
		t.Errorf("FormatCurrency = %q, want R$1.234,56", got)
	}
}

func TestFormatCurrency_Negative(t *testing.T) {
	if got := FormatCurrency(-50000, "BRL", "pt"); got != "-R$500,00" {
		t.Errorf("FormatCurrency = %q, want -R$500,00", got)
	}
}

func TestFormatCurrency_Zero(t *testing.T) {
	if got := FormatCurrency(0, "USD", "en"); got != "$0.00" {
		t.Errorf("FormatCurrency = %q, want $0.00", got)
	}
}

func TestFormatCurrency_UnknownCurrencyFallsBack(t *testing.T) {
	if got := FormatCurrency(100, "ZZZ", "en"); got != "$1.00" {
		t.Errorf("FormatCurrency = %q, want $1.00", got)
	}
}

func TestFormatCurrency_InvalidLocaleUsesCurrencyDefaults(t *testing.T) {
	if got := FormatCurrency(123456, "BRL", "!!bad!!"); got != "R$1.234,56" {
		t.Errorf("FormatCurrency = %q, want R$1.234,56", got)
	}
}

// Large amounts format exactly because the pipeline never leaves int64.
func TestFormatCurrency_LargeAmountExact(t *testing.T) {
	if got := FormatCurrency(900719925474099, "USD", "en"); got != "$9,007,199,254,740.99" {
		t.Errorf("FormatCurrency = %q, want $9,007,199,254,740.99", got)
	}
}

func TestClassifyBalance_Boundaries(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{-50001, SeverityCriticalNegative},
		{-50000, SeverityNegative},
		{-1, SeverityNegative},
		{0, SeverityLowPositive},
		{99999, SeverityLowPositive},
		{100000, SeverityPositive},
		{200000, SeverityPositive},
		{200001, SeverityStrongPositive},
	}
	for _, tc := range cases {
		if got := ClassifyBalance(tc.cents); got.Severity != tc.want {
			t.Errorf("ClassifyBalance(%d).Severity = %s, want %s", tc.cents, got.Severity, tc.want)
		}
	}
}

func TestClassifyBalance_Colors(t *testing.T) {
	cases := []struct {
		cents     int64
		wantBg    string
		wantClass string
	}{
		{-100000, "#ff0000", "text-white"},
		{-100, "#f4cccc", "text-foreground"},
		{50000, "#fce8b2", "text-foreground"},
		{150000, "#b7e1cd", "text-foreground"},
		{300000, "#6aa84f", "text-white"},
	}
	for _, tc := range cases {
		fill := ClassifyBalance(tc.cents)
		if fill.BackgroundColor != tc.wantBg {
			t.Errorf("ClassifyBalance(%d).BackgroundColor = %s, want %s", tc.cents, fill.BackgroundColor, tc.wantBg)
		}
		if fill.TextClass != tc.wantClass {
			t.Errorf("ClassifyBalance(%d).TextClass = %s, want %s", tc.cents, fill.TextClass, tc.wantClass)
		}
	}
}

func TestClassifyBalance_LabelsPresent(t *testing.T) {
	for _, cents := range []int64{-60000, -1, 0, 150000, 250000} {
		if ClassifyBalance(cents).Label == "" {
			t.Errorf("ClassifyBalance(%d) missing label", cents)
		}
	}
}
