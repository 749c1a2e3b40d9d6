package insights

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder renders an absent optional value. Generators never substitute
// zero for missing data; a dash cannot be mistaken for a real metric.
const Placeholder = "—"

// Formatter centralizes value rendering so the generators cannot drift
// apart. Number shaping follows the viewer's locale; the currency code
// always follows the hotel, never the locale.
type Formatter struct {
	cur string
	p   *message.Printer
}

// NewFormatter builds a formatter for a locale tag and hotel currency.
// Unparseable locales fall back to English.
func NewFormatter(locale, currency string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if currency == "" {
		currency = "VND"
	}
	return Formatter{cur: currency, p: message.NewPrinter(tag)}
}

// Money renders a compact monetary amount: 1.2B VND, 45M VND, 850 VND.
func (f Formatter) Money(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1e9:
		return f.p.Sprintf("%.1fB %s", v/1e9, f.cur)
	case a >= 1e6:
		return f.p.Sprintf("%.0fM %s", v/1e6, f.cur)
	default:
		return f.p.Sprintf("%.0f %s", v, f.cur)
	}
}

// Pct renders a ratio as a whole percentage: 0.42 -> "42%".
func (f Formatter) Pct(ratio float64) string {
	return f.p.Sprintf("%.0f%%", ratio*100)
}

// Pct1 renders a percentage value with one decimal: 12.34 -> "12.3%".
func (f Formatter) Pct1(pct float64) string {
	return f.p.Sprintf("%.1f%%", pct)
}

// Count renders a whole number with locale grouping.
func (f Formatter) Count(v float64) string {
	return f.p.Sprintf("%.0f", v)
}

// Signed1 renders a signed value with one decimal: "+4.3", "-1.0".
func (f Formatter) Signed1(v float64) string {
	if v >= 0 {
		return f.p.Sprintf("+%.1f", v)
	}
	return f.p.Sprintf("%.1f", v)
}

// SignedCount renders a signed whole number: "+12", "-5".
func (f Formatter) SignedCount(v float64) string {
	if v >= 0 {
		return f.p.Sprintf("+%.0f", v)
	}
	return f.p.Sprintf("%.0f", v)
}

// Date renders a stay date as weekday + day/month: "Fri 12/09".
func (f Formatter) Date(t time.Time) string {
	return t.Format("Mon 02/01")
}

// MaybeMoney renders an optional amount, dash when absent.
func (f Formatter) MaybeMoney(p *float64) string {
	if p == nil {
		return Placeholder
	}
	return f.Money(*p)
}

// MaybeCount renders an optional count, dash when absent.
func (f Formatter) MaybeCount(p *float64) string {
	if p == nil {
		return Placeholder
	}
	return f.Count(*p)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
