// Package format turns raw token values into display cells. Every function
// here is total: missing or unparseable input renders as NotAvailable with
// no tone.
package format

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// NotAvailable is shown for missing or unparseable values.
const NotAvailable = "N/A"

// TimestampLayout is the display layout for last_update.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultPriceDecimals matches the four-decimal dashboard layout.
const DefaultPriceDecimals = 4

// MaxPriceDecimals bounds the configurable price precision.
const MaxPriceDecimals = 12

var (
	rsiHigh = decimal.NewFromInt(70)
	rsiMid  = decimal.NewFromInt(60)
)

// Tone is the semantic styling of a cell; the UI maps it to colours.
type Tone int

const (
	ToneNone Tone = iota
	ToneRSIMid
	ToneRSIHigh
	TonePositive
	ToneNegative
	ToneMuted
)

func (t Tone) String() string {
	switch t {
	case ToneRSIMid:
		return "rsi_mid"
	case ToneRSIHigh:
		return "rsi_high"
	case TonePositive:
		return "positive"
	case ToneNegative:
		return "negative"
	case ToneMuted:
		return "muted"
	default:
		return "none"
	}
}

// Cell is one formatted table value.
type Cell struct {
	Text string
	Tone Tone
}

func na() Cell { return Cell{Text: NotAvailable} }

// Price renders "$" followed by the value with a fixed number of decimals.
func Price(n token.Number, decimals int) Cell {
	d, ok := n.Decimal()
	if !ok {
		return na()
	}
	if decimals < 0 {
		decimals = 0
	}
	if decimals > MaxPriceDecimals {
		decimals = MaxPriceDecimals
	}
	return Cell{Text: "$" + d.StringFixed(int32(decimals))}
}

// RSI renders two decimals with a background band at 60 and 70.
func RSI(n token.Number) Cell {
	d, ok := n.Decimal()
	if !ok {
		return na()
	}
	c := Cell{Text: d.StringFixed(2)}
	switch {
	case d.GreaterThanOrEqual(rsiHigh):
		c.Tone = ToneRSIHigh
	case d.GreaterThanOrEqual(rsiMid):
		c.Tone = ToneRSIMid
	}
	return c
}

// Change renders a signed percentage with two decimals, green when up and
// red when down. The sign follows the raw value, so -0.001 shows "-0.00%".
func Change(n token.Number) Cell {
	d, ok := n.Decimal()
	if !ok {
		return na()
	}
	sign := "+"
	if d.Sign() < 0 {
		sign = "-"
	}
	c := Cell{Text: sign + d.Abs().StringFixed(2) + "%"}
	switch d.Sign() {
	case 1:
		c.Tone = TonePositive
	case -1:
		c.Tone = ToneNegative
	}
	return c
}

// Timestamp renders the fixed date-time layout in loc (UTC when nil).
func Timestamp(ts token.Timestamp, loc *time.Location) Cell {
	t, ok := ts.Time()
	if !ok {
		return na()
	}
	if loc == nil {
		loc = time.UTC
	}
	return Cell{Text: t.In(loc).Format(TimestampLayout)}
}

// Active renders the monitoring flag.
func Active(active bool) Cell {
	if active {
		return Cell{Text: "on", Tone: TonePositive}
	}
	return Cell{Text: "off", Tone: ToneMuted}
}

// Text renders a plain string, falling back to NotAvailable when empty.
func Text(s string) Cell {
	if s == "" {
		return na()
	}
	return Cell{Text: s}
}

// ShortAddress keeps the first and last four characters of long addresses.
func ShortAddress(addr string) string {
	r := []rune(addr)
	if len(r) > 12 {
		return string(r[:4]) + "..." + string(r[len(r)-4:])
	}
	return addr
}
