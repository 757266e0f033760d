package format

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, Cell{Text: "$1234.5000"}, Price(token.NewNumber(1234.5), 4))
	assert.Equal(t, Cell{Text: "$1234.50000000"}, Price(token.NewNumber(1234.5), 8))
	assert.Equal(t, "$0.0000", Price(token.ParseNumber("0.00001"), 4).Text)
	assert.Equal(t, "$0.00002310", Price(token.ParseNumber("0.0000231"), 8).Text)
	assert.Equal(t, "$3", Price(token.NewNumber(3), -1).Text)
}

func TestRSIBands(t *testing.T) {
	tests := []struct {
		in   float64
		text string
		tone Tone
	}{
		{75, "75.00", ToneRSIHigh},
		{70, "70.00", ToneRSIHigh},
		{69.99, "69.99", ToneRSIMid},
		{65, "65.00", ToneRSIMid},
		{60, "60.00", ToneRSIMid},
		{40, "40.00", ToneNone},
		{0, "0.00", ToneNone},
	}
	for _, tt := range tests {
		got := RSI(token.NewNumber(tt.in))
		assert.Equal(t, tt.text, got.Text, "rsi %v", tt.in)
		assert.Equal(t, tt.tone, got.Tone, "rsi %v", tt.in)
	}
}

func TestChange(t *testing.T) {
	assert.Equal(t, Cell{Text: "+1.23%", Tone: TonePositive}, Change(token.NewNumber(1.234)))
	assert.Equal(t, Cell{Text: "-4.50%", Tone: ToneNegative}, Change(token.NewNumber(-4.5)))
	assert.Equal(t, Cell{Text: "+0.00%", Tone: ToneNone}, Change(token.NewNumber(0)))
	assert.Equal(t, Cell{Text: "-0.00%", Tone: ToneNegative}, Change(token.ParseNumber("-0.001")))
}

func TestMissingValuesRenderNA(t *testing.T) {
	missing := []token.Number{
		{},
		token.ParseNumber("NaN"),
		token.ParseNumber("abc"),
		token.NewNumber(nan()),
	}
	for _, n := range missing {
		assert.Equal(t, Cell{Text: NotAvailable}, Price(n, 4))
		assert.Equal(t, Cell{Text: NotAvailable}, RSI(n))
		assert.Equal(t, Cell{Text: NotAvailable}, Change(n))
	}
	assert.Equal(t, Cell{Text: NotAvailable}, Timestamp(token.Timestamp{}, nil))
	assert.Equal(t, Cell{Text: NotAvailable}, Timestamp(token.ParseTimestamp("soon"), nil))
	assert.Equal(t, Cell{Text: NotAvailable}, Text(""))
}

func TestTimestamp(t *testing.T) {
	ts := token.ParseTimestamp("2024-05-01T10:11:12.987Z")
	assert.Equal(t, "2024-05-01 10:11:12", Timestamp(ts, nil).Text)

	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2024-05-01 12:11:12", Timestamp(ts, loc).Text)
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "DezX...B263", ShortAddress("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"))
	assert.Equal(t, "short", ShortAddress("short"))

	// Cut on characters, not bytes.
	assert.Equal(t, "ïñţé...ŕñåţ", ShortAddress("ïñţéŕñåţïöñåĺïžåţïöñŕñåţ"))
	assert.Equal(t, "ąęść", ShortAddress("ąęść"), "eight bytes but four characters")
	assert.True(t, utf8.ValidString(ShortAddress("日本語のトークン住所です長い")))
}

func TestColumnsFollowPresence(t *testing.T) {
	base := Columns(token.Columns{})
	assert.Equal(t, []string{"Token", "Address", "Price", "30m %", "24h %", "Last Update", "Active"}, Headers(base))

	full := Columns(token.Columns{HasRSI1m: true, HasRSI1h: true})
	require.Len(t, full, 9)
	assert.Equal(t, ColRSI1m, full[5].Key)
	assert.Equal(t, ColRSI1h, full[6].Key)
}

func TestFormatterRow(t *testing.T) {
	tok := token.Token{
		Name:           "BONK",
		Address:        "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
		CurrentPrice:   token.NewNumber(1234.5),
		RSI1m:          token.NewNumber(65),
		PriceChange30m: token.NewNumber(2),
		LastUpdate:     token.ParseTimestamp("2024-05-01 10:11:12"),
		Active:         true,
	}
	f := NewFormatter(0, nil)
	f.ShortAddress = true
	cols := Columns(token.Columns{HasRSI1m: true})
	row := f.Row(tok, cols)

	assert.Equal(t, []string{
		"BONK", "DezX...B263", "$1234.5000", "+2.00%", "N/A", "65.00", "2024-05-01 10:11:12", "on",
	}, Texts(row))
	assert.Equal(t, ToneRSIMid, row[5].Tone)
	assert.Equal(t, TonePositive, row[3].Tone)
	assert.Equal(t, ToneNone, row[4].Tone)
}
