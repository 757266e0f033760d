package format

import (
	"time"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// ColumnKey identifies a table column by its status-feed field name.
type ColumnKey string

const (
	ColName       ColumnKey = "token_name"
	ColAddress    ColumnKey = "token_address"
	ColPrice      ColumnKey = "current_price"
	ColChange30m  ColumnKey = "price_change_30m"
	ColChange24h  ColumnKey = "price_change_24h"
	ColRSI1m      ColumnKey = "rsi_1m"
	ColRSI1h      ColumnKey = "rsi_1h"
	ColLastUpdate ColumnKey = "last_update"
	ColActive     ColumnKey = "active"
)

// Column describes a rendered column.
type Column struct {
	Key     ColumnKey
	Header  string
	Numeric bool
}

// Columns returns the ordered column set for a snapshot. RSI columns only
// appear when the backend sent them.
func Columns(present token.Columns) []Column {
	cols := []Column{
		{Key: ColName, Header: "Token"},
		{Key: ColAddress, Header: "Address"},
		{Key: ColPrice, Header: "Price", Numeric: true},
		{Key: ColChange30m, Header: "30m %", Numeric: true},
		{Key: ColChange24h, Header: "24h %", Numeric: true},
	}
	if present.HasRSI1m {
		cols = append(cols, Column{Key: ColRSI1m, Header: "RSI 1m", Numeric: true})
	}
	if present.HasRSI1h {
		cols = append(cols, Column{Key: ColRSI1h, Header: "RSI 1h", Numeric: true})
	}
	return append(cols,
		Column{Key: ColLastUpdate, Header: "Last Update"},
		Column{Key: ColActive, Header: "Active"},
	)
}

// Formatter holds the display options shared by every row.
type Formatter struct {
	PriceDecimals int
	Location      *time.Location
	ShortAddress  bool
}

// NewFormatter returns a formatter with defaults filled in.
func NewFormatter(priceDecimals int, loc *time.Location) Formatter {
	if priceDecimals <= 0 {
		priceDecimals = DefaultPriceDecimals
	}
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{PriceDecimals: priceDecimals, Location: loc}
}

// Cell formats a single column of t.
func (f Formatter) Cell(t token.Token, key ColumnKey) Cell {
	switch key {
	case ColName:
		return Text(t.Name)
	case ColAddress:
		if f.ShortAddress {
			return Text(ShortAddress(t.Address))
		}
		return Text(t.Address)
	case ColPrice:
		return Price(t.CurrentPrice, f.PriceDecimals)
	case ColChange30m:
		return Change(t.PriceChange30m)
	case ColChange24h:
		return Change(t.PriceChange24h)
	case ColRSI1m:
		return RSI(t.RSI1m)
	case ColRSI1h:
		return RSI(t.RSI1h)
	case ColLastUpdate:
		return Timestamp(t.LastUpdate, f.Location)
	case ColActive:
		return Active(t.Active)
	default:
		return na()
	}
}

// Row formats t across cols.
func (f Formatter) Row(t token.Token, cols []Column) []Cell {
	row := make([]Cell, len(cols))
	for i, c := range cols {
		row[i] = f.Cell(t, c.Key)
	}
	return row
}

// Texts strips tones from a row.
func Texts(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Text
	}
	return out
}

// Headers returns the column headers.
func Headers(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}
