package token

import (
	"strings"
	"time"
)

// Token is a single monitored token as reported by the status endpoint.
type Token struct {
	Name           string    `json:"token_name"`
	Address        string    `json:"token_address"`
	CurrentPrice   Number    `json:"current_price"`
	RSI1m          Number    `json:"rsi_1m"`
	RSI1h          Number    `json:"rsi_1h"`
	PriceChange30m Number    `json:"price_change_30m"`
	PriceChange24h Number    `json:"price_change_24h"`
	LastUpdate     Timestamp `json:"last_update"`
	Active         bool      `json:"active"`
}

// Columns records which optional columns the backend sent.
type Columns struct {
	HasRSI1m bool
	HasRSI1h bool
}

// DetectColumns reports an optional column as present when any token
// carries the key.
func DetectColumns(tokens []Token) Columns {
	var cols Columns
	for _, t := range tokens {
		if t.RSI1m.Present() {
			cols.HasRSI1m = true
		}
		if t.RSI1h.Present() {
			cols.HasRSI1h = true
		}
	}
	return cols
}

// Snapshot is one fetched view of the remote token list.
type Snapshot struct {
	Tokens    []Token
	Columns   Columns
	FetchedAt time.Time
}

// NewSnapshot dedupes tokens by address and detects optional columns.
func NewSnapshot(tokens []Token, fetchedAt time.Time) Snapshot {
	deduped := Dedupe(tokens)
	return Snapshot{
		Tokens:    deduped,
		Columns:   DetectColumns(deduped),
		FetchedAt: fetchedAt,
	}
}

// Clone returns a copy that does not share the token slice.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Tokens != nil {
		out.Tokens = make([]Token, len(s.Tokens))
		copy(out.Tokens, s.Tokens)
	}
	return out
}

// Len returns the number of tokens.
func (s Snapshot) Len() int { return len(s.Tokens) }

// ActiveCount returns how many tokens are active.
func (s Snapshot) ActiveCount() int {
	n := 0
	for _, t := range s.Tokens {
		if t.Active {
			n++
		}
	}
	return n
}

// Filter returns the tokens whose name or address contains query
// (case-insensitive). An empty query matches everything.
func (s Snapshot) Filter(query string, onlyActive bool) []Token {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if onlyActive && !t.Active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Name), query) &&
			!strings.Contains(strings.ToLower(t.Address), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Dedupe keeps the first token for every address, preserving order.
func Dedupe(tokens []Token) []Token {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t.Address]; ok {
			continue
		}
		seen[t.Address] = struct{}{}
		out = append(out, t)
	}
	return out
}
