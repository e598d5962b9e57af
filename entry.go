package watchlist

import (
	"strconv"
	"strings"
)

// Entry is a tracked symbol plus an optional held-lot count.
//
// Code is an exchange-prefixed symbol like "sz000001". Count is meaningful only
// when HasCount is true.
type Entry struct {
	Code     string
	Count    int
	HasCount bool
}

// E returns an entry that is only tracked, not held.
func E(code string) Entry { return Entry{Code: code} }

// P returns an entry holding count lots of code.
func P(code string, count int) Entry { return Entry{Code: code, Count: count, HasCount: true} }

// Held reports whether the entry is a position worth computing a profit for.
// A zero count is not a position: it cannot be told apart from an absent count
// once encoded.
func (e Entry) Held() bool { return e.HasCount && e.Count > 0 }

// Token returns the compact form of the entry. See EncodeToken.
func (e Entry) Token() string { return EncodeToken(e) }

func (e Entry) String() string { return e.Token() }

// tokenSeparator splits the code from the count in a token.
const tokenSeparator = "-"

// EncodeToken encodes e as "code" when it has no count, or "code-count".
//
// A count of 0 is encoded like an absent count.
func EncodeToken(e Entry) string {
	if !e.HasCount || e.Count == 0 {
		return e.Code
	}
	return e.Code + tokenSeparator + strconv.Itoa(e.Count)
}

// DecodeToken decodes a token produced by EncodeToken.
//
// The token is split on the first "-". A remainder that is not a non-negative
// integer decodes to an absent count, it never fails.
func DecodeToken(token string) Entry {
	code, rest, found := strings.Cut(token, tokenSeparator)
	if !found {
		return Entry{Code: code}
	}
	n, err := strconv.ParseUint(rest, 10, 31)
	if err != nil {
		return Entry{Code: code}
	}
	return Entry{Code: code, Count: int(n), HasCount: true}
}

// EncodeTokens encodes all entries in order.
func EncodeTokens(entries []Entry) []string {
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		tokens = append(tokens, EncodeToken(e))
	}
	return tokens
}

// DecodeTokens decodes all tokens in order.
func DecodeTokens(tokens []string) []Entry {
	entries := make([]Entry, 0, len(tokens))
	for _, t := range tokens {
		entries = append(entries, DecodeToken(t))
	}
	return entries
}
