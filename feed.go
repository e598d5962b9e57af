package watchlist

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StatementPrefix starts the identifier of every feed statement, the code
// follows it: hq_str_sz000001="...".
const StatementPrefix = "hq_str_"

// Statement is one assignment of the feed, mapping a market-prefixed code to
// its comma-separated payload.
type Statement struct {
	Code    string
	Payload string
}

// Field positions in a statement payload.
const (
	fieldName           = 0
	fieldOpen           = 1
	fieldYesterdayClose = 2
	fieldPrice          = 3
	fieldHigh           = 4
	fieldLow            = 5
	fieldVolume         = 8
	fieldDate           = 30
	fieldTime           = 31
)

// ParseStatements splits a feed into its statements.
//
// Statements end with ';' outside of quotes, or with a new line. Malformed
// statements are skipped without affecting the others.
func ParseStatements(feed string) []Statement {
	var statements []Statement
	flush := func(s string) {
		if st, ok := parseStatement(s); ok {
			statements = append(statements, st)
		}
	}
	start, quoted := 0, false
	for i := 0; i < len(feed); i++ {
		switch feed[i] {
		case '"':
			quoted = !quoted
		case ';':
			if quoted {
				continue
			}
			flush(feed[start:i])
			start = i + 1
		case '\n':
			flush(feed[start:i])
			start, quoted = i+1, false
		}
	}
	flush(feed[start:])
	return statements
}

// parseStatement parses `[var] hq_str_<code>="<payload>"`.
func parseStatement(s string) (Statement, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "var "); ok {
		s = strings.TrimSpace(rest)
	}
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return Statement{}, false
	}
	code, ok := strings.CutPrefix(strings.TrimSpace(lhs), StatementPrefix)
	if !ok || code == "" || strings.ContainsAny(code, " \t\"") {
		return Statement{}, false
	}
	rhs = strings.TrimSpace(rhs)
	if len(rhs) < 2 || rhs[0] != '"' || rhs[len(rhs)-1] != '"' {
		return Statement{}, false
	}
	payload := rhs[1 : len(rhs)-1]
	if strings.Contains(payload, `"`) {
		return Statement{}, false
	}
	return Statement{Code: code, Payload: payload}, true
}

// DecodeFeed decodes one quote per requested code, in request order.
//
// A code without statement, or with an empty payload, decodes to nil. When the
// feed holds several statements for a code the first one is used.
func DecodeFeed(feed string, codes []string) []*Quote {
	payloads := make(map[string]string)
	for _, st := range ParseStatements(feed) {
		if _, exists := payloads[st.Code]; !exists {
			payloads[st.Code] = st.Payload
		}
	}
	quotes := make([]*Quote, len(codes))
	for i, code := range codes {
		payload := payloads[code]
		if payload == "" {
			continue
		}
		quotes[i] = newQuote(code, strings.Split(payload, ","))
	}
	return quotes
}

// DecodeEntries is like DecodeFeed for the codes of entries, and carries each
// entry's count over to its quote.
func DecodeEntries(feed string, entries []Entry) []*Quote {
	codes := make([]string, len(entries))
	for i, e := range entries {
		codes[i] = e.Code
	}
	quotes := DecodeFeed(feed, codes)
	for i, q := range quotes {
		if q != nil {
			q.Count, q.HasCount = entries[i].Count, entries[i].HasCount
		}
	}
	return quotes
}

func newQuote(symbol string, values []string) *Quote {
	field := func(i int) string {
		if i < len(values) {
			return strings.TrimSpace(values[i])
		}
		return ""
	}
	number := func(i int) decimal.Decimal {
		d, err := decimal.NewFromString(field(i))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	market, code := symbol, ""
	if len(symbol) >= 2 {
		market, code = symbol[:2], symbol[2:]
	}
	return &Quote{
		Symbol:         symbol,
		Name:           field(fieldName),
		Market:         market,
		Code:           code,
		Price:          number(fieldPrice),
		YesterdayClose: number(fieldYesterdayClose),
		Open:           number(fieldOpen),
		High:           number(fieldHigh),
		Low:            number(fieldLow),
		Volume:         field(fieldVolume),
		Date:           field(fieldDate),
		Time:           field(fieldTime),
	}
}
