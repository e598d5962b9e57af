package watchlist

import (
	"context"
	"net/url"
	"slices"
	"sync"
)

// Query parameters of the shareable link.
const (
	ParamCode        = "code"
	ParamView        = "view"
	ParamColored     = "colored"
	ParamAutoRefresh = "autoRefresh"
)

// View selects how quotes are displayed.
type View string

const (
	ViewCard  View = "card"
	ViewTable View = "table"
)

// ParseView returns the view named s, defaulting to ViewCard.
func ParseView(s string) View {
	if View(s) == ViewTable {
		return ViewTable
	}
	return ViewCard
}

// Settings are the display options carried by the link.
type Settings struct {
	View        View `json:"view"`
	Colored     bool `json:"colored"`
	AutoRefresh bool `json:"autoRefresh"`
}

// ParseSettings reads the display options from link parameters.
//
// Only the literal "false" disables coloring, and only the literal "true"
// enables auto refresh.
func ParseSettings(q url.Values) Settings {
	return Settings{
		View:        ParseView(q.Get(ParamView)),
		Colored:     q.Get(ParamColored) != "false",
		AutoRefresh: q.Get(ParamAutoRefresh) == "true",
	}
}

// Apply writes s into q, omitting every parameter that holds its default value.
func (s Settings) Apply(q url.Values) {
	if s.View == ViewTable {
		q.Set(ParamView, string(ViewTable))
	} else {
		q.Del(ParamView)
	}
	if s.Colored {
		q.Del(ParamColored)
	} else {
		q.Set(ParamColored, "false")
	}
	if s.AutoRefresh {
		q.Set(ParamAutoRefresh, "true")
	} else {
		q.Del(ParamAutoRefresh)
	}
}

// Link is the shareable link representation of the watchlist: repeated "code"
// parameters, each one a token.
//
// It is safe for concurrent use.
type Link struct {
	mu     sync.Mutex
	values url.Values
}

// NewLink returns a link holding a copy of q.
func NewLink(q url.Values) *Link {
	values := make(url.Values, len(q))
	for k, v := range q {
		values[k] = slices.Clone(v)
	}
	return &Link{values: values}
}

// ParseLink parses a raw query string like "code=sz000001-10&view=table".
func ParseLink(rawQuery string) (*Link, error) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	return &Link{values: q}, nil
}

// ReadTokens returns the "code" parameters in order.
func (l *Link) ReadTokens(context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.values[ParamCode]), nil
}

// WriteTokens replaces all "code" parameters by tokens, other parameters are
// left untouched.
func (l *Link) WriteTokens(_ context.Context, tokens []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values.Del(ParamCode)
	for _, t := range tokens {
		l.values.Add(ParamCode, t)
	}
	return nil
}

// Settings returns the display options of the link.
func (l *Link) Settings() Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ParseSettings(l.values)
}

// SetSettings replaces the display options of the link.
func (l *Link) SetSettings(s Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.Apply(l.values)
}

// Values returns a copy of the link parameters.
func (l *Link) Values() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	values := make(url.Values, len(l.values))
	for k, v := range l.values {
		values[k] = slices.Clone(v)
	}
	return values
}

// Encode returns the link as a query string.
func (l *Link) Encode() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values.Encode()
}
