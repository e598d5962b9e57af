package watchlist

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LotSize is the number of shares in a lot.
const LotSize = 100

// Volume unit suffixes.
const (
	UnitHundredMillion = "亿"
	UnitTenThousand    = "万"
)

var (
	lotSize       = decimal.NewFromInt(LotSize)
	hundred       = decimal.NewFromInt(100)
	tenThousand   = decimal.NewFromInt(10_000)
	hundredMillon = decimal.NewFromInt(100_000_000)
)

// IsETF reports whether a numeric code, without market, is an ETF-class
// instrument: it starts with "5" or "15". Those are quoted with a finer
// precision.
func IsETF(code string) bool {
	return strings.HasPrefix(code, "5") || strings.HasPrefix(code, "15")
}

// Derive computes the display figures of q. It returns nil for a nil quote.
//
// All figures are rounded half away from zero from exact decimal values:
//   - PriceChange, price minus yesterday close, 3 decimals for ETF-class codes
//     and 2 otherwise.
//   - ChangePercent, from the unrounded change, 2 decimals. Empty when
//     yesterday close is zero.
//   - Profit, for positions only, unrounded change times lots times LotSize,
//     1 decimal for ETF-class codes and none otherwise.
func Derive(q *Quote) *Derived {
	if q == nil {
		return nil
	}
	etf := IsETF(q.Code)
	change := q.Price.Sub(q.YesterdayClose)

	d := &Derived{Quote: q, VolumeFormatted: FormatVolume(q.Volume)}
	if etf {
		d.PriceChange = change.StringFixed(3)
	} else {
		d.PriceChange = change.StringFixed(2)
	}
	if !q.YesterdayClose.IsZero() {
		d.ChangePercent = change.Mul(hundred).Div(q.YesterdayClose).StringFixed(2)
	}
	if q.Held() {
		profit := change.Mul(decimal.NewFromInt(int64(q.Count))).Mul(lotSize)
		if etf {
			d.Profit = profit.StringFixed(1)
		} else {
			d.Profit = profit.StringFixed(0)
		}
	}
	return d
}

// DeriveAll derives every quote, keeping nil slots.
func DeriveAll(quotes []*Quote) []*Derived {
	derived := make([]*Derived, len(quotes))
	for i, q := range quotes {
		derived[i] = Derive(q)
	}
	return derived
}

// FormatVolume shortens a raw volume: from 100,000,000 it is expressed in
// hundred-millions with 2 decimals, from 10,000 in ten-thousands with no
// decimals, otherwise the raw value is returned unchanged.
func FormatVolume(raw string) string {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	switch {
	case v.GreaterThanOrEqual(hundredMillon):
		return v.Div(hundredMillon).StringFixed(2) + UnitHundredMillion
	case v.GreaterThanOrEqual(tenThousand):
		return v.Div(tenThousand).StringFixed(0) + UnitTenThousand
	default:
		return raw
	}
}

// TotalProfit sums the profits of all positions, with 1 decimal. Quotes
// without data or without position contribute nothing.
func TotalProfit(derived []*Derived) string {
	total := decimal.Zero
	for _, d := range derived {
		if d == nil || d.Profit == "" {
			continue
		}
		p, err := decimal.NewFromString(d.Profit)
		if err != nil {
			continue
		}
		total = total.Add(p)
	}
	return total.StringFixed(1)
}
