package watchlist

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a decoded feed record.
type Quote struct {
	Symbol         string          `json:"symbol"` // market-prefixed, as requested
	Name           string          `json:"name"`
	Market         string          `json:"market"` // two letters, like "sz"
	Code           string          `json:"code"`   // numeric, without market
	Price          decimal.Decimal `json:"price"`
	YesterdayClose decimal.Decimal `json:"yesterdayClose"`
	Open           decimal.Decimal `json:"open"`
	High           decimal.Decimal `json:"high"`
	Low            decimal.Decimal `json:"low"`
	Volume         string          `json:"volume"` // raw feed value
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	Count          int             `json:"count,omitempty"`
	HasCount       bool            `json:"-"`
}

// Held reports whether the quote is for a position. See Entry.Held.
func (q *Quote) Held() bool { return q.HasCount && q.Count > 0 }

// Derived is a quote with its computed display figures.
type Derived struct {
	*Quote
	PriceChange     string `json:"priceChange"`
	ChangePercent   string `json:"changePercent,omitempty"` // empty when yesterday close is zero
	Profit          string `json:"profit,omitempty"`        // empty when not a position
	VolumeFormatted string `json:"volumeFormatted"`
}

// Up reports whether the displayed price change is not negative. It drives
// the positive or negative styling, so a fall that rounds to zero is up.
func (d *Derived) Up() bool {
	change, err := decimal.NewFromString(d.PriceChange)
	if err != nil {
		return !d.Price.Sub(d.YesterdayClose).IsNegative()
	}
	return !change.IsNegative()
}

// Live reports whether the instrument has live data. A zero price means no
// trading data even if other fields are present.
func (d *Derived) Live() bool { return !d.Price.IsZero() }

// Snapshot is the outcome of a fetch cycle.
type Snapshot struct {
	Time   time.Time  `json:"time"`
	Codes  []string   `json:"codes"`
	Quotes []*Derived `json:"quotes"` // nil slots have no data, aligned with Codes
	// TotalProfit is the sum of all positions' profits.
	TotalProfit string `json:"totalProfit"`
}
