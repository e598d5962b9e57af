package renderer

import (
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/watchlist"
	"github.com/shopspring/decimal"
)

// Options configure the rendering of quotes.
type Options struct {
	// Colored marks rising figures with ▲ and falling ones with ▼.
	Colored bool
}

// Markers of the change direction.
const (
	MarkUp   = "▲"
	MarkDown = "▼"
)

// NoData is displayed for codes the feed has no quote for.
const NoData = "无数据"

// Quotes is the view model of a snapshot.
type Quotes struct {
	Time     string
	Rows     []Row
	Total    string // total profit, 1 decimal
	TotalCNY string // total profit as a CNY amount
}

// Row is the display form of a quote. Figures are ready to print: "-" stands
// for a missing value.
type Row struct {
	Index      int
	Symbol     string
	Name       string
	NoData     bool
	Held       bool
	Price      string
	Percent    string
	Change     string
	Profit     string
	Volume     string
	Count      string
	High       string
	Low        string
	Date       string
	Time       string
	DesktopURL string
	MobileURL  string
}

// NewQuotes builds the view model of s.
func NewQuotes(s *watchlist.Snapshot, opts Options) *Quotes {
	q := &Quotes{Total: s.TotalProfit, TotalCNY: cny(s.TotalProfit)}
	if !s.Time.IsZero() {
		q.Time = s.Time.Format(time.DateTime)
	}
	if opts.Colored {
		if t, err := decimal.NewFromString(s.TotalProfit); err == nil {
			q.Total = mark(!t.IsNegative(), q.Total)
		}
	}
	for i, d := range s.Quotes {
		row := Row{Index: i}
		if i < len(s.Codes) {
			row.Symbol = s.Codes[i]
		}
		if d == nil {
			row.NoData = true
			q.Rows = append(q.Rows, row)
			continue
		}
		row.Symbol = d.Symbol
		row.Name = d.Name
		row.Held = d.Held()
		row.Price, row.Percent, row.Change = "-", "-", "-"
		if d.Live() {
			row.Price = d.Price.String()
			row.Change = d.PriceChange
			if d.ChangePercent != "" {
				row.Percent = d.ChangePercent + "%"
			}
			if opts.Colored {
				row.Price = mark(d.Up(), row.Price)
				row.Percent = mark(d.Up(), row.Percent)
				row.Change = mark(d.Up(), row.Change)
			}
		}
		row.Profit = "-"
		if d.Profit != "" {
			row.Profit = d.Profit
			if opts.Colored {
				row.Profit = mark(d.Up(), row.Profit)
			}
		}
		row.Count = "-"
		if row.Held {
			row.Count = strconv.Itoa(d.Count)
		}
		row.Volume = d.VolumeFormatted
		row.High, row.Low = d.High.String(), d.Low.String()
		row.Date, row.Time = d.Date, d.Time
		row.DesktopURL, row.MobileURL = DesktopURL(d.Market, d.Code), MobileURL(d.Market, d.Code)
		q.Rows = append(q.Rows, row)
	}
	return q
}

func mark(up bool, s string) string {
	if s == "-" {
		return s
	}
	if up {
		return MarkUp + " " + s
	}
	return MarkDown + " " + s
}

// cny formats a decimal amount in yuan.
func cny(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	cur := money.GetCurrency("CNY")
	if cur == nil {
		return amount
	}
	return cur.Formatter().Format(d.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// DesktopURL returns the quote page of an instrument.
func DesktopURL(market, code string) string {
	return "https://quote.eastmoney.com/concept/" + market + code + ".html"
}

// MobileURL returns the mobile quote page of an instrument. Shenzhen markets
// are numbered 0, the others 1.
func MobileURL(market, code string) string {
	n := "1"
	if market == "sz" {
		n = "0"
	}
	return "https://wap.eastmoney.com/quote/stock/" + n + "." + code + ".html"
}
