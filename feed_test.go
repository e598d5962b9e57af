package watchlist

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseStatements(t *testing.T) {
	feed := `var hq_str_sz000001="平安银行,1,2";` + "\n" +
		`var hq_str_sh600000="";` + "\n" +
		`garbage;var hq_str_="x";hq_str_sh510300="a;b";` + "\n" +
		`var hq_str_sz000002="unterminated` + "\n" +
		`var hq_str_sz000003="ok"`
	got := ParseStatements(feed)
	want := []Statement{
		{"sz000001", "平安银行,1,2"},
		{"sh600000", ""},
		{"sh510300", "a;b"},
		{"sz000003", "ok"},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseStatements() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecodeFeed(t *testing.T) {
	feed := priced("sh600000", "8.00", "8.10") +
		"var hq_str_sz399001=\"\";\n" +
		"this is not a statement;\n" +
		statement("sz000001", "平安银行", "10.00", "9.98", "10.05", "10.10", "9.95", "150000000", "2025-10-17", "15:00:03")

	codes := []string{"sz000001", "sz399001", "bj430047", "sh600000"}
	quotes := DecodeFeed(feed, codes)
	if len(quotes) != len(codes) {
		t.Fatalf("DecodeFeed() returned %d quotes, want %d", len(quotes), len(codes))
	}
	if quotes[1] != nil || quotes[2] != nil {
		t.Errorf("DecodeFeed() without data = %v, %v, want nil", quotes[1], quotes[2])
	}
	if quotes[3] == nil || quotes[3].Symbol != "sh600000" {
		t.Errorf("DecodeFeed() does not follow request order: %+v", quotes[3])
	}

	q := quotes[0]
	if q == nil {
		t.Fatal("DecodeFeed() for sz000001 = nil")
	}
	checks := []struct {
		name string
		got  string
		want string
	}{
		{"name", q.Name, "平安银行"},
		{"market", q.Market, "sz"},
		{"code", q.Code, "000001"},
		{"open", q.Open.String(), "10"},
		{"yesterdayClose", q.YesterdayClose.String(), "9.98"},
		{"price", q.Price.String(), "10.05"},
		{"high", q.High.String(), "10.1"},
		{"low", q.Low.String(), "9.95"},
		{"volume", q.Volume, "150000000"},
		{"date", q.Date, "2025-10-17"},
		{"time", q.Time, "15:00:03"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestDecodeFeedFirstWins(t *testing.T) {
	feed := priced("sz000001", "1", "2") + priced("sz000001", "1", "3")
	q := DecodeFeed(feed, []string{"sz000001"})[0]
	if !q.Price.Equal(decimal.NewFromInt(2)) {
		t.Errorf("price = %v, want 2", q.Price)
	}
}

func TestDecodeFeedShortPayload(t *testing.T) {
	q := DecodeFeed(`hq_str_sz000001="name,1,2";`, []string{"sz000001"})[0]
	if q == nil {
		t.Fatal("short payload decoded to nil")
	}
	if q.Name != "name" || !q.Price.IsZero() || q.Date != "" {
		t.Errorf("short payload decoded to %+v", q)
	}
}

func TestDecodeEntries(t *testing.T) {
	feed := priced("sz000001", "9.98", "10.05") + priced("sh600000", "8", "8")
	quotes := DecodeEntries(feed, []Entry{P("sz000001", 10), E("sh600000"), E("sz000002")})
	if !quotes[0].Held() || quotes[0].Count != 10 {
		t.Errorf("count was not carried: %+v", quotes[0])
	}
	if quotes[1].Held() {
		t.Errorf("tracked only entry decoded as held")
	}
	if quotes[2] != nil {
		t.Errorf("missing code decoded to %+v", quotes[2])
	}
}
