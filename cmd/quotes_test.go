package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/watchlist"
	"github.com/google/subcommands"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const feed = `var hq_str_sz000001="平安银行,10.00,9.98,10.05,10.10,9.95,10.04,10.05,150000000,1500000000.00,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,2025-10-17,15:00:03,00";
var hq_str_sh600000="";
`

// useFeed serves feed as the upstream quote feed.
func useFeed(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := simplifiedchinese.GBK.NewEncoder().String(feed)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("WL_FEED_URL", srv.URL+"/list=")
}

func TestQuotes(t *testing.T) {
	useStore(t)
	useFeed(t)
	run(t, &addCmd{}, "sz000001", "10")
	run(t, &addCmd{}, "sh600000")

	status, out := run(t, &quotesCmd{}, "-raw", "-view", "table")
	if status != subcommands.ExitSuccess {
		t.Fatalf("quotes = %v, output %q", status, out)
	}
	for _, want := range []string{"平安银行 (sz000001)", "| sh600000 | 无数据 |", "今日盈亏总计：▲ 70.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("quotes output does not contain %q:\n%s", want, out)
		}
	}

	status, out = run(t, &quotesCmd{}, "-style", "notty")
	if status != subcommands.ExitSuccess {
		t.Fatalf("quotes = %v", status)
	}
	if !strings.Contains(out, "平安银行") {
		t.Errorf("rendered quotes = %q", out)
	}
}

func TestQuotesFeedDown(t *testing.T) {
	useStore(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	t.Setenv("WL_FEED_URL", srv.URL+"/list=")
	run(t, &addCmd{}, "sz000001")

	if status, _ := run(t, &quotesCmd{}, "-raw"); status != subcommands.ExitFailure {
		t.Errorf("quotes with the feed down = %v, want ExitFailure", status)
	}
}

func TestExportImport(t *testing.T) {
	useStore(t)
	run(t, &addCmd{}, "sz000001", "10")
	run(t, &addCmd{}, "sh600000")

	_, out := run(t, &exportCmd{})
	var got []string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("export output %q: %v", out, err)
	}
	if want := []string{"sz000001-10", "sh600000"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("exported %q, want %q", got, want)
	}

	file := filepath.Join(t.TempDir(), "export.json")
	if status, _ := run(t, &exportCmd{}, "-o", file); status != subcommands.ExitSuccess {
		t.Fatalf("export -o = %v", status)
	}

	path := useStore(t)
	run(t, &addCmd{}, "sh600000", "1")
	status, out := run(t, &importCmd{}, file)
	if status != subcommands.ExitSuccess {
		t.Fatalf("import = %v", status)
	}
	if !strings.Contains(out, "Imported 1 entries, skipped 1.") {
		t.Errorf("import output = %q", out)
	}
	if got, want := tokens(t, path), []string{"sh600000-1", "sz000001-10"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("after import, saved %q, want %q", got, want)
	}

	if status, _ := run(t, &importCmd{}, "-replace", file); status != subcommands.ExitSuccess {
		t.Fatalf("import -replace = %v", status)
	}
	if got, want := tokens(t, path), []string{"sz000001-10", "sh600000"}; strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("after import -replace, saved %q, want %q", got, want)
	}
}

func TestImportObjects(t *testing.T) {
	path := useStore(t)
	file := filepath.Join(t.TempDir(), "portfolio.json")
	doc := `{"holdings":[{"code":"sz000001","count":2},{"code":"sh510300"}]}`
	if err := os.WriteFile(file, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if status, _ := run(t, &importCmd{}, "-path", "$.holdings[*]", file); status != subcommands.ExitSuccess {
		t.Fatalf("import = %v", status)
	}
	want := watchlist.EncodeTokens([]watchlist.Entry{watchlist.P("sz000001", 2), watchlist.E("sh510300")})
	if got := tokens(t, path); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("saved %q, want %q", got, want)
	}
}

func TestExportXLSX(t *testing.T) {
	useStore(t)
	useFeed(t)
	run(t, &addCmd{}, "sz000001", "10")
	file := filepath.Join(t.TempDir(), "quotes.xlsx")
	if status, _ := run(t, &exportCmd{}, "-o", file); status != subcommands.ExitSuccess {
		t.Fatalf("export -o xlsx = %v", status)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	// xlsx files are zip archives.
	if !strings.HasPrefix(string(data), "PK") {
		t.Errorf("%s is not an xlsx file", file)
	}
}
