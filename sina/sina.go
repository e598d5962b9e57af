// Package sina fetches quotes from the Sina finance feed.
//
// The feed answers one request for many codes with statements like
//
//	var hq_str_sz000001="平安银行,10.00,9.98,10.05,...";
//
// encoded in GBK. The client returns that text transcoded to UTF-8, ready for
// watchlist.DecodeFeed.
package sina

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/watchlist/logging"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Defaults of the public feed.
const (
	DefaultURL     = "https://hq.sinajs.cn/list="
	DefaultReferer = "https://finance.sina.com.cn/"
	DefaultTimeout = 10 * time.Second
)

// Options configure a Client. Zero values select the defaults.
type Options struct {
	URL     string // prefix the comma-joined codes are appended to
	Referer string // the feed rejects requests without it
	Timeout time.Duration
	// Registerer receives the client metrics. Nil disables them.
	Registerer prometheus.Registerer
}

// Client is a feed client. It implements watchlist.Fetcher.
type Client struct {
	url     string
	client  *resty.Client
	metrics *metrics
}

// New returns a client configured by opts.
func New(opts Options) (*Client, error) {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	m, err := newMetrics(opts.Registerer)
	if err != nil {
		return nil, err
	}
	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Referer", opts.Referer)
	return &Client{url: opts.URL, client: client, metrics: m}, nil
}

// Fetch requests codes in a single round-trip and returns the feed text in
// UTF-8. A non-2xx status is an error. There is no retry.
func (c *Client) Fetch(ctx context.Context, codes []string) (string, error) {
	addr := c.url + strings.Join(codes, ",")
	start := time.Now()
	resp, err := c.client.R().SetContext(ctx).Get(addr)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(outcomeError, elapsed)
		return "", fmt.Errorf("cannot fetch %d quotes: %w", len(codes), err)
	}
	logging.L().Debug("feed fetched",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", elapsed),
		zap.Int("codes", len(codes)))
	if !resp.IsSuccess() {
		c.metrics.observe(outcomeStatus, elapsed)
		return "", fmt.Errorf("cannot fetch %d quotes: status %s", len(codes), resp.Status())
	}
	body, err := simplifiedchinese.GBK.NewDecoder().Bytes(resp.Body())
	if err != nil {
		c.metrics.observe(outcomeDecode, elapsed)
		return "", fmt.Errorf("cannot decode feed from GBK: %w", err)
	}
	c.metrics.observe(outcomeOK, elapsed)
	return string(body), nil
}
