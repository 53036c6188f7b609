// Пакет wiki - клиент MediaWiki API (action=query, prop=extracts).
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Gunvolt24/wiki_search/internal/ports"
	"github.com/Gunvolt24/wiki_search/pkg/metrics"
)

var _ ports.KnowledgeClient = (*Client)(nil)

// maxResponseBytes - ответ API больше этого считаем ошибкой.
const maxResponseBytes = 4 << 20

// Options - параметры клиента.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client - один GET на термин, без повторов.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewClient - клиент с пулом соединений go-cleanhttp и otelhttp-транспортом.
func NewClient(opts Options) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = opts.Timeout
	httpClient.Transport = otelhttp.NewTransport(httpClient.Transport)

	return &Client{
		http:      httpClient,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
	}
}

// Lookup - вводное описание страницы term в виде простого текста.
// found=false, если ни одна страница в ответе не содержит extract.
func (c *Client) Lookup(ctx context.Context, term string) (string, bool, error) {
	extract, found, err := c.lookup(ctx, term)
	switch {
	case err != nil:
		metrics.WikiLookups.WithLabelValues("error").Inc()
	case found:
		metrics.WikiLookups.WithLabelValues("found").Inc()
	default:
		metrics.WikiLookups.WithLabelValues("not_found").Inc()
	}
	return extract, found, err
}

func (c *Client) lookup(ctx context.Context, term string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(term), http.NoBody)
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("wiki request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("wiki request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", false, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return "", false, fmt.Errorf("read response: body exceeds %d bytes", maxResponseBytes)
	}

	extract, found, err := ParseExtract(body)
	if err != nil {
		return "", false, err
	}
	return extract, found, nil
}

func (c *Client) queryURL(term string) string {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("prop", "extracts")
	q.Set("exintro", "true")
	q.Set("explaintext", "true")
	q.Set("titles", term)
	return c.baseURL + "?" + q.Encode()
}

// ParseExtract - первый extract из query.pages ответа API.
// Страницы без extract (например, с пометкой missing) пропускаются.
func ParseExtract(body []byte) (string, bool, error) {
	if !gjson.ValidBytes(body) {
		return "", false, fmt.Errorf("parse response: invalid json")
	}

	var (
		extract string
		found   bool
	)
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		v := page.Get("extract")
		if !v.Exists() {
			return true
		}
		extract, found = v.String(), true
		return false
	})
	return extract, found, nil
}
