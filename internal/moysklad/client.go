package moysklad

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kassa/internal/core"
)

const (
	// DefaultBaseURL is the production entity endpoint root.
	DefaultBaseURL = "https://api.moysklad.ru/api/remap/1.2/entity"

	endpointCashIn  = "cashin"
	endpointCashOut = "cashout"

	defaultPageLimit = 1000
)

// momentLayouts are the timestamp formats orders come with.
var momentLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Client fetches cash orders from the MoySklad API with basic auth and
// limit/offset pagination. It returns only applicable orders inside the
// requested date window; everything else is the caller's concern.
type Client struct {
	baseURL    string
	username   string
	password   string
	pageLimit  int
	httpClient *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		pageLimit:  defaultPageLimit,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CashIn returns applicable cash-in orders dated within [from, to].
func (c *Client) CashIn(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error) {
	return c.fetch(ctx, endpointCashIn, from, to)
}

// CashOut returns applicable cash-out orders dated within [from, to].
func (c *Client) CashOut(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error) {
	return c.fetch(ctx, endpointCashOut, from, to)
}

func (c *Client) fetch(ctx context.Context, endpoint string, from, to time.Time) ([]core.RawTransaction, error) {
	var raws []core.RawTransaction
	offset := 0
	for {
		rows, err := c.fetchPage(ctx, endpoint, offset)
		if err != nil {
			return nil, err
		}
		for _, o := range rows {
			if !o.Applicable {
				continue
			}
			if !inWindow(o.Moment, from, to) {
				continue
			}
			raws = append(raws, o.Raw())
		}
		if len(rows) < c.pageLimit {
			break
		}
		offset += c.pageLimit
	}
	slog.DebugContext(ctx, "Fetched orders",
		"endpoint", endpoint,
		"count", len(raws),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))
	return raws, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, offset int) ([]Order, error) {
	u, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint URL: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.pageLimit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s page at offset %d: %w", endpoint, offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s page at offset %d: unexpected status %s", endpoint, offset, resp.Status)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return list.Rows, nil
}

// inWindow reports whether the order's moment falls on a date within
// [from, to] inclusive. Orders with an unparsable moment are kept; the
// normalizer is the single place that drops and logs them.
func inWindow(moment string, from, to time.Time) bool {
	var ts time.Time
	var err error
	for _, layout := range momentLayouts {
		ts, err = time.Parse(layout, moment)
		if err == nil {
			break
		}
	}
	if err != nil {
		return true
	}
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(from) && !day.After(to)
}
