package bsale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andes-data/sales-atlas/pkg/models/store"
)

const defaultPageSize = 50

// APIError is returned when the Bsale API answers with a non-success status
// or the request fails at the network level.
type APIError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bsale: request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("bsale: %d from %s: %s", e.StatusCode, e.URL, strings.TrimSpace(e.Body))
}

func (e *APIError) Unwrap() error { return e.Err }

// Fetcher retrieves every record behind a paginated collection endpoint.
type Fetcher interface {
	FetchAll(ctx context.Context, endpoint string, params url.Values) ([]store.Record, error)
}

type Settings struct {
	BaseURL string
	Token   string
	// PageDelay is the politeness pause between pages. Zero disables it.
	PageDelay time.Duration
	Client    *http.Client
}

// Client is an offset/limit paginated reader for the Bsale REST API.
type Client struct {
	baseURL   string
	token     string
	pageDelay time.Duration
	http      *http.Client
}

func NewClient(settings Settings) (*Client, error) {
	if strings.TrimSpace(settings.Token) == "" {
		return nil, fmt.Errorf("bsale: access token is empty")
	}
	if strings.TrimSpace(settings.BaseURL) == "" {
		return nil, fmt.Errorf("bsale: base URL is empty")
	}

	httpClient := settings.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:   strings.TrimRight(settings.BaseURL, "/"),
		token:     settings.Token,
		pageDelay: settings.PageDelay,
		http:      httpClient,
	}, nil
}

// FetchAll walks limit/offset pages of `{base}/{endpoint}.json` until an
// empty or short page is returned. The payload's records live either under
// an "items" key or as a bare JSON array.
func (c *Client) FetchAll(ctx context.Context, endpoint string, params url.Values) ([]store.Record, error) {
	logger := zerolog.Ctx(ctx)

	limit := defaultPageSize
	if v := params.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if v := params.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	var all []store.Record
	for {
		query := url.Values{}
		for k, vs := range params {
			query[k] = vs
		}
		query.Set("limit", strconv.Itoa(limit))
		query.Set("offset", strconv.Itoa(offset))

		items, err := c.getPage(ctx, endpoint, query)
		if err != nil {
			return nil, err
		}

		logger.Debug().
			Str("endpoint", endpoint).
			Int("offset", offset).
			Int("count", len(items)).
			Msg("fetched page")

		if len(items) == 0 {
			break
		}
		all = append(all, items...)
		if len(items) < limit {
			break
		}

		offset += limit
		if c.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pageDelay):
			}
		}
	}

	return all, nil
}

func (c *Client) getPage(ctx context.Context, endpoint string, query url.Values) ([]store.Record, error) {
	reqURL := fmt.Sprintf("%s/%s.json?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bsale: failed to build request: %w", err)
	}
	req.Header.Set("access_token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{URL: reqURL, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{URL: reqURL, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{URL: reqURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeItems(body)
}

func decodeItems(body []byte) ([]store.Record, error) {
	var envelope struct {
		Items []store.Record `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var list []store.Record
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	// An object payload without an items key is an empty page, not an error.
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("bsale: failed to decode payload: %w", err)
	}
	return nil, nil
}
