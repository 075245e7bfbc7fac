package sharepoint

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/model"
)

const (
	acceptHeader    = "application/json;odata=nometadata"
	maxErrorBodyLen = 64 << 10

	defaultTimeout = 30 * time.Second
)

// Client queries the SharePoint REST API for lists and their fields.
type Client struct {
	httpClient  *http.Client
	accessToken string
	timeout     time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The client is used as is;
// WithTimeout does not change it.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithAccessToken sends the token as a bearer credential on every request.
func WithAccessToken(token string) Option {
	return func(cl *Client) { cl.accessToken = token }
}

// WithTimeout bounds every request made by the default http.Client.
// Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

type collection[T any] struct {
	Value []T `json:"value"`
}

// GetLists returns the custom lists of the web, ordered by title.
func (c *Client) GetLists(ctx context.Context, webURL string) ([]model.List, error) {
	var res collection[model.List]
	if err := c.get(ctx, listsURL(webURL), &res); err != nil {
		return nil, err
	}
	return res.Value, nil
}

// GetFields returns the fields of the list titled listTitle, ordered by title.
func (c *Client) GetFields(ctx context.Context, webURL, listTitle string, q FieldQuery) ([]model.Field, error) {
	var res collection[model.Field]
	if err := c.get(ctx, fieldsURL(webURL, listTitle, q), &res); err != nil {
		return nil, err
	}
	return res.Value, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	logger.Debug("SharePoint request completed",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return newResponseError(resp, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
