package notionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2notion/internal/logging"
	"github.com/alnah/go-md2notion/internal/notion"
)

// Defaults for Config fields left zero.
const (
	DefaultBaseURL   = "https://api.notion.com"
	DefaultVersion   = "2022-06-28"
	DefaultRetries   = 3
	DefaultRetryWait = 5 * time.Second
	MaxRetries       = 10
)

// Sentinel errors for API operations.
var (
	ErrMissingToken = errors.New("api token is required")
	ErrAPI          = errors.New("block api request failed")
	ErrResponse     = errors.New("unexpected api response")
	ErrConfig       = errors.New("invalid client config")
)

// APIError is a non-2xx reply from the API. It matches ErrAPI with errors.Is.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%v: status %d: %s", ErrAPI, e.Status, e.Message)
	}
	return fmt.Sprintf("%v: status %d (%s): %s", ErrAPI, e.Status, e.Code, e.Message)
}

// Unwrap returns ErrAPI for errors.Is() matching.
func (e *APIError) Unwrap() error {
	return ErrAPI
}

// Retryable reports whether the request may succeed when repeated.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Config configures a Client.
type Config struct {
	Token      string
	BaseURL    string
	Version    string        // Notion-Version header
	Retries    int           // total attempts per request
	RetryWait  time.Duration // fixed wait between attempts
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client calls the block and page endpoints.
type Client struct {
	token     string
	baseURL   string
	version   string
	retries   int
	retryWait time.Duration
	http      *http.Client
	logger    logging.Logger
}

var _ Appender = (*Client)(nil)

// Validate checks cfg before a Client is built. Zero values are accepted
// and replaced by defaults. A blank token reports ErrMissingToken.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Token) == "" {
		return ErrMissingToken
	}

	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.BaseURL, validation.By(httpURL)),
		validation.Field(&cfg.Version, validation.Date("2006-01-02")),
		validation.Field(&cfg.Retries, validation.Min(0), validation.Max(MaxRetries)),
		validation.Field(&cfg.RetryWait, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("notionapi.base_url", "must be an http or https URL")
	}
	return nil
}

// NewClient validates cfg and fills defaults.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		token:     cfg.Token,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		version:   cfg.Version,
		retries:   cfg.Retries,
		retryWait: cfg.RetryWait,
		http:      cfg.HTTPClient,
		logger:    logging.OrNoOp(cfg.Logger),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if c.retries <= 0 {
		c.retries = DefaultRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = DefaultRetryWait
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}
	return c, nil
}

type appendRequest struct {
	Children []json.RawMessage `json:"children"`
}

type objectRef struct {
	ID string `json:"id"`
}

type listResponse struct {
	Results []objectRef `json:"results"`
}

// AppendChildren appends blocks under parentID and returns the created ids in
// order. Children of the given blocks are not sent.
func (c *Client) AppendChildren(ctx context.Context, parentID string, blocks []*notion.Block) ([]string, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	if len(blocks) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d blocks exceeds limit of %d", len(blocks), MaxBatchSize)
	}

	req := appendRequest{Children: make([]json.RawMessage, 0, len(blocks))}
	for _, b := range blocks {
		raw, err := encodeBlock(b)
		if err != nil {
			return nil, err
		}
		req.Children = append(req.Children, raw)
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodPatch, "/v1/blocks/"+parentID+"/children", req, &resp); err != nil {
		return nil, err
	}

	// Results end with the new top-level children in request order.
	if len(resp.Results) < len(blocks) {
		return nil, fmt.Errorf("%w: %d results for %d blocks", ErrResponse, len(resp.Results), len(blocks))
	}
	ids := make([]string, len(blocks))
	offset := len(resp.Results) - len(blocks)
	for i := range blocks {
		ids[i] = resp.Results[offset+i].ID
	}
	return ids, nil
}

type createPageRequest struct {
	Parent     map[string]string `json:"parent"`
	Properties map[string]any    `json:"properties"`
}

// CreatePage creates a child page of parentPageID and returns its id.
func (c *Client) CreatePage(ctx context.Context, parentPageID, title string) (string, error) {
	req := createPageRequest{
		Parent: map[string]string{"page_id": parentPageID},
		Properties: map[string]any{
			"title": map[string]any{
				"title": splitRuns([]*notion.TextRun{notion.Text(title)}),
			},
		},
	}

	var page objectRef
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &page); err != nil {
		return "", err
	}
	if page.ID == "" {
		return "", fmt.Errorf("%w: page id missing", ErrResponse)
	}
	return page.ID, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do sends one JSON request with retries on transport errors, 429 and 5xx.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying api request",
				"method", method,
				"path", path,
				"attempt", attempt+1,
				"error", lastErr,
			)
			select {
			case <-time.After(c.retryWait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.send(ctx, method, path, body, out)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && !apiErr.Retryable() {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("api request", "method", method, "path", path, "bytes", len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var parsed errorResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Message != "" {
			apiErr.Code = parsed.Code
			apiErr.Message = parsed.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrResponse, err)
	}
	return nil
}
