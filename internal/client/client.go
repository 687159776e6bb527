// Package client talks to the timesheet REST API and implements the
// timesheet.EntryStore and timesheet.ProjectSource contracts over it.
package client

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

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/vinay0094k/myteamda-withroles-mobile/config"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 64 << 10

// Options configure a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	// RetryBase is the first backoff delay for retried reads.
	RetryBase time.Duration
	// HTTPClient carries the transport; its Transport is wrapped with the
	// bearer token.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// OptionsFromConfig maps the client config section.
func OptionsFromConfig(cfg *config.ClientConfig, logger *zap.Logger) Options {
	return Options{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	}
}

// Client is a REST client for /api/v1.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	maxRetries uint64
	retryBase  time.Duration
	logger     *zap.Logger
}

var (
	_ timesheet.EntryStore    = (*Client)(nil)
	_ timesheet.ProjectSource = (*Client)(nil)
)

// New builds a Client. An empty token sends requests unauthenticated.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		hc = oauth2.NewClient(ctx, ts)
	}
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	retryBase := opts.RetryBase
	if retryBase <= 0 {
		retryBase = 200 * time.Millisecond
	}
	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:       base,
		httpClient: hc,
		maxRetries: uint64(retries),
		retryBase:  retryBase,
		logger:     logger,
	}, nil
}

// Health reports whether the server answers its health probe.
func (c *Client) Health(ctx context.Context) error {
	// /health sits beside /api/v1, not under it
	u := *c.base
	u.Path = "/health"
	u.RawQuery = ""
	probe := &Client{
		base:       &u,
		httpClient: c.httpClient,
		maxRetries: 0,
		retryBase:  c.retryBase,
		logger:     c.logger,
	}
	return probe.do(ctx, http.MethodGet, "", nil, nil, nil)
}

// ── Envelope ──

// envelope mirrors the server's response wrapper with the payload left raw.
type envelope struct {
	Success *bool           `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type pageData struct {
	List       json.RawMessage `json:"list"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"pagination"`
}

// ── Requests ──

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// get issues an idempotent read, retrying transport failures with
// exponential backoff.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		if err != nil && retryableRead(err) {
			c.logger.Debug("retrying read",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		return err
	})
}

// retryableRead reports whether a failed GET may succeed on another try.
func retryableRead(err error) bool {
	var te *timesheet.Error
	if !errors.As(err, &te) || te.Kind != timesheet.KindTransport {
		return false
	}
	return te.Code != timesheet.CodeUnauthenticated
}

// do sends one request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return timesheet.Transport(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return timesheet.Transport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return timesheet.Transport(fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return decode(resp.StatusCode, raw, out)
}

// decode turns a raw response into out or a classified *timesheet.Error.
func decode(status int, raw []byte, out any) error {
	var env envelope
	jsonErr := json.Unmarshal(raw, &env)

	ok := status >= 200 && status < 300
	if ok && jsonErr == nil && env.Success != nil && *env.Success {
		if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return timesheet.Transport(fmt.Errorf("decode response data: %w", err))
		}
		return nil
	}

	if jsonErr != nil || env.Success == nil {
		// not our envelope: a proxy page, an empty body or a truncated answer
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return timesheet.Transport(fmt.Errorf("unexpected response (status %d): %s", status, strings.TrimSpace(string(raw))))
	}

	return timesheet.FromRemote(timesheet.RemoteFailure{
		Status:  status,
		Code:    env.Code,
		Message: env.Message,
		Detail:  env.Error,
	})
}
