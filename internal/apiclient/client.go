// Package apiclient is a typed HTTP client for the calendar API. It is the
// caller side of the toggle endpoints and turns error envelopes back into the
// service error taxonomy, so callers branch with errors.Is or services.KindOf
// exactly as they would in-process.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api/v1.
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token string
	// Timeout bounds each request (default 10s).
	Timeout time.Duration
}

// Client calls the calendar API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New returns a Client for cfg.
func New(cfg Config) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: base url required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("apiclient: base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}, nil
}

// WithHTTPClient replaces the underlying http.Client (tests use the one
// from httptest.Server).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.httpClient = hc
	return &cp
}

// WithToken returns a copy of c authenticating as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.cfg.Token = token
	return &cp
}

// ReactionSummary is the body of GET /articles/{id}/reactions.
type ReactionSummary struct {
	Counts map[domain.ReactionType]int `json:"counts"`
	Mine   []domain.ReactionType       `json:"mine"`
}

// ToggleReaction flips the caller's reaction t on articleID.
func (c *Client) ToggleReaction(ctx context.Context, articleID string, t domain.ReactionType) (services.Action, error) {
	var out struct {
		Action services.Action `json:"action"`
	}
	path := "/articles/" + url.PathEscape(articleID) + "/reactions"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"type": string(t)}, &out); err != nil {
		return "", err
	}
	return out.Action, nil
}

// Reactions returns counts and the caller's own types for articleID.
func (c *Client) Reactions(ctx context.Context, articleID string) (ReactionSummary, error) {
	var out ReactionSummary
	err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(articleID)+"/reactions", nil, &out)
	return out, err
}

// Declare records that the caller will publish on date.
func (c *Client) Declare(ctx context.Context, date string) (*domain.Declaration, error) {
	var out domain.Declaration
	if err := c.do(ctx, http.MethodPost, "/declarations", map[string]string{"date": date}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeclarationStatus is the body of GET /declarations/{date}.
type DeclarationStatus struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	Declared bool   `json:"declared"`
}

// Declaration returns the declaration count for date and whether the
// caller declared.
func (c *Client) Declaration(ctx context.Context, date string) (DeclarationStatus, error) {
	var out DeclarationStatus
	err := c.do(ctx, http.MethodGet, "/declarations/"+url.PathEscape(date), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", services.ErrStorageFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", services.ErrStorageFailure, err)
	}
	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode: %w", services.ErrStorageFailure, err)
	}
	return nil
}
