// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package client calls the proxy API on behalf of the front end and the
// query commands.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/talksgo/internal/talk"
	"github.com/staranto/talksgo/internal/version"
)

// StatusError is a non-2xx API response.
type StatusError struct {
	Code    int
	ErrCode string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api returned %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) StatusCode() int { return e.Code }

// Client is a proxy API client.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the API served at baseURL.
func New(baseURL string, h *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api URL %q", baseURL)
	}
	if h == nil {
		h = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: base, http: h}, nil
}

func (c *Client) Home(ctx context.Context) (talk.Home, error) {
	var v talk.Home
	return v, c.get(ctx, "/api/home", nil, &v)
}

func (c *Client) Talk(ctx context.Context, slug string) (talk.Talk, error) {
	var v talk.Talk
	return v, c.get(ctx, "/api/talks/"+url.PathEscape(slug), nil, &v)
}

func (c *Client) Search(ctx context.Context, query string) (talk.SearchResults, error) {
	var v talk.SearchResults
	return v, c.get(ctx, "/api/search", url.Values{"q": {query}}, &v)
}

func (c *Client) Random(ctx context.Context) (talk.Summary, error) {
	var v talk.Summary
	return v, c.get(ctx, "/api/talks/random", nil, &v)
}

// Raw returns the undecoded body of an API path. path is already escaped.
func (c *Client) Raw(ctx context.Context, path string, q url.Values) ([]byte, error) {
	resp, err := c.do(ctx, path, q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, into any) error {
	resp, err := c.do(ctx, path, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := *c.base
	u.RawPath = c.base.EscapedPath() + path
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "talks/"+version.Version)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	log.Debugf("GET %s -> %d", u.String(), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		se := &StatusError{Code: resp.StatusCode}
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&envelope); err == nil {
			se.ErrCode, se.Message = envelope.Error, envelope.Message
		}
		return nil, se
	}
	return resp, nil
}
