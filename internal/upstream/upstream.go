// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package upstream fetches from the third-party talks API, reading through
// and writing back to a cache.Store.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/talksgo/internal/cache"
	"github.com/staranto/talksgo/internal/talk"
	"github.com/staranto/talksgo/internal/version"
)

// ErrNotFound matches (errors.Is) a StatusError carrying a 404.
var ErrNotFound = errors.New("not found upstream")

// StatusError is a non-2xx upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) StatusCode() int { return e.Code }

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

const (
	defaultHomeLimit = 24
	defaultTimeout   = 15 * time.Second
	maxBody          = 8 << 20
)

// Client talks to the upstream API.
type Client struct {
	base      *url.URL
	http      *http.Client
	store     cache.Store
	token     string
	homeLimit int
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sends a bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHomeLimit sets how many talks the home listing asks for.
func WithHomeLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.homeLimit = n
		}
	}
}

// New builds a client for the API rooted at baseURL. A nil store disables
// caching.
func New(baseURL string, store cache.Store, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid upstream URL %q", baseURL)
	}
	if store == nil {
		store = cache.Nop{}
	}

	c := &Client{
		base:      base,
		http:      &http.Client{Timeout: defaultTimeout},
		store:     store,
		homeLimit: defaultHomeLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Host is the upstream host name, used to namespace caches.
func (c *Client) Host() string { return c.base.Host }

// Home fetches the featured talk listing.
func (c *Client) Home(ctx context.Context) (talk.Home, error) {
	u := c.endpoint("talks.json", url.Values{"limit": {strconv.Itoa(c.homeLimit)}})
	return fetchDecoded(ctx, c, u, talk.DecodeHome)
}

// Talk fetches one talk by slug.
func (c *Client) Talk(ctx context.Context, slug string) (talk.Talk, error) {
	u := c.endpoint("talks/"+url.PathEscape(slug)+".json", nil)
	return fetchDecoded(ctx, c, u, talk.DecodeTalk)
}

// Search runs a literal text search.
func (c *Client) Search(ctx context.Context, query string) (talk.SearchResults, error) {
	u := c.endpoint("search.json", url.Values{"q": {query}})
	return fetchDecoded(ctx, c, u, func(raw []byte) (talk.SearchResults, error) {
		return talk.DecodeSearch(query, raw)
	})
}

// endpoint joins the escaped path p to the base URL.
func (c *Client) endpoint(p string, q url.Values) string {
	return join(c.base, "/"+p, q)
}

func join(base *url.URL, escaped string, q url.Values) string {
	u := *base
	u.RawPath = base.EscapedPath() + escaped
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// fetchDecoded serves u from the cache when possible. Fresh bodies are only
// cached once they decode, so a bad payload is never pinned.
func fetchDecoded[T any](ctx context.Context, c *Client, u string, decode func([]byte) (T, error)) (T, error) {
	var zero T

	if raw, ok, err := c.store.Get(ctx, u); err != nil {
		log.WithError(err).Warnf("cache read failed for %s", u)
	} else if ok {
		if v, err := decode(raw); err == nil {
			log.Debugf("cache hit: %s", u)
			return v, nil
		}
		log.Warnf("ignoring undecodable cache entry for %s", u)
	}

	raw, err := c.get(ctx, u)
	if err != nil {
		return zero, err
	}

	v, err := decode(raw)
	if err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", u, err)
	}

	if err := c.store.Put(ctx, u, raw); err != nil {
		log.WithError(err).Warnf("failed to write %s to cache", u)
	}
	return v, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "talks/"+version.Version)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debugf("GET %s", u)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(io.LimitReader(resp.Body, maxBody)); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return doc.Bytes(), nil
}
