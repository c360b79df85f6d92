// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, srv.Client())
	require.NoError(t, err)
	return c
}

func TestTalk(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/talks/foo-bar", r.URL.Path)
		_, _ = w.Write([]byte(`{"slug":"foo-bar","title":"Foo","duration":90,"related":[{"slug":"x"}]}`))
	})

	got, err := c.Talk(context.Background(), "foo-bar")
	require.NoError(t, err)
	assert.Equal(t, "Foo", got.Title)
	assert.Equal(t, 90, got.Seconds)
	require.Len(t, got.Related, 1)
}

func TestTalk_SlugEscapedOnce(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/talks/café", r.URL.Path)
		assert.Equal(t, "/api/talks/caf%C3%A9", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"slug":"café","title":"Cafe"}`))
	})

	got, err := c.Talk(context.Background(), "café")
	require.NoError(t, err)
	assert.Equal(t, "café", got.Slug)
}

func TestSearchQueryEncoding(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "a & b", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"query":"a & b","results":[]}`))
	})

	got, err := c.Search(context.Background(), "a & b")
	require.NoError(t, err)
	assert.Equal(t, "a & b", got.Query)
}

func TestStatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"gone","status":404}`))
	})

	_, err := c.Random(context.Background())
	require.Error(t, err)

	var sc interface{ StatusCode() int }
	require.True(t, errors.As(err, &sc))
	assert.Equal(t, http.StatusNotFound, sc.StatusCode())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "not_found", se.ErrCode)
	assert.Contains(t, err.Error(), "gone")
}

func TestDecodeFailureIsPlainError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := c.Home(context.Background())
	require.Error(t, err)

	var sc interface{ StatusCode() int }
	assert.False(t, errors.As(err, &sc))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, nil)
	require.NoError(t, err)
	_, err = c.Home(context.Background())
	assert.Error(t, err)
}

func TestRaw(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"featured":[]}`))
	})

	raw, err := c.Raw(context.Background(), "/api/home", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"featured":[]}`, string(raw))
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("localhost", nil)
	assert.Error(t, err)
}
