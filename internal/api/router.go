// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultTimeout = 30 * time.Second

type routerConfig struct {
	timeout     time.Duration
	middlewares []func(http.Handler) http.Handler
}

// Option customises the router.
type Option func(*routerConfig)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(cfg *routerConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// WithMiddlewares appends middleware after the defaults.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// NewRouter wires svc behind the API routes.
func NewRouter(svc Service, opts ...Option) chi.Router {
	cfg := routerConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.timeout))
	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(req.Context(), w, NewError("route_not_found", fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(req.Context(), w, NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	h := handlers{svc: svc}
	r.Get("/healthz", h.healthz)
	r.Route("/api", func(api chi.Router) {
		api.Get("/home", h.home)
		api.Get("/talks/random", h.random)
		api.Get("/talks/{slug}", h.talk)
		api.Get("/search", h.search)
	})

	return r
}

type handlers struct {
	svc Service
}

func (h handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handlers) home(w http.ResponseWriter, r *http.Request) {
	home, err := h.svc.Home(r.Context())
	if err != nil {
		WriteError(r.Context(), w, classify(err))
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (h handlers) random(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Random(r.Context())
	if err != nil {
		WriteError(r.Context(), w, classify(err))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h handlers) talk(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if r.URL.RawPath != "" {
		// chi matched on the escaped path.
		if s, err := url.PathUnescape(slug); err == nil {
			slug = s
		}
	}
	t, err := h.svc.Talk(r.Context(), slug)
	if err != nil {
		WriteError(r.Context(), w, classify(err))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h handlers) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		WriteError(r.Context(), w, NewError("invalid_query", "query parameter q is required", http.StatusBadRequest))
		return
	}

	res, err := h.svc.Search(r.Context(), q)
	if err != nil {
		WriteError(r.Context(), w, classify(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
