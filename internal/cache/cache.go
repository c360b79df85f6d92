// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"

	awsx "github.com/staranto/talksgo/internal/aws"
)

// Store is a key-value cache. A miss is (nil, false, nil); errors are
// reserved for backend failures, which callers treat as misses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Settings selects and configures a backend.
type Settings struct {
	// Backend is one of memory, disk, s3 or none.
	Backend string
	TTL     time.Duration

	// Size bounds the memory backend's entry count.
	Size int

	// Namespace separates entries of different upstreams (disk subdirectory,
	// S3 key prefix).
	Namespace string

	Bucket   string
	Region   string
	Profile  string
	Endpoint string
}

// Open builds the backend named by s.Backend.
func Open(ctx context.Context, s Settings) (Store, error) {
	log.Debugf("opening %q cache (ttl=%s)", s.Backend, s.TTL)

	switch s.Backend {
	case "", "memory":
		return NewMemory(s.TTL, s.Size), nil
	case "disk":
		return NewDisk(s.TTL, s.Namespace), nil
	case "s3":
		if s.Bucket == "" {
			return nil, errors.New("s3 cache requires a bucket")
		}
		cfg, err := awsx.LoadAWSConfig(ctx, awsx.WithProfile(s.Profile), awsx.WithRegion(s.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewS3(awsx.NewS3(cfg, s.Endpoint), s.Bucket, s.Namespace, s.TTL), nil
	case "none":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, s.Backend)
	}
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Put(context.Context, string, []byte) error          { return nil }

// expired reports whether an entry written at written has outlived ttl. A
// non-positive ttl never expires.
func expired(written time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(written) > ttl
}
