// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"time"

	"github.com/staranto/talksgo/internal/cacheutil"
)

// Disk stores entries under the cacheutil base directory.
type Disk struct {
	subdirs []string
	ttl     time.Duration
	now     func() time.Time
}

func NewDisk(ttl time.Duration, subdirs ...string) *Disk {
	var dirs []string
	for _, d := range subdirs {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return &Disk{subdirs: dirs, ttl: ttl, now: time.Now}
}

func (d *Disk) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := cacheutil.Read(d.subdirs, key)
	if !ok || expired(entry.ModTime, d.ttl, d.now()) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (d *Disk) Put(_ context.Context, key string, value []byte) error {
	return cacheutil.Write(d.subdirs, key, value)
}
