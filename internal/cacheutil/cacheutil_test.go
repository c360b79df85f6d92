// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TALKS_CACHE_DIR", dir)
	t.Setenv("TALKS_CACHE", "")

	subdirs := []string{"upstream"}
	key := "https://talks.example.com/v1/talks/a.json"

	_, ok := Read(subdirs, key)
	assert.False(t, ok)

	require.NoError(t, Write(subdirs, key, []byte(`{"talk":{"slug":"a"}}`)))

	entry, ok := Read(subdirs, key)
	require.True(t, ok)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, `{"talk":{"slug":"a"}}`, string(entry.Data))
	assert.Equal(t, filepath.Join(dir, "upstream", EncodeKey(key)), entry.Path)

	raw, err := os.ReadFile(entry.Path)
	require.NoError(t, err)
	assert.NotEqual(t, entry.Data, raw, "values are stored compressed")
}

func TestDisabled(t *testing.T) {
	t.Setenv("TALKS_CACHE_DIR", t.TempDir())
	t.Setenv("TALKS_CACHE", "false")

	assert.False(t, Enabled())
	require.NoError(t, Write(nil, "k", []byte("v")))
	_, ok := Read(nil, "k")
	assert.False(t, ok)

	_, usable, err := EnsureBaseDir()
	assert.NoError(t, err)
	assert.False(t, usable)
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	t.Setenv("TALKS_CACHE_DIR", t.TempDir())
	t.Setenv("TALKS_CACHE", "")

	p, _ := EntryPath(nil, "k")
	require.NoError(t, os.WriteFile(p, []byte("not zstd"), 0o600))

	_, ok := Read(nil, "k")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	t.Setenv("TALKS_CACHE_DIR", t.TempDir())
	t.Setenv("TALKS_CACHE", "")

	require.NoError(t, Write(nil, "old", []byte("1")))
	require.NoError(t, Write(nil, "new", []byte("2")))

	oldPath, _ := EntryPath(nil, "old")
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	assert.NoError(t, Purge(0), "disabled purge is a no-op")
	_, ok := EntryPath(nil, "old")
	assert.True(t, ok)

	require.NoError(t, Purge(24))
	_, ok = EntryPath(nil, "old")
	assert.False(t, ok)
	_, ok = EntryPath(nil, "new")
	assert.True(t, ok)
}

func TestEncodeKey(t *testing.T) {
	a := EncodeKey("a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, EncodeKey("a"))
	assert.NotEqual(t, a, EncodeKey("b"))
}
