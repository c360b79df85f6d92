// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/talksgo/internal/config"
)

func TestMangleArguments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
home:
  defaults:
    - "--titles"
  popular:
    - "--sort=-views"
    - "--filter views>1000"
`), 0o600))
	t.Setenv("TALKS_CFG", path)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted",
			args: []string{"talks", "home", "-o", "json"},
			want: []string{"talks", "home", "--titles", "-o", "json"},
		},
		{
			name: "named set replaces defaults",
			args: []string{"talks", "home", "@popular", "-o", "json"},
			want: []string{"talks", "home", "--sort=-views", "--filter", "views>1000", "-o", "json"},
		},
		{
			name: "unknown set",
			args: []string{"talks", "home", "@nope"},
			want: []string{"talks", "home"},
		},
		{
			name: "no sets for command",
			args: []string{"talks", "search", "go"},
			want: []string{"talks", "search", "go"},
		},
		{
			name: "help",
			args: []string{"talks", "home", "@popular", "-h"},
			want: []string{"talks", "home", "--help"},
		},
		{
			name: "root flag",
			args: []string{"talks", "--version"},
			want: []string{"talks", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}
