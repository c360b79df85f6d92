// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TALKS_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("TALKS_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(handler)
	log.SetLevelFromString(level)
}

// SetOutput redirects log output. The TUI owns stdout while it runs, so
// browse points this at a file (or io.Discard).
func SetOutput(w io.Writer) {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	handler.w = w
}

// OpenLogFile redirects output to the file named by TALKS_LOG_FILE, or
// discards it when the variable is unset. The returned closer is never nil.
func OpenLogFile() (io.Closer, error) {
	path := os.Getenv("TALKS_LOG_FILE")
	if path == "" {
		SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:mnd
	if err != nil {
		SetOutput(io.Discard)
		return io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

var handler = &CustomHandler{w: os.Stdout}

// CustomHandler formats log messages as a single compact line.
type CustomHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}
	fmt.Fprintf(h.w, "%s %.1s %s%s\n", timestamp, level, e.Message, fields.String())
	return nil
}
