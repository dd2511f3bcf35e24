// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the save sync client and the cloud
// backend. Request and sync scoped loggers travel in the context and are
// read back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ClientLogFile is the client log location under the user cache dir.
const ClientLogFile = "save-sync/client.log"

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

var setupGlobals sync.Once

// New returns a JSON logger writing to out. Every entry carries the role,
// a timestamp and the calling function.
func New(out io.Writer, role string) *Logger {
	setupGlobals.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger is the backend logger on stdout.
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// NewClientLogger keeps client entries out of the terminal the CLI and TUI
// draw on. It appends to ClientLogFile and falls back to stderr when the
// file cannot be opened.
func NewClientLogger(role string) *Logger {
	return New(openClientLog(), role)
}

func openClientLog() io.Writer {
	dir, err := os.UserCacheDir()
	if err != nil {
		return os.Stderr
	}

	path := filepath.Join(dir, ClientLogFile)
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. Without one it falls
// back to zerolog's default context logger and never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
