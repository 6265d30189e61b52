// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package host

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	shim "github.com/mochi-mqtt/mosquitto-shim"
)

// Option keys read from the broker's plugin options. They are still passed on
// to the implementation.
const (
	OptLogLevel  = "shim_log_level"
	OptLogFormat = "shim_log_format"
)

var (
	// ErrInvalidLogLevel indicates an unrecognised shim_log_level value.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unrecognised shim_log_format value.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
}

// NewLogger builds a logger writing to w, configured from the plugin options.
// Invalid option values are reported in the returned error, and the defaults
// (info level, text format) are used in their place, so the logger is always
// usable.
func NewLogger(w io.Writer, opts shim.Options) (*slog.Logger, error) {
	var errs []error

	level := slog.LevelInfo
	if v, ok := opts.Get(OptLogLevel); ok {
		l, err := ParseLevel(v)
		if err != nil {
			errs = append(errs, err)
		}
		level = l
	}

	ho := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, ho)
	if v, ok := opts.Get(OptLogFormat); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "text":
		case "json":
			handler = slog.NewJSONHandler(w, ho)
		default:
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, v))
		}
	}

	return slog.New(handler), errors.Join(errs...)
}
