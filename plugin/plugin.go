// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

// Package plugin exports the C entry points a mosquitto broker loads from an
// auth plugin shared object, and forwards them to a registered Go
// implementation. Import it from a main package, call Register from an init
// function, and build with:
//
//	go build -buildmode=c-shared -o auth-plugin.so .
//
// The v3 entry-point set (mosquitto 1.5 and later) is exported by default.
// Build with -tags mosq_abi_v2 to export the v2 set for mosquitto 1.4.
package plugin

// #cgo darwin LDFLAGS: -Wl,-undefined -Wl,dynamic_lookup
// #cgo !darwin LDFLAGS: -Wl,-unresolved-symbols=ignore-all
// #include "plugin.h"
import "C"

import (
	"log/slog"
	"os"
	"unsafe"

	shim "github.com/mochi-mqtt/mosquitto-shim"
	"github.com/mochi-mqtt/mosquitto-shim/internal/host"
)

// newLogger builds the instance logger from the plugin options, reporting
// invalid logging options through the logger itself.
func newLogger(opts shim.Options, version int) *slog.Logger {
	log, err := host.NewLogger(os.Stderr, opts)
	log = log.With(slog.Int("abi", version))
	if err != nil {
		log.Warn("invalid logging options, using defaults", slog.String("error", err.Error()))
	}

	return log
}

// keyBuffer returns a view of the host's key buffer.
func keyBuffer(key *C.char, n C.int) []byte {
	if key == nil || n <= 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(key)), int(n))
}
