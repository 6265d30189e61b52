// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package host

import (
	"log/slog"
	"runtime/cgo"

	"github.com/rs/xid"
)

// Instance is the state of one loaded copy of the plugin. Go values cannot be
// kept in C memory, so the broker's user data pointer holds a handle to the
// instance instead, and the implementation's own user data lives here.
type Instance[S any] struct {
	ID       xid.ID       // identifies the instance in logs
	Log      *slog.Logger // the instance logger
	Shim     S            // the entry-point set calls are forwarded through
	Userdata any          // user data produced by the implementation's plugin init
}

// NewInstance returns an instance with a fresh id. The logger is tagged with
// the id.
func NewInstance[S any](log *slog.Logger, build func(*slog.Logger) S) *Instance[S] {
	id := xid.New()
	log = log.With(slog.String("instance", id.String()))
	return &Instance[S]{
		ID:   id,
		Log:  log,
		Shim: build(log),
	}
}

// Store returns a handle to the instance which can be written into C memory.
func (i *Instance[S]) Store() uintptr {
	return uintptr(cgo.NewHandle(i))
}

// Load returns the instance a handle refers to, or nil for the zero handle.
func Load[S any](h uintptr) *Instance[S] {
	if h == 0 {
		return nil
	}

	i, _ := cgo.Handle(h).Value().(*Instance[S])
	return i
}

// Release invalidates a handle. The zero handle is ignored.
func Release(h uintptr) {
	if h == 0 {
		return
	}

	cgo.Handle(h).Delete()
}
