// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

// Package host contains the Go side of the exported plugin entry points:
// implementation registration, per-instance state kept behind the broker's
// user data pointer, and logger configuration.
package host

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyRegistered indicates an implementation was registered twice.
var ErrAlreadyRegistered = errors.New("an implementation is already registered")

// ErrNilProc indicates a nil implementation was registered.
var ErrNilProc = errors.New("cannot register a nil implementation")

// Registry holds the single implementation the entry points forward to. It is
// written once, normally from an init function, and read without locking.
type Registry[T any] struct {
	p atomic.Pointer[T]
}

// Set registers the implementation.
func (r *Registry[T]) Set(proc T) error {
	if any(proc) == nil {
		return ErrNilProc
	}

	if !r.p.CompareAndSwap(nil, &proc) {
		return ErrAlreadyRegistered
	}

	return nil
}

// Get returns the registered implementation, or fallback if none is registered.
func (r *Registry[T]) Get(fallback T) T {
	if p := r.p.Load(); p != nil {
		return *p
	}

	return fallback
}

// Registered returns true if an implementation has been set.
func (r *Registry[T]) Registered() bool {
	return r.p.Load() != nil
}
