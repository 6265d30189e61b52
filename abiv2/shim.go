// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

// Package abiv2 is the entry-point set for brokers speaking version 2 of the
// auth plugin interface (mosquitto 1.4). These brokers have no deferral
// status, so every result is returned exactly as the implementation gave it.
package abiv2

import (
	"log/slog"

	shim "github.com/mochi-mqtt/mosquitto-shim"
)

// Version is the plugin interface version the entry points implement.
const Version = 2

// Proc is an implementation of the v2 callbacks.
type Proc interface {
	shim.Lifecycle
	UnpwdCheckV2(userdata any, username, password string) shim.Code
	ACLCheckV2(userdata any, clientID, username, topic string, access shim.Access) shim.Code
}

// Shim forwards v2 entry-point calls to a Proc.
type Shim struct {
	shim.Forwarder
	proc Proc
}

// New returns a Shim forwarding to proc. A nil logger discards output.
func New(proc Proc, log *slog.Logger) *Shim {
	return &Shim{
		Forwarder: shim.NewForwarder(proc, log),
		proc:      proc,
	}
}

// Version returns the plugin interface version.
func (s *Shim) Version() int {
	return Version
}

// UnpwdCheck forwards a credential check.
func (s *Shim) UnpwdCheck(userdata any, username, password string) shim.Code {
	return s.proc.UnpwdCheckV2(userdata, username, password)
}

// ACLCheck forwards an ACL check.
func (s *Shim) ACLCheck(userdata any, clientID, username, topic string, access shim.Access) shim.Code {
	return s.proc.ACLCheckV2(userdata, clientID, username, topic, access)
}

// PSKKeyGet always refuses to supply a pre-shared key. The key buffer is left
// untouched.
func (s *Shim) PSKKeyGet(userdata any, hint, identity string, key []byte) shim.Code {
	return shim.ErrAuth
}
