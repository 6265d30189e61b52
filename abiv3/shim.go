// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

// Package abiv3 is the entry-point set for brokers speaking version 3 of the
// auth plugin interface (mosquitto 1.5 and later). Credential and ACL
// denials are turned into deferrals so the broker consults the next plugin.
package abiv3

import (
	"log/slog"

	shim "github.com/mochi-mqtt/mosquitto-shim"
)

// Version is the plugin interface version the entry points implement.
const Version = 3

// Proc is an implementation of the v3 callbacks.
type Proc interface {
	shim.Lifecycle
	UnpwdCheckV3(userdata any, cl shim.Client, username, password string) shim.Code
	ACLCheckV3(userdata any, access shim.Access, cl shim.Client, msg *shim.ACLMessage) shim.Code
}

// Shim forwards v3 entry-point calls to a Proc.
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

// UnpwdCheck forwards a credential check and normalizes the result.
func (s *Shim) UnpwdCheck(userdata any, cl shim.Client, username, password string) shim.Code {
	return s.normalize("unpwd check", s.proc.UnpwdCheckV3(userdata, cl, username, password))
}

// ACLCheck forwards an ACL check and normalizes the result.
func (s *Shim) ACLCheck(userdata any, access shim.Access, cl shim.Client, msg *shim.ACLMessage) shim.Code {
	return s.normalize("acl check", s.proc.ACLCheckV3(userdata, access, cl, msg))
}

// PSKKeyGet always refuses to supply a pre-shared key. The key buffer is left
// untouched.
func (s *Shim) PSKKeyGet(userdata any, cl shim.Client, hint, identity string, key []byte) shim.Code {
	return shim.Normalize(shim.ErrAuth)
}

func (s *Shim) normalize(call string, code shim.Code) shim.Code {
	out := shim.Normalize(code)
	if out != code {
		s.Log.Debug("deferring "+call,
			slog.Int("code", code.Code),
			slog.String("reason", code.Reason))
	}

	return out
}
