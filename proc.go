// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shim

import (
	"io"
	"log/slog"
)

// Lifecycle is the set of plugin and security lifecycle calls which have the
// same shape in every ABI generation. Implementations of the real
// authentication and authorization work provide it.
type Lifecycle interface {
	PluginInit(opts Options) (userdata any, code Code)
	PluginCleanup(userdata any, opts Options) Code
	SecurityInit(userdata any, opts Options, reload bool) Code
	SecurityCleanup(userdata any, opts Options, reload bool) Code
}

// Client is a read-only view of the broker's client reference passed to v3
// checks. It is only valid for the duration of the call which received it.
type Client interface {
	ID() string       // the client id
	Username() string // the username the client connected with, if any
	Address() string  // the remote address of the client
	Ref() uintptr     // identity of the underlying host reference
}

// ACLMessage describes the message an ACL check is being made for (v3).
type ACLMessage struct {
	Topic   string
	Payload []byte
	QoS     int
	Retain  bool
}

// ProcBase provides a set of default methods for each implementation. It
// should be embedded in implementations which only need a subset of the
// calls. Lifecycle calls succeed, and checks deny.
type ProcBase struct{}

// PluginInit returns no user data.
func (p *ProcBase) PluginInit(opts Options) (any, Code) {
	return nil, CodeSuccess
}

// PluginCleanup is called when the broker unloads the plugin.
func (p *ProcBase) PluginCleanup(userdata any, opts Options) Code {
	return CodeSuccess
}

// SecurityInit is called when the broker starts or reloads security.
func (p *ProcBase) SecurityInit(userdata any, opts Options, reload bool) Code {
	return CodeSuccess
}

// SecurityCleanup is called before a security reload and at shutdown.
func (p *ProcBase) SecurityCleanup(userdata any, opts Options, reload bool) Code {
	return CodeSuccess
}

// UnpwdCheckV2 denies the credentials.
func (p *ProcBase) UnpwdCheckV2(userdata any, username, password string) Code {
	return ErrAuth
}

// UnpwdCheckV3 denies the credentials.
func (p *ProcBase) UnpwdCheckV3(userdata any, cl Client, username, password string) Code {
	return ErrAuth
}

// ACLCheckV2 denies the access.
func (p *ProcBase) ACLCheckV2(userdata any, clientID, username, topic string, access Access) Code {
	return ErrACLDenied
}

// ACLCheckV3 denies the access.
func (p *ProcBase) ACLCheckV3(userdata any, access Access, cl Client, msg *ACLMessage) Code {
	return ErrACLDenied
}

// NopLogger returns a logger which discards everything.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Forwarder passes the lifecycle calls through to an implementation without
// changing arguments or results.
type Forwarder struct {
	Log  *slog.Logger // a logger for the forwarder
	proc Lifecycle
}

// NewForwarder returns a Forwarder for a lifecycle implementation. A nil
// logger discards output.
func NewForwarder(proc Lifecycle, log *slog.Logger) Forwarder {
	if log == nil {
		log = NopLogger()
	}

	return Forwarder{
		Log:  log,
		proc: proc,
	}
}

// PluginInit forwards the plugin init call and returns the user data the
// implementation produced.
func (f Forwarder) PluginInit(opts Options) (any, Code) {
	userdata, code := f.proc.PluginInit(opts)
	f.report("plugin init", code, slog.Int("options", len(opts)))
	return userdata, code
}

// PluginCleanup forwards the plugin cleanup call.
func (f Forwarder) PluginCleanup(userdata any, opts Options) Code {
	code := f.proc.PluginCleanup(userdata, opts)
	f.report("plugin cleanup", code)
	return code
}

// SecurityInit forwards the security init call.
func (f Forwarder) SecurityInit(userdata any, opts Options, reload bool) Code {
	code := f.proc.SecurityInit(userdata, opts, reload)
	f.report("security init", code, slog.Bool("reload", reload))
	return code
}

// SecurityCleanup forwards the security cleanup call.
func (f Forwarder) SecurityCleanup(userdata any, opts Options, reload bool) Code {
	code := f.proc.SecurityCleanup(userdata, opts, reload)
	f.report("security cleanup", code, slog.Bool("reload", reload))
	return code
}

func (f Forwarder) report(call string, code Code, attrs ...any) {
	if code.Code == CodeSuccess.Code {
		return
	}

	f.Log.Debug(call+" returned non-success", append([]any{
		slog.Int("code", code.Code),
		slog.String("reason", code.Reason),
	}, attrs...)...)
}
