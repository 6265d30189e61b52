// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

// Package shimtest provides substitute implementations of the plugin
// callbacks for testing code which drives the entry points.
package shimtest

import (
	"sync"

	shim "github.com/mochi-mqtt/mosquitto-shim"
)

// Call is a single recorded callback invocation.
type Call struct {
	Method   string
	Userdata any
	Args     []any
}

// Recorder is an implementation of both the v2 and v3 callbacks which records
// every call and answers from a Script. Unscripted lifecycle calls succeed and
// unscripted checks deny. It is safe for concurrent use.
type Recorder struct {
	Userdata any    // the user data returned from plugin init
	Script   Script // canned results keyed on method name
	mu       sync.Mutex
	calls    []Call
}

// Calls returns a copy of the recorded calls in the order they were made.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call{}, r.calls...)
}

// Reset discards the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(method string, userdata any, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{
		Method:   method,
		Userdata: userdata,
		Args:     args,
	})
}

// PluginInit records the call and returns the configured user data.
func (r *Recorder) PluginInit(opts shim.Options) (any, shim.Code) {
	r.record(PluginInit, nil, opts)
	return r.Userdata, r.Script.Result(PluginInit, shim.CodeSuccess)
}

// PluginCleanup records the call.
func (r *Recorder) PluginCleanup(userdata any, opts shim.Options) shim.Code {
	r.record(PluginCleanup, userdata, opts)
	return r.Script.Result(PluginCleanup, shim.CodeSuccess)
}

// SecurityInit records the call.
func (r *Recorder) SecurityInit(userdata any, opts shim.Options, reload bool) shim.Code {
	r.record(SecurityInit, userdata, opts, reload)
	return r.Script.Result(SecurityInit, shim.CodeSuccess)
}

// SecurityCleanup records the call.
func (r *Recorder) SecurityCleanup(userdata any, opts shim.Options, reload bool) shim.Code {
	r.record(SecurityCleanup, userdata, opts, reload)
	return r.Script.Result(SecurityCleanup, shim.CodeSuccess)
}

// UnpwdCheckV2 records the call.
func (r *Recorder) UnpwdCheckV2(userdata any, username, password string) shim.Code {
	r.record(UnpwdCheck, userdata, username, password)
	return r.Script.Result(UnpwdCheck, shim.ErrAuth)
}

// UnpwdCheckV3 records the call.
func (r *Recorder) UnpwdCheckV3(userdata any, cl shim.Client, username, password string) shim.Code {
	r.record(UnpwdCheck, userdata, cl, username, password)
	return r.Script.Result(UnpwdCheck, shim.ErrAuth)
}

// ACLCheckV2 records the call.
func (r *Recorder) ACLCheckV2(userdata any, clientID, username, topic string, access shim.Access) shim.Code {
	r.record(ACLCheck, userdata, clientID, username, topic, access)
	return r.Script.Result(ACLCheck, shim.ErrACLDenied)
}

// ACLCheckV3 records the call.
func (r *Recorder) ACLCheckV3(userdata any, access shim.Access, cl shim.Client, msg *shim.ACLMessage) shim.Code {
	r.record(ACLCheck, userdata, access, cl, msg)
	return r.Script.Result(ACLCheck, shim.ErrACLDenied)
}

// Client is a fixed client reference for tests.
type Client struct {
	ClientID   string
	User       string
	RemoteAddr string
	Handle     uintptr
}

// ID returns the client id.
func (c *Client) ID() string { return c.ClientID }

// Username returns the username.
func (c *Client) Username() string { return c.User }

// Address returns the remote address.
func (c *Client) Address() string { return c.RemoteAddr }

// Ref returns the client's identity.
func (c *Client) Ref() uintptr { return c.Handle }
