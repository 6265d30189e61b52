// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

//go:build !mosq_abi_v2

package plugin

// #include "plugin.h"
import "C"

import (
	"log/slog"
	"sync"
	"unsafe"

	shim "github.com/mochi-mqtt/mosquitto-shim"
	"github.com/mochi-mqtt/mosquitto-shim/abiv3"
	"github.com/mochi-mqtt/mosquitto-shim/internal/host"
)

type instance = host.Instance[*abiv3.Shim]

var registry host.Registry[abiv3.Proc]

// Register installs the implementation the exported entry points forward to.
// It must be called once, before the broker loads the plugin, and panics if
// called again. Until it is called, lifecycle calls succeed and every check
// is deferred.
func Register(proc abiv3.Proc) {
	if err := registry.Set(proc); err != nil {
		panic("plugin: " + err.Error())
	}
}

func newInstance(log *slog.Logger) *instance {
	return host.NewInstance(log, func(l *slog.Logger) *abiv3.Shim {
		return abiv3.New(registry.Get(new(shim.ProcBase)), l)
	})
}

// orphan serves calls which arrive without an instance handle.
var orphan = sync.OnceValue(func() *instance {
	return newInstance(newLogger(nil, abiv3.Version))
})

// lookup returns the instance behind the broker's user data value.
func lookup(userdata C.uintptr_t) *instance {
	if i := host.Load[*abiv3.Shim](uintptr(userdata)); i != nil {
		return i
	}

	return orphan()
}

func goOptions(opts *C.struct_mosquitto_opt, count C.int) shim.Options {
	if opts == nil || count <= 0 {
		return nil
	}

	out := make(shim.Options, 0, int(count))
	for _, o := range unsafe.Slice(opts, int(count)) {
		out = append(out, shim.Option{
			Key:   C.GoString(o.key),
			Value: C.GoString(o.value),
		})
	}

	return out
}

func goMessage(msg *C.struct_mosquitto_acl_msg) *shim.ACLMessage {
	if msg == nil {
		return nil
	}

	m := &shim.ACLMessage{
		Topic:  C.GoString(msg.topic),
		QoS:    int(msg.qos),
		Retain: bool(msg.retain),
	}
	if msg.payload != nil && msg.payloadlen > 0 {
		m.Payload = C.GoBytes(msg.payload, C.int(msg.payloadlen))
	}

	return m
}

// client is a view of the broker's client reference. Fields are read through
// the broker's accessor functions on demand.
type client struct {
	ptr *C.struct_mosquitto
}

func (c client) ID() string {
	if c.ptr == nil {
		return ""
	}
	return C.GoString(C.mosquitto_client_id(c.ptr))
}

func (c client) Username() string {
	if c.ptr == nil {
		return ""
	}
	return C.GoString(C.mosquitto_client_username(c.ptr))
}

func (c client) Address() string {
	if c.ptr == nil {
		return ""
	}
	return C.GoString(C.mosquitto_client_address(c.ptr))
}

func (c client) Ref() uintptr {
	return uintptr(unsafe.Pointer(c.ptr))
}

// The broker's void * user data carries an instance handle, so it is declared
// here as uintptr_t, which has the same representation.

//export mosquitto_auth_plugin_version
func mosquitto_auth_plugin_version() C.int {
	return C.int(abiv3.Version)
}

//export mosquitto_auth_plugin_init
func mosquitto_auth_plugin_init(userdata *C.uintptr_t, opts *C.struct_mosquitto_opt, count C.int) C.int {
	o := goOptions(opts, count)
	inst := newInstance(newLogger(o, abiv3.Version))
	if !registry.Registered() {
		inst.Log.Warn("no implementation registered, all checks will be deferred")
	}

	ud, code := inst.Shim.PluginInit(o)
	inst.Userdata = ud
	if userdata != nil {
		*userdata = C.uintptr_t(inst.Store())
	}

	return C.int(code.Code)
}

//export mosquitto_auth_plugin_cleanup
func mosquitto_auth_plugin_cleanup(userdata C.uintptr_t, opts *C.struct_mosquitto_opt, count C.int) C.int {
	inst := lookup(userdata)
	code := inst.Shim.PluginCleanup(inst.Userdata, goOptions(opts, count))
	host.Release(uintptr(userdata))
	return C.int(code.Code)
}

//export mosquitto_auth_security_init
func mosquitto_auth_security_init(userdata C.uintptr_t, opts *C.struct_mosquitto_opt, count C.int, reload C.bool) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.SecurityInit(inst.Userdata, goOptions(opts, count), bool(reload)).Code)
}

//export mosquitto_auth_security_cleanup
func mosquitto_auth_security_cleanup(userdata C.uintptr_t, opts *C.struct_mosquitto_opt, count C.int, reload C.bool) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.SecurityCleanup(inst.Userdata, goOptions(opts, count), bool(reload)).Code)
}

//export mosquitto_auth_unpwd_check
func mosquitto_auth_unpwd_check(userdata C.uintptr_t, cl *C.struct_mosquitto, username, password *C.char) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.UnpwdCheck(inst.Userdata, client{cl}, C.GoString(username), C.GoString(password)).Code)
}

//export mosquitto_auth_acl_check
func mosquitto_auth_acl_check(userdata C.uintptr_t, access C.int, cl *C.struct_mosquitto, msg *C.struct_mosquitto_acl_msg) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.ACLCheck(inst.Userdata, shim.Access(access), client{cl}, goMessage(msg)).Code)
}

//export mosquitto_auth_psk_key_get
func mosquitto_auth_psk_key_get(userdata C.uintptr_t, cl *C.struct_mosquitto, hint, identity, key *C.char, maxKeyLen C.int) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.PSKKeyGet(inst.Userdata, client{cl}, C.GoString(hint), C.GoString(identity), keyBuffer(key, maxKeyLen)).Code)
}
