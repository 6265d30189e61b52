// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

//go:build mosq_abi_v2

package plugin

// #include "plugin.h"
import "C"

import (
	"log/slog"
	"sync"
	"unsafe"

	shim "github.com/mochi-mqtt/mosquitto-shim"
	"github.com/mochi-mqtt/mosquitto-shim/abiv2"
	"github.com/mochi-mqtt/mosquitto-shim/internal/host"
)

type instance = host.Instance[*abiv2.Shim]

var registry host.Registry[abiv2.Proc]

// Register installs the implementation the exported entry points forward to.
// It must be called once, before the broker loads the plugin, and panics if
// called again. Until it is called, lifecycle calls succeed and every check
// is denied.
func Register(proc abiv2.Proc) {
	if err := registry.Set(proc); err != nil {
		panic("plugin: " + err.Error())
	}
}

func newInstance(log *slog.Logger) *instance {
	return host.NewInstance(log, func(l *slog.Logger) *abiv2.Shim {
		return abiv2.New(registry.Get(new(shim.ProcBase)), l)
	})
}

// orphan serves calls which arrive without an instance handle.
var orphan = sync.OnceValue(func() *instance {
	return newInstance(newLogger(nil, abiv2.Version))
})

// lookup returns the instance behind the broker's user data value.
func lookup(userdata C.uintptr_t) *instance {
	if i := host.Load[*abiv2.Shim](uintptr(userdata)); i != nil {
		return i
	}

	return orphan()
}

func goOptions(opts *C.struct_mosquitto_auth_opt, count C.int) shim.Options {
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

// The broker's void * user data carries an instance handle, so it is declared
// here as uintptr_t, which has the same representation.

//export mosquitto_auth_plugin_version
func mosquitto_auth_plugin_version() C.int {
	return C.int(abiv2.Version)
}

//export mosquitto_auth_plugin_init
func mosquitto_auth_plugin_init(userdata *C.uintptr_t, opts *C.struct_mosquitto_auth_opt, count C.int) C.int {
	o := goOptions(opts, count)
	inst := newInstance(newLogger(o, abiv2.Version))
	if !registry.Registered() {
		inst.Log.Warn("no implementation registered, all checks will be denied")
	}

	ud, code := inst.Shim.PluginInit(o)
	inst.Userdata = ud
	if userdata != nil {
		*userdata = C.uintptr_t(inst.Store())
	}

	return C.int(code.Code)
}

//export mosquitto_auth_plugin_cleanup
func mosquitto_auth_plugin_cleanup(userdata C.uintptr_t, opts *C.struct_mosquitto_auth_opt, count C.int) C.int {
	inst := lookup(userdata)
	code := inst.Shim.PluginCleanup(inst.Userdata, goOptions(opts, count))
	host.Release(uintptr(userdata))
	return C.int(code.Code)
}

//export mosquitto_auth_security_init
func mosquitto_auth_security_init(userdata C.uintptr_t, opts *C.struct_mosquitto_auth_opt, count C.int, reload C.bool) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.SecurityInit(inst.Userdata, goOptions(opts, count), bool(reload)).Code)
}

//export mosquitto_auth_security_cleanup
func mosquitto_auth_security_cleanup(userdata C.uintptr_t, opts *C.struct_mosquitto_auth_opt, count C.int, reload C.bool) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.SecurityCleanup(inst.Userdata, goOptions(opts, count), bool(reload)).Code)
}

//export mosquitto_auth_unpwd_check
func mosquitto_auth_unpwd_check(userdata C.uintptr_t, username, password *C.char) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.UnpwdCheck(inst.Userdata, C.GoString(username), C.GoString(password)).Code)
}

//export mosquitto_auth_acl_check
func mosquitto_auth_acl_check(userdata C.uintptr_t, clientID, username, topic *C.char, access C.int) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.ACLCheck(inst.Userdata, C.GoString(clientID), C.GoString(username), C.GoString(topic), shim.Access(access)).Code)
}

//export mosquitto_auth_psk_key_get
func mosquitto_auth_psk_key_get(userdata C.uintptr_t, hint, identity, key *C.char, maxKeyLen C.int) C.int {
	inst := lookup(userdata)
	return C.int(inst.Shim.PSKKeyGet(inst.Userdata, C.GoString(hint), C.GoString(identity), keyBuffer(key, maxKeyLen)).Code)
}
