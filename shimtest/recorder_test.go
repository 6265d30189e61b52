// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shimtest

import (
	"sync"
	"testing"

	shim "github.com/mochi-mqtt/mosquitto-shim"
	"github.com/mochi-mqtt/mosquitto-shim/abiv2"
	"github.com/mochi-mqtt/mosquitto-shim/abiv3"
	"github.com/stretchr/testify/require"
)

var (
	_ abiv2.Proc = new(Recorder)
	_ abiv3.Proc = new(Recorder)
	_ abiv2.Proc = new(shim.ProcBase)
	_ abiv3.Proc = new(shim.ProcBase)
)

func TestRecorderDefaults(t *testing.T) {
	r := new(Recorder)
	ud, code := r.PluginInit(nil)
	require.Nil(t, ud)
	require.Equal(t, shim.CodeSuccess, code)
	require.Equal(t, shim.CodeSuccess, r.PluginCleanup(nil, nil))
	require.Equal(t, shim.CodeSuccess, r.SecurityInit(nil, nil, false))
	require.Equal(t, shim.CodeSuccess, r.SecurityCleanup(nil, nil, false))
	require.Equal(t, shim.ErrAuth, r.UnpwdCheckV2(nil, "u", "p"))
	require.Equal(t, shim.ErrAuth, r.UnpwdCheckV3(nil, nil, "u", "p"))
	require.Equal(t, shim.ErrACLDenied, r.ACLCheckV2(nil, "id", "u", "t", shim.AccessRead))
	require.Equal(t, shim.ErrACLDenied, r.ACLCheckV3(nil, shim.AccessRead, nil, nil))
	require.Len(t, r.Calls(), 8)
}

func TestRecorderScripted(t *testing.T) {
	r := &Recorder{Script: Script{
		PluginInit: shim.ErrNoMem,
		UnpwdCheck: shim.CodeSuccess,
	}}

	_, code := r.PluginInit(nil)
	require.Equal(t, shim.ErrNoMem, code)
	require.Equal(t, shim.CodeSuccess, r.UnpwdCheckV2(nil, "u", "p"))
	require.Equal(t, shim.CodeSuccess, r.UnpwdCheckV3(nil, nil, "u", "p"))
}

func TestRecorderCallsCopy(t *testing.T) {
	r := new(Recorder)
	r.UnpwdCheckV2("ud", "u", "p")

	calls := r.Calls()
	calls[0].Method = "changed"
	require.Equal(t, UnpwdCheck, r.Calls()[0].Method)
}

func TestRecorderReset(t *testing.T) {
	r := new(Recorder)
	r.UnpwdCheckV2(nil, "u", "p")
	require.Len(t, r.Calls(), 1)

	r.Reset()
	require.Empty(t, r.Calls())
}

func TestRecorderConcurrent(t *testing.T) {
	r := new(Recorder)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ACLCheckV2(nil, "id", "u", "t", shim.AccessWrite)
		}()
	}
	wg.Wait()

	require.Len(t, r.Calls(), 20)
}

func TestClient(t *testing.T) {
	cl := &Client{
		ClientID:   "mochi",
		User:       "melon",
		RemoteAddr: "10.0.0.1",
		Handle:     42,
	}

	require.Equal(t, "mochi", cl.ID())
	require.Equal(t, "melon", cl.Username())
	require.Equal(t, "10.0.0.1", cl.Address())
	require.Equal(t, uintptr(42), cl.Ref())
}
