// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package host

import (
	"bytes"
	"log/slog"
	"testing"

	shim "github.com/mochi-mqtt/mosquitto-shim"
	"github.com/mochi-mqtt/mosquitto-shim/abiv3"
	"github.com/mochi-mqtt/mosquitto-shim/shimtest"
	"github.com/stretchr/testify/require"
)

func newTestInstance(buf *bytes.Buffer, proc abiv3.Proc) *Instance[*abiv3.Shim] {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewInstance(log, func(l *slog.Logger) *abiv3.Shim {
		return abiv3.New(proc, l)
	})
}

func TestNewInstance(t *testing.T) {
	buf := new(bytes.Buffer)
	i := newTestInstance(buf, new(shimtest.Recorder))
	require.False(t, i.ID.IsNil())
	require.NotNil(t, i.Shim)
	require.Nil(t, i.Userdata)

	i.Log.Info("hello")
	require.Contains(t, buf.String(), "instance="+i.ID.String())
}

func TestNewInstanceUniqueIDs(t *testing.T) {
	buf := new(bytes.Buffer)
	a := newTestInstance(buf, new(shimtest.Recorder))
	b := newTestInstance(buf, new(shimtest.Recorder))
	require.NotEqual(t, a.ID, b.ID)
}

func TestInstanceLoggerReachesShim(t *testing.T) {
	buf := new(bytes.Buffer)
	i := newTestInstance(buf, new(shimtest.Recorder))

	code := i.Shim.UnpwdCheck(nil, &shimtest.Client{}, "u", "p")
	require.Equal(t, shim.ErrPluginDefer, code)
	require.Contains(t, buf.String(), "deferring unpwd check")
	require.Contains(t, buf.String(), "instance="+i.ID.String())
}

func TestInstanceStoreLoadRelease(t *testing.T) {
	i := newTestInstance(new(bytes.Buffer), new(shimtest.Recorder))
	i.Userdata = &struct{ n int }{n: 3}

	h := i.Store()
	require.NotZero(t, h)

	got := Load[*abiv3.Shim](h)
	require.Same(t, i, got)
	require.Same(t, i.Userdata, got.Userdata)

	Release(h)
	require.Panics(t, func() {
		Load[*abiv3.Shim](h)
	})
}

func TestInstanceStoreDistinct(t *testing.T) {
	a := newTestInstance(new(bytes.Buffer), new(shimtest.Recorder))
	b := newTestInstance(new(bytes.Buffer), new(shimtest.Recorder))

	ha, hb := a.Store(), b.Store()
	defer Release(ha)
	defer Release(hb)

	require.NotEqual(t, ha, hb)
	require.Same(t, a, Load[*abiv3.Shim](ha))
	require.Same(t, b, Load[*abiv3.Shim](hb))
}

func TestLoadZero(t *testing.T) {
	require.Nil(t, Load[*abiv3.Shim](0))
	require.NotPanics(t, func() {
		Release(0)
	})
}
