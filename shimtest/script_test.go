// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shimtest

import (
	"testing"

	shim "github.com/mochi-mqtt/mosquitto-shim"
	"github.com/stretchr/testify/require"
)

var scriptStruct = Script{
	PluginInit: shim.CodeSuccess,
	UnpwdCheck: shim.ErrAuth,
	ACLCheck:   shim.ErrACLDenied,
}

var scriptYAML = []byte(`plugin_init: success
unpwd_check: auth
acl_check: 12
`)

var scriptJSON = []byte(`{"plugin_init":"success","unpwd_check":"auth","acl_check":"acl_denied"}`)

func TestScriptUnmarshalFromYAML(t *testing.T) {
	s := new(Script)
	err := s.Unmarshal(scriptYAML)
	require.NoError(t, err)
	require.Equal(t, scriptStruct, *s)
}

func TestScriptUnmarshalFromJSON(t *testing.T) {
	s := new(Script)
	err := s.Unmarshal(scriptJSON)
	require.NoError(t, err)
	require.Equal(t, scriptStruct, *s)
}

func TestScriptUnmarshalNil(t *testing.T) {
	s := new(Script)
	err := s.Unmarshal([]byte{})
	require.NoError(t, err)
	require.Empty(t, *s)
}

func TestScriptUnmarshalUnknownCode(t *testing.T) {
	s := new(Script)
	require.Error(t, s.Unmarshal([]byte("unpwd_check: bogus\n")))
	require.Error(t, s.Unmarshal([]byte(`{"acl_check":"bogus"}`)))
}

func TestScriptResult(t *testing.T) {
	require.Equal(t, shim.ErrAuth, scriptStruct.Result(UnpwdCheck, shim.CodeSuccess))
	require.Equal(t, shim.ErrNoMem, scriptStruct.Result(SecurityInit, shim.ErrNoMem))

	var s Script
	require.Equal(t, shim.ErrPluginDefer, s.Result(ACLCheck, shim.ErrPluginDefer))
}
