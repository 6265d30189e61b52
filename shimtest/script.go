// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shimtest

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	shim "github.com/mochi-mqtt/mosquitto-shim"
)

// Method names used as Script keys and in recorded calls.
const (
	PluginInit      = "plugin_init"
	PluginCleanup   = "plugin_cleanup"
	SecurityInit    = "security_init"
	SecurityCleanup = "security_cleanup"
	UnpwdCheck      = "unpwd_check"
	ACLCheck        = "acl_check"
)

// Script contains the canned results a substitute implementation returns,
// keyed on method name. Codes may be given by name (auth, acl_denied) or by
// their decimal value.
type Script map[string]shim.Code

// Unmarshal decodes a script from JSON or YAML data.
func (s *Script) Unmarshal(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if data[0] == '{' {
		return json.Unmarshal(data, s)
	}

	return yaml.Unmarshal(data, s)
}

// Result returns the scripted result for a method, or fallback if the method
// is not scripted.
func (s Script) Result(method string, fallback shim.Code) shim.Code {
	if c, ok := s[method]; ok {
		return c
	}

	return fallback
}
