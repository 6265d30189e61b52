// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shim

// Option is a single key/value pair from the broker's plugin configuration
// (auth_opt_* lines for v2 hosts, plugin_opt_* lines for v3 hosts).
type Option struct {
	Key   string
	Value string
}

// Options is the option list the broker passes to the lifecycle calls, in the
// order the broker supplied it.
type Options []Option

// Get returns the value of the first option with the given key.
func (o Options) Get(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}

	return "", false
}

// Map returns the options keyed on option key. Where a key is repeated, the
// first value wins, matching Get.
func (o Options) Map() map[string]string {
	m := make(map[string]string, len(o))
	for _, opt := range o {
		if _, ok := m[opt.Key]; !ok {
			m[opt.Key] = opt.Value
		}
	}

	return m
}
