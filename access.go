// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shim

import "strconv"

const (
	AccessNone      Access = 0x00 // no access requested
	AccessRead      Access = 0x01 // a message is about to be delivered to the client
	AccessWrite     Access = 0x02 // the client is publishing a message
	AccessSubscribe Access = 0x04 // the client is subscribing to a filter (v3 hosts only)
)

// Access is the kind of access the broker is asking an ACL check about.
type Access int

// String returns the readable name of the access type.
func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessSubscribe:
		return "subscribe"
	}

	return "access " + strconv.Itoa(int(a))
}
