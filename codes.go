// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shim

import (
	"errors"
	"fmt"
	"strconv"
)

// Code contains a host status code and a readable reason for it. The
// integer values match the MOSQ_ERR_* constants of the broker.
type Code struct {
	Reason string
	Code   int
}

// String returns the readable reason for a code.
func (c Code) String() string {
	return c.Reason
}

// Error returns the readable reason for a code.
func (c Code) Error() string {
	return c.Reason
}

// Is reports whether two codes carry the same status value, regardless of reason.
func (c Code) Is(target error) bool {
	var t Code
	if !errors.As(target, &t) {
		return false
	}

	return c.Code == t.Code
}

var (
	// ErrUnknownCode indicates a code name which does not match any known status.
	ErrUnknownCode = errors.New("unknown status code")

	CodeAuthContinue    = Code{Code: -4, Reason: "auth continue"}
	CodeNoSubscribers   = Code{Code: -3, Reason: "no subscribers"}
	CodeSubExists       = Code{Code: -2, Reason: "subscription exists"}
	CodeConnPending     = Code{Code: -1, Reason: "connection pending"}
	CodeSuccess         = Code{Code: 0, Reason: "success"}
	ErrNoMem            = Code{Code: 1, Reason: "out of memory"}
	ErrProtocol         = Code{Code: 2, Reason: "protocol error"}
	ErrInval            = Code{Code: 3, Reason: "invalid input"}
	ErrNoConn           = Code{Code: 4, Reason: "no connection"}
	ErrConnRefused      = Code{Code: 5, Reason: "connection refused"}
	ErrNotFound         = Code{Code: 6, Reason: "not found"}
	ErrConnLost         = Code{Code: 7, Reason: "connection lost"}
	ErrTLS              = Code{Code: 8, Reason: "tls error"}
	ErrPayloadSize      = Code{Code: 9, Reason: "payload too large"}
	ErrNotSupported     = Code{Code: 10, Reason: "not supported"}
	ErrAuth             = Code{Code: 11, Reason: "authentication failed"}
	ErrACLDenied        = Code{Code: 12, Reason: "acl access denied"}
	ErrUnknown          = Code{Code: 13, Reason: "unknown error"}
	ErrErrno            = Code{Code: 14, Reason: "system error"}
	ErrEAI              = Code{Code: 15, Reason: "lookup error"}
	ErrProxy            = Code{Code: 16, Reason: "proxy error"}
	ErrPluginDefer      = Code{Code: 17, Reason: "plugin defer"}
	ErrMalformedUTF8    = Code{Code: 18, Reason: "malformed utf-8"}
	ErrKeepalive        = Code{Code: 19, Reason: "keepalive exceeded"}
	ErrLookup           = Code{Code: 20, Reason: "lookup failed"}
	ErrMalformedPacket  = Code{Code: 21, Reason: "malformed packet"}
	ErrDuplicateProp    = Code{Code: 22, Reason: "duplicate property"}
	ErrTLSHandshake     = Code{Code: 23, Reason: "tls handshake failed"}
	ErrQosNotSupported  = Code{Code: 24, Reason: "qos not supported"}
	ErrOversizePacket   = Code{Code: 25, Reason: "oversize packet"}
	ErrOCSP             = Code{Code: 26, Reason: "ocsp error"}
	ErrTimeout          = Code{Code: 27, Reason: "timeout"}
	ErrRetainNotSupport = Code{Code: 28, Reason: "retain not supported"}
	ErrTopicAliasInval  = Code{Code: 29, Reason: "topic alias invalid"}
	ErrAdministrative   = Code{Code: 30, Reason: "administrative action"}
	ErrAlreadyExists    = Code{Code: 31, Reason: "already exists"}
)

// codeNames are the text names of the known codes, used for marshalling.
var codeNames = map[string]Code{
	"auth_continue":        CodeAuthContinue,
	"no_subscribers":       CodeNoSubscribers,
	"sub_exists":           CodeSubExists,
	"conn_pending":         CodeConnPending,
	"success":              CodeSuccess,
	"nomem":                ErrNoMem,
	"protocol":             ErrProtocol,
	"inval":                ErrInval,
	"no_conn":              ErrNoConn,
	"conn_refused":         ErrConnRefused,
	"not_found":            ErrNotFound,
	"conn_lost":            ErrConnLost,
	"tls":                  ErrTLS,
	"payload_size":         ErrPayloadSize,
	"not_supported":        ErrNotSupported,
	"auth":                 ErrAuth,
	"acl_denied":           ErrACLDenied,
	"unknown":              ErrUnknown,
	"errno":                ErrErrno,
	"eai":                  ErrEAI,
	"proxy":                ErrProxy,
	"plugin_defer":         ErrPluginDefer,
	"malformed_utf8":       ErrMalformedUTF8,
	"keepalive":            ErrKeepalive,
	"lookup":               ErrLookup,
	"malformed_packet":     ErrMalformedPacket,
	"duplicate_property":   ErrDuplicateProp,
	"tls_handshake":        ErrTLSHandshake,
	"qos_not_supported":    ErrQosNotSupported,
	"oversize_packet":      ErrOversizePacket,
	"ocsp":                 ErrOCSP,
	"timeout":              ErrTimeout,
	"retain_not_supported": ErrRetainNotSupport,
	"topic_alias_invalid":  ErrTopicAliasInval,
	"administrative":       ErrAdministrative,
	"already_exists":       ErrAlreadyExists,
}

// codeValues indexes the known codes by their status value.
var codeValues = func() map[int]string {
	m := make(map[int]string, len(codeNames))
	for name, c := range codeNames {
		m[c.Code] = name
	}
	return m
}()

// CodeOf returns the known code for a raw status value. Values the broker
// defines but this package does not name are returned with a generic reason
// so they can still be passed through untouched.
func CodeOf(v int) Code {
	if name, ok := codeValues[v]; ok {
		return codeNames[name]
	}

	return Code{Code: v, Reason: "status " + strconv.Itoa(v)}
}

// Name returns the text name of a code, or its decimal value if it is not known.
func (c Code) Name() string {
	if name, ok := codeValues[c.Code]; ok {
		return name
	}

	return strconv.Itoa(c.Code)
}

// MarshalText encodes the code as its text name.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.Name()), nil
}

// UnmarshalText decodes a code from a text name or a decimal status value.
func (c *Code) UnmarshalText(b []byte) error {
	s := string(b)
	if known, ok := codeNames[s]; ok {
		*c = known
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}

	*c = CodeOf(v)
	return nil
}

// Normalize converts the deprecated deny codes into a request for the broker
// to consult the next configured plugin. Every other code is returned as is.
func Normalize(c Code) Code {
	switch c.Code {
	case ErrAuth.Code, ErrACLDenied.Code:
		return ErrPluginDefer
	}

	return c
}
