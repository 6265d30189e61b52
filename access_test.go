// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2022 mochi-mqtt, mochi-co
// SPDX-FileContributor: mochi-co

package shim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessString(t *testing.T) {
	require.Equal(t, "none", AccessNone.String())
	require.Equal(t, "read", AccessRead.String())
	require.Equal(t, "write", AccessWrite.String())
	require.Equal(t, "subscribe", AccessSubscribe.String())
	require.Equal(t, "access 8", Access(8).String())
}
