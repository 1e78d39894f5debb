// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package gptutil implements helper functions for GUIDs reported by the platform.
package gptutil

import "github.com/google/uuid"

// GUIDToUUID converts a platform GUID to a UUID.
//
// The platform stores the first three fields (32, 16 and 16 bits) little-endian,
// the trailing 8 bytes are kept as is.
func GUIDToUUID(g []byte) []byte {
	return append(
		[]byte{
			g[3], g[2], g[1], g[0],
			g[5], g[4],
			g[7], g[6],
			g[8], g[9],
		},
		g[10:16]...,
	)
}

// UUIDToGUID converts a UUID to a platform GUID.
func UUIDToGUID(u []byte) []byte {
	return append(
		[]byte{
			u[3], u[2], u[1], u[0],
			u[5], u[4],
			u[7], u[6],
			u[8], u[9],
		},
		u[10:16]...,
	)
}

// ParseGUID returns the canonical identifier for a platform GUID.
func ParseGUID(g []byte) (uuid.UUID, error) {
	return uuid.FromBytes(GUIDToUUID(g))
}
