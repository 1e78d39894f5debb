// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package block provides access to physical disk devices.
package block

import "strconv"

// DevicePathPrefix is the prefix of the physical disk device paths.
const DevicePathPrefix = `\\.\PhysicalDrive`

// DevicePath returns the path of the physical disk with the given index.
func DevicePath(index uint32) string {
	return DevicePathPrefix + strconv.FormatUint(uint64(index), 10)
}
