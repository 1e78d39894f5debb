// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ioctl

// Device types, transfer methods and access bits used to build control codes.
const (
	FileDeviceDisk = 0x00000007

	MethodBuffered = 0

	FileAnyAccess = 0
)

// Disk control codes, expanded as CTL_CODE(DeviceType, Function, Method, Access) in winioctl.h.
const (
	// IOCTLDiskGetDriveLayoutEx returns DRIVE_LAYOUT_INFORMATION_EX.
	IOCTLDiskGetDriveLayoutEx = FileDeviceDisk<<16 | FileAnyAccess<<14 | 0x0014<<2 | MethodBuffered
	// IOCTLDiskGetDriveGeometryEx returns DISK_GEOMETRY_EX.
	IOCTLDiskGetDriveGeometryEx = FileDeviceDisk<<16 | FileAnyAccess<<14 | 0x0028<<2 | MethodBuffered
)
