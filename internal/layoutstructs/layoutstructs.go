// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package layoutstructs provides encoded definitions for the disk layout structures
// returned by the disk device control requests.
//
// Offsets follow the 64-bit Windows ABI of winioctl.h.
package layoutstructs

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned when the buffer is shorter than the structures it declares.
var ErrTruncated = errors.New("structure overruns the returned buffer")

// Partition styles as stored in the style discriminants.
const (
	PARTITION_STYLE_MBR = 0 //nolint:revive,stylecheck
	PARTITION_STYLE_GPT = 1 //nolint:revive,stylecheck
	PARTITION_STYLE_RAW = 2 //nolint:revive,stylecheck
)

// PARTITION_ENTRY_UNUSED is the MBR partition type of an empty slot.
const PARTITION_ENTRY_UNUSED = 0x00 //nolint:revive,stylecheck

// Parse splits DRIVE_LAYOUT_INFORMATION_EX into the header and the partition entries.
//
// If the buffer is too short to contain the header, Parse returns nil header and no error:
// the device exists, but it has no usable layout.
// Every entry declared by the header must fit into the buffer.
func Parse(buf []byte) (DriveLayout, []PartitionEntry, error) {
	if len(buf) < DRIVE_LAYOUT_SIZE {
		return nil, nil, nil
	}

	hdr := DriveLayout(buf[:DRIVE_LAYOUT_SIZE])

	count := uint64(hdr.Get_partition_count())
	required := DRIVE_LAYOUT_SIZE + count*PARTITION_ENTRY_SIZE

	if required > uint64(len(buf)) {
		return nil, nil, fmt.Errorf("%w: %d partition entries require %d bytes, got %d", ErrTruncated, count, required, len(buf))
	}

	entries := make([]PartitionEntry, count)

	for i := range entries {
		offset := DRIVE_LAYOUT_SIZE + i*PARTITION_ENTRY_SIZE

		entries[i] = PartitionEntry(buf[offset : offset+PARTITION_ENTRY_SIZE])
	}

	return hdr, entries, nil
}

// ParseGeometry decodes DISK_GEOMETRY_EX.
func ParseGeometry(buf []byte) (DiskGeometry, error) {
	if len(buf) < DISK_GEOMETRY_SIZE {
		return nil, fmt.Errorf("%w: geometry requires %d bytes, got %d", ErrTruncated, DISK_GEOMETRY_SIZE, len(buf))
	}

	return DiskGeometry(buf[:DISK_GEOMETRY_SIZE]), nil
}
