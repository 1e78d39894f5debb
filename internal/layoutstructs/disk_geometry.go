// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layoutstructs

import "encoding/binary"

// DiskGeometry is a byte slice representing the fixed part of DISK_GEOMETRY_EX.
//
//	struct {
//	    struct {                      // DISK_GEOMETRY
//	        LARGE_INTEGER Cylinders;         // 0
//	        MEDIA_TYPE    MediaType;         // 8
//	        DWORD         TracksPerCylinder; // 12
//	        DWORD         SectorsPerTrack;   // 16
//	        DWORD         BytesPerSector;    // 20
//	    } Geometry;
//	    LARGE_INTEGER DiskSize;       // 24
//	    BYTE          Data[];         // 32
//	};
type DiskGeometry []byte

// DISK_GEOMETRY_SIZE is the size of the fixed part of DISK_GEOMETRY_EX.
const DISK_GEOMETRY_SIZE = 32 //nolint:revive,stylecheck

// Get_bytes_per_sector returns the sector size.
func (s DiskGeometry) Get_bytes_per_sector() uint32 {
	return binary.LittleEndian.Uint32(s[20:24])
}

// Put_bytes_per_sector sets the sector size.
func (s DiskGeometry) Put_bytes_per_sector(v uint32) {
	binary.LittleEndian.PutUint32(s[20:24], v)
}

// Get_disk_size returns the disk size in bytes.
func (s DiskGeometry) Get_disk_size() int64 {
	return int64(binary.LittleEndian.Uint64(s[24:32]))
}

// Put_disk_size sets the disk size in bytes.
func (s DiskGeometry) Put_disk_size(v int64) {
	binary.LittleEndian.PutUint64(s[24:32], uint64(v))
}
