// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layoutstructs

import "encoding/binary"

// DriveLayout is a byte slice representing the fixed part of DRIVE_LAYOUT_INFORMATION_EX.
//
//	struct {
//	    DWORD PartitionStyle;             // 0
//	    DWORD PartitionCount;             // 4
//	    union {
//	        struct {                      // DRIVE_LAYOUT_INFORMATION_MBR
//	            ULONG Signature;          // 8
//	            ULONG CheckSum;           // 12
//	        } Mbr;
//	        struct {                      // DRIVE_LAYOUT_INFORMATION_GPT
//	            GUID          DiskId;               // 8
//	            LARGE_INTEGER StartingUsableOffset; // 24
//	            LARGE_INTEGER UsableLength;         // 32
//	            ULONG         MaxPartitionCount;    // 40
//	        } Gpt;
//	    };
//	    PARTITION_INFORMATION_EX PartitionEntry[]; // 48
//	};
type DriveLayout []byte

// DRIVE_LAYOUT_SIZE is the offset of the first partition entry.
const DRIVE_LAYOUT_SIZE = 48 //nolint:revive,stylecheck

// Get_partition_style returns the partition style discriminant.
func (s DriveLayout) Get_partition_style() uint32 {
	return binary.LittleEndian.Uint32(s[0:4])
}

// Put_partition_style sets the partition style discriminant.
func (s DriveLayout) Put_partition_style(v uint32) {
	binary.LittleEndian.PutUint32(s[0:4], v)
}

// Get_partition_count returns the number of partition entries that follow.
func (s DriveLayout) Get_partition_count() uint32 {
	return binary.LittleEndian.Uint32(s[4:8])
}

// Put_partition_count sets the number of partition entries.
func (s DriveLayout) Put_partition_count(v uint32) {
	binary.LittleEndian.PutUint32(s[4:8], v)
}

// Get_mbr_signature returns the MBR disk signature.
func (s DriveLayout) Get_mbr_signature() uint32 {
	return binary.LittleEndian.Uint32(s[8:12])
}

// Put_mbr_signature sets the MBR disk signature.
func (s DriveLayout) Put_mbr_signature(v uint32) {
	binary.LittleEndian.PutUint32(s[8:12], v)
}

// Get_mbr_checksum returns the MBR checksum.
func (s DriveLayout) Get_mbr_checksum() uint32 {
	return binary.LittleEndian.Uint32(s[12:16])
}

// Put_mbr_checksum sets the MBR checksum.
func (s DriveLayout) Put_mbr_checksum(v uint32) {
	binary.LittleEndian.PutUint32(s[12:16], v)
}

// Get_gpt_disk_id returns the GPT disk GUID in the platform byte order.
func (s DriveLayout) Get_gpt_disk_id() []byte {
	return s[8:24]
}

// Put_gpt_disk_id sets the GPT disk GUID in the platform byte order.
func (s DriveLayout) Put_gpt_disk_id(v []byte) {
	copy(s[8:24], v)
}

// Get_gpt_starting_usable_offset returns the first usable byte offset.
func (s DriveLayout) Get_gpt_starting_usable_offset() int64 {
	return int64(binary.LittleEndian.Uint64(s[24:32]))
}

// Put_gpt_starting_usable_offset sets the first usable byte offset.
func (s DriveLayout) Put_gpt_starting_usable_offset(v int64) {
	binary.LittleEndian.PutUint64(s[24:32], uint64(v))
}

// Get_gpt_usable_length returns the size of the usable area in bytes.
func (s DriveLayout) Get_gpt_usable_length() int64 {
	return int64(binary.LittleEndian.Uint64(s[32:40]))
}

// Put_gpt_usable_length sets the size of the usable area in bytes.
func (s DriveLayout) Put_gpt_usable_length(v int64) {
	binary.LittleEndian.PutUint64(s[32:40], uint64(v))
}

// Get_gpt_max_partition_count returns the number of partition entries in the GPT.
func (s DriveLayout) Get_gpt_max_partition_count() uint32 {
	return binary.LittleEndian.Uint32(s[40:44])
}

// Put_gpt_max_partition_count sets the number of partition entries in the GPT.
func (s DriveLayout) Put_gpt_max_partition_count(v uint32) {
	binary.LittleEndian.PutUint32(s[40:44], v)
}
