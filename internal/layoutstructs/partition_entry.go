// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layoutstructs

import "encoding/binary"

// PartitionEntry is a byte slice representing PARTITION_INFORMATION_EX.
//
//	struct {
//	    PARTITION_STYLE PartitionStyle;     // 0
//	    LARGE_INTEGER   StartingOffset;     // 8
//	    LARGE_INTEGER   PartitionLength;    // 16
//	    DWORD           PartitionNumber;    // 24
//	    BOOLEAN         RewritePartition;   // 28
//	    BOOLEAN         IsServicePartition; // 29
//	    union {
//	        struct {                        // PARTITION_INFORMATION_MBR
//	            BYTE    PartitionType;       // 32
//	            BOOLEAN BootIndicator;       // 33
//	            BOOLEAN RecognizedPartition; // 34
//	            DWORD   HiddenSectors;       // 36
//	        } Mbr;
//	        struct {                        // PARTITION_INFORMATION_GPT
//	            GUID    PartitionType;       // 32
//	            GUID    PartitionId;         // 48
//	            DWORD64 Attributes;          // 64
//	            WCHAR   Name[36];            // 72
//	        } Gpt;
//	    };
//	};
type PartitionEntry []byte

// PARTITION_ENTRY_SIZE is the stride of the partition entry array.
const PARTITION_ENTRY_SIZE = 144 //nolint:revive,stylecheck

// GPT_NAME_LENGTH is the length of the GPT partition name in UTF-16 code units.
const GPT_NAME_LENGTH = 36 //nolint:revive,stylecheck

// Get_partition_style returns the partition style discriminant.
func (s PartitionEntry) Get_partition_style() uint32 {
	return binary.LittleEndian.Uint32(s[0:4])
}

// Put_partition_style sets the partition style discriminant.
func (s PartitionEntry) Put_partition_style(v uint32) {
	binary.LittleEndian.PutUint32(s[0:4], v)
}

// Get_starting_offset returns the partition offset in bytes.
func (s PartitionEntry) Get_starting_offset() int64 {
	return int64(binary.LittleEndian.Uint64(s[8:16]))
}

// Put_starting_offset sets the partition offset in bytes.
func (s PartitionEntry) Put_starting_offset(v int64) {
	binary.LittleEndian.PutUint64(s[8:16], uint64(v))
}

// Get_partition_length returns the partition length in bytes.
func (s PartitionEntry) Get_partition_length() int64 {
	return int64(binary.LittleEndian.Uint64(s[16:24]))
}

// Put_partition_length sets the partition length in bytes.
func (s PartitionEntry) Put_partition_length(v int64) {
	binary.LittleEndian.PutUint64(s[16:24], uint64(v))
}

// Get_partition_number returns the partition number.
func (s PartitionEntry) Get_partition_number() uint32 {
	return binary.LittleEndian.Uint32(s[24:28])
}

// Put_partition_number sets the partition number.
func (s PartitionEntry) Put_partition_number(v uint32) {
	binary.LittleEndian.PutUint32(s[24:28], v)
}

// Get_rewrite_partition returns the rewrite flag.
func (s PartitionEntry) Get_rewrite_partition() bool {
	return s[28] != 0
}

// Put_rewrite_partition sets the rewrite flag.
func (s PartitionEntry) Put_rewrite_partition(v bool) {
	s[28] = boolToByte(v)
}

// Get_is_service_partition returns the service partition flag.
func (s PartitionEntry) Get_is_service_partition() bool {
	return s[29] != 0
}

// Put_is_service_partition sets the service partition flag.
func (s PartitionEntry) Put_is_service_partition(v bool) {
	s[29] = boolToByte(v)
}

// Get_mbr_partition_type returns the MBR partition type.
func (s PartitionEntry) Get_mbr_partition_type() uint8 {
	return s[32]
}

// Put_mbr_partition_type sets the MBR partition type.
func (s PartitionEntry) Put_mbr_partition_type(v uint8) {
	s[32] = v
}

// Get_mbr_boot_indicator returns the MBR boot indicator.
func (s PartitionEntry) Get_mbr_boot_indicator() bool {
	return s[33] != 0
}

// Put_mbr_boot_indicator sets the MBR boot indicator.
func (s PartitionEntry) Put_mbr_boot_indicator(v bool) {
	s[33] = boolToByte(v)
}

// Get_mbr_recognized_partition returns whether the MBR partition type is recognized.
func (s PartitionEntry) Get_mbr_recognized_partition() bool {
	return s[34] != 0
}

// Put_mbr_recognized_partition sets whether the MBR partition type is recognized.
func (s PartitionEntry) Put_mbr_recognized_partition(v bool) {
	s[34] = boolToByte(v)
}

// Get_mbr_hidden_sectors returns the number of hidden sectors.
func (s PartitionEntry) Get_mbr_hidden_sectors() uint32 {
	return binary.LittleEndian.Uint32(s[36:40])
}

// Put_mbr_hidden_sectors sets the number of hidden sectors.
func (s PartitionEntry) Put_mbr_hidden_sectors(v uint32) {
	binary.LittleEndian.PutUint32(s[36:40], v)
}

// Get_gpt_partition_type returns the GPT partition type GUID in the platform byte order.
func (s PartitionEntry) Get_gpt_partition_type() []byte {
	return s[32:48]
}

// Put_gpt_partition_type sets the GPT partition type GUID in the platform byte order.
func (s PartitionEntry) Put_gpt_partition_type(v []byte) {
	copy(s[32:48], v)
}

// Get_gpt_partition_id returns the GPT partition GUID in the platform byte order.
func (s PartitionEntry) Get_gpt_partition_id() []byte {
	return s[48:64]
}

// Put_gpt_partition_id sets the GPT partition GUID in the platform byte order.
func (s PartitionEntry) Put_gpt_partition_id(v []byte) {
	copy(s[48:64], v)
}

// Get_gpt_attributes returns the GPT attribute bits.
func (s PartitionEntry) Get_gpt_attributes() uint64 {
	return binary.LittleEndian.Uint64(s[64:72])
}

// Put_gpt_attributes sets the GPT attribute bits.
func (s PartitionEntry) Put_gpt_attributes(v uint64) {
	binary.LittleEndian.PutUint64(s[64:72], v)
}

// Get_gpt_name returns the GPT partition name as UTF-16 code units.
func (s PartitionEntry) Get_gpt_name() [GPT_NAME_LENGTH]uint16 {
	var name [GPT_NAME_LENGTH]uint16

	for i := range name {
		name[i] = binary.LittleEndian.Uint16(s[72+2*i:])
	}

	return name
}

// Put_gpt_name sets the GPT partition name as UTF-16 code units.
func (s PartitionEntry) Put_gpt_name(v [GPT_NAME_LENGTH]uint16) {
	for i, u := range v {
		binary.LittleEndian.PutUint16(s[72+2*i:], u)
	}
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}
