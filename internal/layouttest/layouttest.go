// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package layouttest contains common test code for building device responses.
package layouttest

import (
	"encoding/binary"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/siderolabs/go-disklayout/internal/gptutil"
	"github.com/siderolabs/go-disklayout/internal/layoutstructs"
)

// MBREntry describes an MBR partition entry.
type MBREntry struct {
	Type          uint8
	Boot          bool
	Recognized    bool
	HiddenSectors uint32

	Number uint32
	Offset int64
	Length int64
}

// GPTEntry describes a GPT partition entry.
type GPTEntry struct {
	Type       uuid.UUID
	ID         uuid.UUID
	Attributes uint64
	Name       string

	Number uint32
	Offset int64
	Length int64
}

// MBRLayout builds the DRIVE_LAYOUT_INFORMATION_EX response of an MBR disk.
func MBRLayout(signature, checksum uint32, entries ...MBREntry) []byte {
	buf, hdr, parts := alloc(layoutstructs.PARTITION_STYLE_MBR, len(entries))

	hdr.Put_mbr_signature(signature)
	hdr.Put_mbr_checksum(checksum)

	for i, e := range entries {
		p := parts[i]

		p.Put_partition_style(layoutstructs.PARTITION_STYLE_MBR)
		p.Put_partition_number(e.Number)
		p.Put_starting_offset(e.Offset)
		p.Put_partition_length(e.Length)
		p.Put_mbr_partition_type(e.Type)
		p.Put_mbr_boot_indicator(e.Boot)
		p.Put_mbr_recognized_partition(e.Recognized)
		p.Put_mbr_hidden_sectors(e.HiddenSectors)
	}

	return buf
}

// GPTLayout builds the DRIVE_LAYOUT_INFORMATION_EX response of a GPT disk.
func GPTLayout(diskID uuid.UUID, startingUsableOffset, usableLength int64, entries ...GPTEntry) []byte {
	buf, hdr, parts := alloc(layoutstructs.PARTITION_STYLE_GPT, len(entries))

	hdr.Put_gpt_disk_id(gptutil.UUIDToGUID(diskID[:]))
	hdr.Put_gpt_starting_usable_offset(startingUsableOffset)
	hdr.Put_gpt_usable_length(usableLength)
	hdr.Put_gpt_max_partition_count(128)

	for i, e := range entries {
		p := parts[i]

		p.Put_partition_style(layoutstructs.PARTITION_STYLE_GPT)
		p.Put_partition_number(e.Number)
		p.Put_starting_offset(e.Offset)
		p.Put_partition_length(e.Length)
		p.Put_gpt_partition_type(gptutil.UUIDToGUID(e.Type[:]))
		p.Put_gpt_partition_id(gptutil.UUIDToGUID(e.ID[:]))
		p.Put_gpt_attributes(e.Attributes)
		p.Put_gpt_name(Name(e.Name))
	}

	return buf
}

// RawLayout builds the DRIVE_LAYOUT_INFORMATION_EX response of a disk without a partition table.
func RawLayout() []byte {
	buf, _, _ := alloc(layoutstructs.PARTITION_STYLE_RAW, 0)

	return buf
}

// Name encodes a partition name into the fixed-size UTF-16 buffer, truncating it if needed.
func Name(s string) [layoutstructs.GPT_NAME_LENGTH]uint16 {
	var name [layoutstructs.GPT_NAME_LENGTH]uint16

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}

	for i := 0; i < len(name) && 2*i+1 < len(encoded); i++ {
		name[i] = binary.LittleEndian.Uint16(encoded[2*i:])
	}

	return name
}

// Geometry builds the DISK_GEOMETRY_EX response.
func Geometry(bytesPerSector uint32, size int64) []byte {
	buf := make([]byte, layoutstructs.DISK_GEOMETRY_SIZE+8)

	geom := layoutstructs.DiskGeometry(buf)
	geom.Put_bytes_per_sector(bytesPerSector)
	geom.Put_disk_size(size)

	return buf
}

func alloc(style uint32, count int) ([]byte, layoutstructs.DriveLayout, []layoutstructs.PartitionEntry) {
	buf := make([]byte, layoutstructs.DRIVE_LAYOUT_SIZE+count*layoutstructs.PARTITION_ENTRY_SIZE)

	hdr := layoutstructs.DriveLayout(buf[:layoutstructs.DRIVE_LAYOUT_SIZE])
	hdr.Put_partition_style(style)
	hdr.Put_partition_count(uint32(count))

	parts := make([]layoutstructs.PartitionEntry, count)

	for i := range parts {
		offset := layoutstructs.DRIVE_LAYOUT_SIZE + i*layoutstructs.PARTITION_ENTRY_SIZE

		parts[i] = layoutstructs.PartitionEntry(buf[offset : offset+layoutstructs.PARTITION_ENTRY_SIZE])
	}

	return buf, hdr, parts
}
