// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/siderolabs/gen/xslices"

	"github.com/siderolabs/go-disklayout/internal/gptutil"
	"github.com/siderolabs/go-disklayout/internal/layoutstructs"
)

// Decode decodes the output of the drive layout request (DRIVE_LAYOUT_INFORMATION_EX).
//
// If the output is too short to hold the layout header, Decode returns nil disk and no error.
// Errors match ErrDecode.
func Decode(buf []byte) (*Disk, error) {
	hdr, entries, err := layoutstructs.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if hdr == nil {
		return nil, nil //nolint:nilnil
	}

	disk, err := normalize(hdr, entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return disk, nil
}

// normalize builds the disk from the raw header and entries.
//
// MBR layouts are reported with unused slots (four at least), these are dropped.
func normalize(hdr layoutstructs.DriveLayout, entries []layoutstructs.PartitionEntry) (*Disk, error) {
	disk := &Disk{
		PartitionStyle: PartitionStyle(hdr.Get_partition_style()),
	}

	switch disk.PartitionStyle {
	case PartitionStyleMBR:
		disk.Extra = &DiskExtraMBR{
			Signature: hdr.Get_mbr_signature(),
			Checksum:  hdr.Get_mbr_checksum(),
		}
	case PartitionStyleGPT:
		diskID, err := gptutil.ParseGUID(hdr.Get_gpt_disk_id())
		if err != nil {
			return nil, err
		}

		disk.Extra = &DiskExtraGPT{
			DiskID:               diskID,
			StartingUsableOffset: hdr.Get_gpt_starting_usable_offset(),
			UsableLength:         hdr.Get_gpt_usable_length(),
			MaxPartitionCount:    hdr.Get_gpt_max_partition_count(),
		}
	case PartitionStyleRAW:
	default:
		return nil, fmt.Errorf("unknown disk partition style %d", disk.PartitionStyle)
	}

	entries = xslices.Filter(entries, func(entry layoutstructs.PartitionEntry) bool {
		return !isUnusedSlot(entry)
	})

	disk.Partitions = make([]Partition, 0, len(entries))

	for _, entry := range entries {
		part, err := decodePartition(entry)
		if err != nil {
			return nil, fmt.Errorf("partition %d: %w", entry.Get_partition_number(), err)
		}

		disk.Partitions = append(disk.Partitions, part)
	}

	return disk, nil
}

func isUnusedSlot(entry layoutstructs.PartitionEntry) bool {
	return entry.Get_partition_style() == layoutstructs.PARTITION_STYLE_MBR &&
		entry.Get_mbr_partition_type() == layoutstructs.PARTITION_ENTRY_UNUSED
}

func decodePartition(entry layoutstructs.PartitionEntry) (Partition, error) {
	part := Partition{
		PartitionStyle:     PartitionStyle(entry.Get_partition_style()),
		StartingOffset:     entry.Get_starting_offset(),
		PartitionLength:    entry.Get_partition_length(),
		PartitionNumber:    entry.Get_partition_number(),
		RewritePartition:   entry.Get_rewrite_partition(),
		IsServicePartition: entry.Get_is_service_partition(),
	}

	if part.PartitionLength < 0 {
		return Partition{}, fmt.Errorf("negative partition length %d", part.PartitionLength)
	}

	switch part.PartitionStyle {
	case PartitionStyleMBR:
		part.Extra = &PartitionExtraMBR{
			PartitionType:       entry.Get_mbr_partition_type(),
			BootIndicator:       entry.Get_mbr_boot_indicator(),
			RecognizedPartition: entry.Get_mbr_recognized_partition(),
			HiddenSectors:       entry.Get_mbr_hidden_sectors(),
			PartitionID:         uuid.Nil,
		}
	case PartitionStyleGPT:
		typeID, err := gptutil.ParseGUID(entry.Get_gpt_partition_type())
		if err != nil {
			return Partition{}, err
		}

		partID, err := gptutil.ParseGUID(entry.Get_gpt_partition_id())
		if err != nil {
			return Partition{}, err
		}

		part.Extra = &PartitionExtraGPT{
			PartitionType: typeID,
			PartitionID:   partID,
			Attributes:    entry.Get_gpt_attributes(),
			Name:          entry.Get_gpt_name(),
		}
	case PartitionStyleRAW:
	default:
		return Partition{}, fmt.Errorf("unknown partition style %d", part.PartitionStyle)
	}

	return part, nil
}
