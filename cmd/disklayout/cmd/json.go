// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"encoding/json"
	"io"

	"github.com/siderolabs/gen/xslices"
	"github.com/siderolabs/go-pointer"

	"github.com/siderolabs/go-disklayout/layout"
)

type diskJSON struct {
	Index uint32 `json:"index"`
	Path  string `json:"path"`
	Style string `json:"style"`

	Size       *uint64 `json:"size,omitempty"`
	SectorSize *uint32 `json:"sector_size,omitempty"`

	MBRSignature *uint32 `json:"mbr_signature,omitempty"`
	MBRChecksum  *uint32 `json:"mbr_checksum,omitempty"`

	GPTDiskID               *string `json:"gpt_disk_id,omitempty"`
	GPTStartingUsableOffset *int64  `json:"gpt_starting_usable_offset,omitempty"`
	GPTUsableLength         *int64  `json:"gpt_usable_length,omitempty"`
	GPTMaxPartitionCount    *uint32 `json:"gpt_max_partition_count,omitempty"`

	Partitions []partitionJSON `json:"partitions"`
}

type partitionJSON struct {
	Style              string `json:"style"`
	Number             uint32 `json:"number"`
	Offset             int64  `json:"offset"`
	Length             int64  `json:"length"`
	RewritePartition   bool   `json:"rewrite_partition"`
	IsServicePartition bool   `json:"is_service_partition"`

	TypeName *string `json:"type_name,omitempty"`

	MBRType          *uint8  `json:"mbr_type,omitempty"`
	MBRBootIndicator *bool   `json:"mbr_boot_indicator,omitempty"`
	MBRRecognized    *bool   `json:"mbr_recognized,omitempty"`
	MBRHiddenSectors *uint32 `json:"mbr_hidden_sectors,omitempty"`

	GPTType       *string `json:"gpt_type,omitempty"`
	GPTID         *string `json:"gpt_id,omitempty"`
	GPTAttributes *uint64 `json:"gpt_attributes,omitempty"`
	GPTName       *string `json:"gpt_name,omitempty"`
}

func newDiskJSON(disk layout.Disk) diskJSON {
	out := diskJSON{
		Index:      disk.Index,
		Path:       disk.Path,
		Style:      disk.PartitionStyle.String(),
		Partitions: xslices.Map(disk.Partitions, newPartitionJSON),
	}

	if out.Partitions == nil {
		out.Partitions = []partitionJSON{}
	}

	if disk.SectorSize != 0 {
		out.Size = pointer.To(disk.Size)
		out.SectorSize = pointer.To(disk.SectorSize)
	}

	switch extra := disk.Extra.(type) {
	case *layout.DiskExtraMBR:
		out.MBRSignature = pointer.To(extra.Signature)
		out.MBRChecksum = pointer.To(extra.Checksum)
	case *layout.DiskExtraGPT:
		out.GPTDiskID = pointer.To(extra.DiskID.String())
		out.GPTStartingUsableOffset = pointer.To(extra.StartingUsableOffset)
		out.GPTUsableLength = pointer.To(extra.UsableLength)
		out.GPTMaxPartitionCount = pointer.To(extra.MaxPartitionCount)
	}

	return out
}

func newPartitionJSON(part layout.Partition) partitionJSON {
	out := partitionJSON{
		Style:              part.PartitionStyle.String(),
		Number:             part.PartitionNumber,
		Offset:             part.StartingOffset,
		Length:             part.PartitionLength,
		RewritePartition:   part.RewritePartition,
		IsServicePartition: part.IsServicePartition,
	}

	switch extra := part.Extra.(type) {
	case *layout.PartitionExtraMBR:
		out.MBRType = pointer.To(extra.PartitionType)
		out.MBRBootIndicator = pointer.To(extra.BootIndicator)
		out.MBRRecognized = pointer.To(extra.RecognizedPartition)
		out.MBRHiddenSectors = pointer.To(extra.HiddenSectors)

		if name := extra.TypeName(); name != "" {
			out.TypeName = pointer.To(name)
		}
	case *layout.PartitionExtraGPT:
		out.GPTType = pointer.To(extra.PartitionType.String())
		out.GPTID = pointer.To(extra.PartitionID.String())
		out.GPTAttributes = pointer.To(extra.Attributes)
		out.GPTName = pointer.To(extra.Label())

		if name := extra.TypeName(); name != "" {
			out.TypeName = pointer.To(name)
		}
	}

	return out
}

func writeJSON(w io.Writer, disks []layout.Disk) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	out := xslices.Map(disks, newDiskJSON)
	if out == nil {
		out = []diskJSON{}
	}

	return enc.Encode(out)
}
