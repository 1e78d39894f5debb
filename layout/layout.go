// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package layout enumerates physical disks and decodes their partition layout.
package layout

import (
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/siderolabs/go-disklayout/internal/ioctl"
	"github.com/siderolabs/go-disklayout/internal/layoutstructs"
)

// Common errors.
var (
	ErrAccess = errors.New("failed to open disk device")
	ErrIO     = errors.New("disk device control request failed")
	ErrDecode = errors.New("malformed disk layout")

	// ErrBufferTooSmall should be reported by Device.IOControl when the output buffer is too small.
	ErrBufferTooSmall = ioctl.ErrBufferTooSmall
)

// PartitionStyle is the partition table format.
type PartitionStyle uint32

// Partition styles.
const (
	PartitionStyleMBR PartitionStyle = layoutstructs.PARTITION_STYLE_MBR
	PartitionStyleGPT PartitionStyle = layoutstructs.PARTITION_STYLE_GPT
	PartitionStyleRAW PartitionStyle = layoutstructs.PARTITION_STYLE_RAW
)

func (s PartitionStyle) String() string {
	switch s {
	case PartitionStyleMBR:
		return "mbr"
	case PartitionStyleGPT:
		return "gpt"
	case PartitionStyleRAW:
		return "raw"
	default:
		return "unknown(" + strconv.FormatUint(uint64(s), 10) + ")"
	}
}

// Disk is the partition layout of a single physical disk.
type Disk struct { //nolint:govet
	// Index of the physical disk, only set by Enumerate.
	Index uint32
	// Path of the device the disk was read from, only set by Enumerate.
	Path string

	PartitionStyle PartitionStyle

	// Partitions in the order reported by the device.
	//
	// Unused MBR slots are never included.
	Partitions []Partition

	// Extra is *DiskExtraMBR or *DiskExtraGPT, matching PartitionStyle.
	//
	// It is nil for RAW disks.
	Extra DiskExtra

	// Size of the disk in bytes, only set if geometry was requested.
	Size uint64
	// SectorSize in bytes, only set if geometry was requested.
	SectorSize uint32
}

// PartitionCount returns the number of partitions on the disk.
func (d *Disk) PartitionCount() int {
	return len(d.Partitions)
}

// DiskExtra is the partition style specific information of a disk.
type DiskExtra interface {
	diskExtra()
}

// DiskExtraMBR describes an MBR disk.
type DiskExtraMBR struct {
	Signature uint32
	Checksum  uint32
}

// DiskExtraGPT describes a GPT disk.
type DiskExtraGPT struct {
	DiskID uuid.UUID

	// StartingUsableOffset is the first byte of the area available to partitions.
	StartingUsableOffset int64
	// UsableLength is the size of the area available to partitions in bytes.
	UsableLength int64

	MaxPartitionCount uint32
}

func (*DiskExtraMBR) diskExtra() {}
func (*DiskExtraGPT) diskExtra() {}

// Partition is a single partition of a disk.
type Partition struct { //nolint:govet
	PartitionStyle PartitionStyle

	// StartingOffset is the offset of the partition from the start of the disk in bytes.
	StartingOffset int64
	// PartitionLength is the size of the partition in bytes.
	PartitionLength int64

	// PartitionNumber is assigned by the device (1-based).
	PartitionNumber uint32

	RewritePartition   bool
	IsServicePartition bool

	// Extra is *PartitionExtraMBR or *PartitionExtraGPT, matching PartitionStyle.
	//
	// It is nil for RAW partitions.
	Extra PartitionExtra
}

// PartitionExtra is the partition style specific information of a partition.
type PartitionExtra interface {
	partitionExtra()
}

// PartitionExtraMBR describes an MBR partition.
type PartitionExtraMBR struct {
	PartitionType       uint8
	BootIndicator       bool
	RecognizedPartition bool
	HiddenSectors       uint32

	// PartitionID is always uuid.Nil, MBR partitions have no identifier.
	PartitionID uuid.UUID
}

// PartitionExtraGPT describes a GPT partition.
type PartitionExtraGPT struct {
	PartitionType uuid.UUID
	PartitionID   uuid.UUID
	Attributes    uint64

	// Name is the raw partition name, see Label.
	Name [layoutstructs.GPT_NAME_LENGTH]uint16
}

func (*PartitionExtraMBR) partitionExtra() {}
func (*PartitionExtraGPT) partitionExtra() {}
