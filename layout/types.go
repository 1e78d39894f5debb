// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import "github.com/google/uuid"

// Well-known GPT partition types.
var (
	GPTTypeEFISystem          = uuid.MustParse("C12A7328-F81F-11D2-BA4B-00A0C93EC93B")
	GPTTypeBIOSBoot           = uuid.MustParse("21686148-6449-6E6F-744E-656564454649")
	GPTTypeMicrosoftReserved  = uuid.MustParse("E3C9E316-0B5C-4DB8-817D-F92DF00215AE")
	GPTTypeMicrosoftBasicData = uuid.MustParse("EBD0A0A2-B9E5-4433-87C0-68B6B72699C7")
	GPTTypeWindowsRecovery    = uuid.MustParse("DE94BBA4-06D1-4D40-A16A-BFD50179D6AC")
	GPTTypeLDMMetadata        = uuid.MustParse("5808C8AA-7E8F-42E0-85D2-E1E90434CFB3")
	GPTTypeLDMData            = uuid.MustParse("AF9B60A0-1431-4F62-BC68-3311714A69AD")
	GPTTypeStorageSpaces      = uuid.MustParse("E75CAF8F-F680-4CEE-AFA3-B001E56EFC2D")
	GPTTypeLinuxFilesystem    = uuid.MustParse("0FC63DAF-8483-4772-8E79-3D69D8477DE4")
	GPTTypeLinuxSwap          = uuid.MustParse("0657FD6D-A4AB-43C4-84E5-0933C84B4F4F")
	GPTTypeLinuxLVM           = uuid.MustParse("E6D6D379-F507-44C2-A23C-238F2A3DF928")
	GPTTypeLinuxRAID          = uuid.MustParse("A19D880F-05FC-4D3B-A006-743F0F84911E")
	GPTTypeAppleHFSPlus       = uuid.MustParse("48465300-0000-11AA-AA11-00306543ECAC")
	GPTTypeAppleAPFS          = uuid.MustParse("7C3457EF-0000-11AA-AA11-00306543ECAC")
)

var gptTypeNames = map[uuid.UUID]string{
	GPTTypeEFISystem:          "EFI System",
	GPTTypeBIOSBoot:           "BIOS boot",
	GPTTypeMicrosoftReserved:  "Microsoft reserved",
	GPTTypeMicrosoftBasicData: "Microsoft basic data",
	GPTTypeWindowsRecovery:    "Windows recovery environment",
	GPTTypeLDMMetadata:        "Windows LDM metadata",
	GPTTypeLDMData:            "Windows LDM data",
	GPTTypeStorageSpaces:      "Windows Storage Spaces",
	GPTTypeLinuxFilesystem:    "Linux filesystem",
	GPTTypeLinuxSwap:          "Linux swap",
	GPTTypeLinuxLVM:           "Linux LVM",
	GPTTypeLinuxRAID:          "Linux RAID",
	GPTTypeAppleHFSPlus:       "Apple HFS+",
	GPTTypeAppleAPFS:          "Apple APFS",
}

// TypeName returns the name of a well-known partition type, or an empty string.
func (p *PartitionExtraGPT) TypeName() string {
	return gptTypeNames[p.PartitionType]
}

// MBR partition types.
const (
	MBRTypeEmpty           = 0x00
	MBRTypeFAT12           = 0x01
	MBRTypeFAT16Small      = 0x04
	MBRTypeExtended        = 0x05
	MBRTypeFAT16           = 0x06
	MBRTypeNTFS            = 0x07
	MBRTypeFAT32           = 0x0b
	MBRTypeFAT32LBA        = 0x0c
	MBRTypeFAT16LBA        = 0x0e
	MBRTypeExtendedLBA     = 0x0f
	MBRTypeWindowsRecovery = 0x27
	MBRTypeWindowsDynamic  = 0x42
	MBRTypeLinuxSwap       = 0x82
	MBRTypeLinux           = 0x83
	MBRTypeLinuxLVM        = 0x8e
	MBRTypeGPTProtective   = 0xee
	MBRTypeEFISystem       = 0xef
	MBRTypeLinuxRAID       = 0xfd
)

var mbrTypeNames = map[uint8]string{
	MBRTypeFAT12:           "FAT12",
	MBRTypeFAT16Small:      "FAT16 (<32MB)",
	MBRTypeExtended:        "Extended",
	MBRTypeFAT16:           "FAT16",
	MBRTypeNTFS:            "NTFS/exFAT",
	MBRTypeFAT32:           "FAT32",
	MBRTypeFAT32LBA:        "FAT32 (LBA)",
	MBRTypeFAT16LBA:        "FAT16 (LBA)",
	MBRTypeExtendedLBA:     "Extended (LBA)",
	MBRTypeWindowsRecovery: "Windows recovery environment",
	MBRTypeWindowsDynamic:  "Windows dynamic volume",
	MBRTypeLinuxSwap:       "Linux swap",
	MBRTypeLinux:           "Linux",
	MBRTypeLinuxLVM:        "Linux LVM",
	MBRTypeGPTProtective:   "GPT protective",
	MBRTypeEFISystem:       "EFI System",
	MBRTypeLinuxRAID:       "Linux RAID autodetect",
}

// TypeName returns the name of a well-known partition type, or an empty string.
func (p *PartitionExtraMBR) TypeName() string {
	return mbrTypeNames[p.PartitionType]
}

// IsContainer returns true for extended partitions, which hold logical partitions.
func (p *PartitionExtraMBR) IsContainer() bool {
	return p.PartitionType == MBRTypeExtended || p.PartitionType == MBRTypeExtendedLBA
}
