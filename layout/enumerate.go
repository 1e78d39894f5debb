// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/block"
	"github.com/siderolabs/go-disklayout/internal/ioctl"
	"github.com/siderolabs/go-disklayout/internal/layoutstructs"
)

// Enumerate reads the partition layout of physical disks in index order.
//
// Enumeration stops at the first index without a device. Disks without
// a readable layout are omitted. Any other failure aborts the enumeration,
// the returned error matches ErrAccess, ErrIO or ErrDecode.
func Enumerate(opts ...Option) ([]Disk, error) {
	options := applyOptions(opts...)

	var disks []Disk

	for index := range options.MaxIndex {
		disk, found, err := readDisk(&options, index)
		if err != nil {
			return nil, err
		}

		if !found {
			options.Logger.Debug("no more disks", zap.Uint32("index", index))

			break
		}

		if disk == nil {
			options.Logger.Debug("disk has no layout, skipping", zap.Uint32("index", index))

			continue
		}

		disks = append(disks, *disk)
	}

	return disks, nil
}

// readDisk reads a single disk, found is false if there is no device at the index.
func readDisk(options *Options, index uint32) (disk *Disk, found bool, err error) {
	path := block.DevicePath(index)
	logger := options.Logger.With(zap.Uint32("index", index), zap.String("path", path))

	dev, err := options.Opener(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%w: disk %d: %w", ErrAccess, index, err)
	}

	defer func() {
		if closeErr := dev.Close(); closeErr != nil {
			logger.Warn("failed to close disk device", zap.Error(closeErr))
		}
	}()

	queryOpts := []ioctl.QueryOption{
		ioctl.WithLogger(logger),
		ioctl.WithInitialBufferSize(options.InitialBufferSize),
	}

	buf, err := ioctl.Query(dev, ioctl.IOCTLDiskGetDriveLayoutEx, queryOpts...)
	if err != nil {
		return nil, true, fmt.Errorf("%w: disk %d: drive layout: %w", ErrIO, index, err)
	}

	disk, err = Decode(buf)
	if err != nil {
		return nil, true, fmt.Errorf("disk %d: %w", index, err)
	}

	if disk == nil {
		return nil, true, nil
	}

	disk.Index = index
	disk.Path = path

	if options.Geometry {
		if err = readGeometry(dev, disk, queryOpts); err != nil {
			return nil, true, fmt.Errorf("disk %d: %w", index, err)
		}
	}

	logger.Debug("read disk layout",
		zap.Stringer("style", disk.PartitionStyle),
		zap.Int("partitions", disk.PartitionCount()),
	)

	return disk, true, nil
}

func readGeometry(dev Device, disk *Disk, queryOpts []ioctl.QueryOption) error {
	buf, err := ioctl.Query(dev, ioctl.IOCTLDiskGetDriveGeometryEx, queryOpts...)
	if err != nil {
		return fmt.Errorf("%w: drive geometry: %w", ErrIO, err)
	}

	geometry, err := layoutstructs.ParseGeometry(buf)
	if err != nil {
		return fmt.Errorf("%w: drive geometry: %w", ErrDecode, err)
	}

	size := geometry.Get_disk_size()
	if size < 0 {
		return fmt.Errorf("%w: negative disk size %d", ErrDecode, size)
	}

	disk.Size = uint64(size)
	disk.SectorSize = geometry.Get_bytes_per_sector()

	return nil
}
