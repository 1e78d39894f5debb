// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/uuid"
	"github.com/siderolabs/gen/xslices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/siderolabs/go-disklayout/block"
	"github.com/siderolabs/go-disklayout/internal/ioctl"
	"github.com/siderolabs/go-disklayout/internal/layouttest"
	"github.com/siderolabs/go-disklayout/layout"
)

func opener(sys *layouttest.System) layout.Opener {
	return func(path string) (layout.Device, error) {
		dev, err := sys.Open(path)
		if err != nil {
			return nil, err
		}

		return dev, nil
	}
}

func layoutDevice(resp []byte) *layouttest.Device {
	return &layouttest.Device{
		Responses: map[uint32][]byte{
			ioctl.IOCTLDiskGetDriveLayoutEx: resp,
		},
	}
}

func twoPartitionGPT() []byte {
	return layouttest.GPTLayout(uuid.New(), 17408, 1<<30,
		layouttest.GPTEntry{Type: layout.GPTTypeEFISystem, ID: uuid.New(), Number: 1, Offset: MiB, Length: 100 * MiB, Name: "EFI"},
		layouttest.GPTEntry{Type: layout.GPTTypeLinuxFilesystem, ID: uuid.New(), Number: 2, Offset: 101 * MiB, Length: 512 * MiB, Name: "root"},
	)
}

func TestEnumerateStopsAtMissingDevice(t *testing.T) {
	dev0 := layoutDevice(twoPartitionGPT())
	dev2 := layoutDevice(layouttest.RawLayout())

	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{
			block.DevicePath(0): dev0,
			block.DevicePath(2): dev2,
		},
	}

	disks, err := layout.Enumerate(
		layout.WithLogger(zaptest.NewLogger(t)),
		layout.WithOpener(opener(sys)),
	)
	require.NoError(t, err)

	require.Len(t, disks, 1)
	assert.EqualValues(t, 0, disks[0].Index)
	assert.Equal(t, `\\.\PhysicalDrive0`, disks[0].Path)
	assert.Equal(t, layout.PartitionStyleGPT, disks[0].PartitionStyle)
	assert.Equal(t, 2, disks[0].PartitionCount())

	assert.Equal(t, []string{block.DevicePath(0), block.DevicePath(1)}, sys.Opened)
	assert.Equal(t, 1, dev0.Closed)
	assert.Empty(t, dev2.Calls)
	assert.Equal(t, 0, dev2.Closed)
}

func TestEnumerateMaxIndex(t *testing.T) {
	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{
			block.DevicePath(0): layoutDevice(twoPartitionGPT()),
			block.DevicePath(1): layoutDevice(layouttest.RawLayout()),
			block.DevicePath(2): layoutDevice(layouttest.RawLayout()),
		},
	}

	disks, err := layout.Enumerate(
		layout.WithLogger(zaptest.NewLogger(t)),
		layout.WithOpener(opener(sys)),
		layout.WithMaxIndex(2),
	)
	require.NoError(t, err)

	require.Len(t, disks, 2)
	assert.EqualValues(t, 1, disks[1].Index)
	assert.Equal(t, layout.PartitionStyleRAW, disks[1].PartitionStyle)

	assert.Equal(t, []string{block.DevicePath(0), block.DevicePath(1)}, sys.Opened)
}

func TestEnumerateDefaultMaxIndex(t *testing.T) {
	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{},
	}

	for i := range uint32(layout.DefaultMaxIndex + 4) {
		sys.Devices[block.DevicePath(i)] = layoutDevice(layouttest.RawLayout())
	}

	disks, err := layout.Enumerate(layout.WithOpener(opener(sys)))
	require.NoError(t, err)

	assert.Len(t, disks, layout.DefaultMaxIndex)
	assert.Len(t, sys.Opened, layout.DefaultMaxIndex)
}

func TestEnumerateNoDevices(t *testing.T) {
	sys := &layouttest.System{}

	disks, err := layout.Enumerate(layout.WithOpener(opener(sys)))
	require.NoError(t, err)

	assert.Empty(t, disks)
	assert.Equal(t, []string{block.DevicePath(0)}, sys.Opened)
}

func TestEnumerateSkipsMissingLayout(t *testing.T) {
	dev0 := layoutDevice(make([]byte, 16))
	dev1 := layoutDevice(layouttest.MBRLayout(0x1234, 0,
		layouttest.MBREntry{},
		layouttest.MBREntry{Type: layout.MBRTypeNTFS, Number: 1, Offset: MiB, Length: MiB, Recognized: true},
		layouttest.MBREntry{},
		layouttest.MBREntry{Type: layout.MBRTypeLinux, Number: 2, Offset: 2 * MiB, Length: MiB, Recognized: true},
	))

	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{
			block.DevicePath(0): dev0,
			block.DevicePath(1): dev1,
		},
	}

	disks, err := layout.Enumerate(
		layout.WithLogger(zaptest.NewLogger(t)),
		layout.WithOpener(opener(sys)),
	)
	require.NoError(t, err)

	require.Len(t, disks, 1)
	assert.EqualValues(t, 1, disks[0].Index)
	require.Len(t, disks[0].Partitions, 2)
	assert.EqualValues(t, 1, disks[0].Partitions[0].PartitionNumber)
	assert.EqualValues(t, 2, disks[0].Partitions[1].PartitionNumber)

	assert.Equal(t, 1, dev0.Closed)
	assert.Equal(t, 1, dev1.Closed)
}

func TestEnumerateBufferGrowth(t *testing.T) {
	entries := make([]layouttest.GPTEntry, 128)

	for i := range entries {
		entries[i] = layouttest.GPTEntry{
			Type:   layout.GPTTypeMicrosoftBasicData,
			ID:     uuid.New(),
			Number: uint32(i + 1),
			Offset: int64(i+1) * MiB,
			Length: MiB,
		}
	}

	resp := layouttest.GPTLayout(uuid.New(), 17408, 1<<30, entries...)
	require.Len(t, resp, 18480)

	for _, test := range []struct {
		name string

		opts []layout.Option

		expectedSizes []int
	}{
		{
			name:          "default",
			expectedSizes: []int{256, 512, 1024, 2048, 4096, 8192, 16384, 32768},
		},
		{
			name:          "initial buffer size",
			opts:          []layout.Option{layout.WithInitialBufferSize(20000)},
			expectedSizes: []int{20000},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			dev := layoutDevice(resp)

			sys := &layouttest.System{
				Devices: map[string]*layouttest.Device{
					block.DevicePath(0): dev,
				},
			}

			disks, err := layout.Enumerate(append(test.opts,
				layout.WithLogger(zaptest.NewLogger(t)),
				layout.WithOpener(opener(sys)),
			)...)
			require.NoError(t, err)

			require.Len(t, disks, 1)
			assert.Len(t, disks[0].Partitions, 128)

			sizes := make([]int, 0, len(dev.Calls))

			for _, call := range dev.Calls {
				assert.EqualValues(t, ioctl.IOCTLDiskGetDriveLayoutEx, call.Code)

				sizes = append(sizes, call.BufferSize)
			}

			assert.Equal(t, test.expectedSizes, sizes)
		})
	}
}

func TestEnumerateGeometry(t *testing.T) {
	dev := &layouttest.Device{
		Responses: map[uint32][]byte{
			ioctl.IOCTLDiskGetDriveLayoutEx:   twoPartitionGPT(),
			ioctl.IOCTLDiskGetDriveGeometryEx: layouttest.Geometry(4096, 256060514304),
		},
	}

	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{
			block.DevicePath(0): dev,
		},
	}

	disks, err := layout.Enumerate(layout.WithOpener(opener(sys)))
	require.NoError(t, err)

	require.Len(t, disks, 1)
	assert.Zero(t, disks[0].Size)
	assert.Zero(t, disks[0].SectorSize)
	assert.NotContains(t, callCodes(dev), uint32(ioctl.IOCTLDiskGetDriveGeometryEx))

	disks, err = layout.Enumerate(layout.WithOpener(opener(sys)), layout.WithGeometry(true))
	require.NoError(t, err)

	require.Len(t, disks, 1)
	assert.EqualValues(t, 256060514304, disks[0].Size)
	assert.EqualValues(t, 4096, disks[0].SectorSize)
	assert.Contains(t, callCodes(dev), uint32(ioctl.IOCTLDiskGetDriveGeometryEx))
}

func callCodes(dev *layouttest.Device) []uint32 {
	return xslices.Map(dev.Calls, func(call layouttest.Call) uint32 {
		return call.Code
	})
}

func TestEnumerateErrors(t *testing.T) {
	errNotReady := errors.New("the device is not ready")

	for _, test := range []struct { //nolint:govet
		name string

		device    *layouttest.Device
		openErr   error
		opts      []layout.Option
		expected  error
		cause     error
		wasClosed bool
	}{
		{
			name:     "access denied",
			openErr:  fs.ErrPermission,
			expected: layout.ErrAccess,
			cause:    fs.ErrPermission,
		},
		{
			name: "layout request failure",
			device: &layouttest.Device{
				Errors: map[uint32]error{
					ioctl.IOCTLDiskGetDriveLayoutEx: errNotReady,
				},
			},
			expected:  layout.ErrIO,
			cause:     errNotReady,
			wasClosed: true,
		},
		{
			name:      "truncated layout",
			device:    layoutDevice(layouttest.MBRLayout(1, 0, make([]layouttest.MBREntry, 4)...)[:200]),
			expected:  layout.ErrDecode,
			wasClosed: true,
		},
		{
			name:      "geometry request failure",
			device:    layoutDevice(layouttest.RawLayout()),
			opts:      []layout.Option{layout.WithGeometry(true)},
			expected:  layout.ErrIO,
			cause:     layouttest.ErrUnknownCode,
			wasClosed: true,
		},
		{
			name: "negative disk size",
			device: &layouttest.Device{
				Responses: map[uint32][]byte{
					ioctl.IOCTLDiskGetDriveLayoutEx:   layouttest.RawLayout(),
					ioctl.IOCTLDiskGetDriveGeometryEx: layouttest.Geometry(512, -1),
				},
			},
			opts:      []layout.Option{layout.WithGeometry(true)},
			expected:  layout.ErrDecode,
			wasClosed: true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			dev0 := &layouttest.Device{
				Responses: map[uint32][]byte{
					ioctl.IOCTLDiskGetDriveLayoutEx:   twoPartitionGPT(),
					ioctl.IOCTLDiskGetDriveGeometryEx: layouttest.Geometry(512, 1<<30),
				},
			}

			sys := &layouttest.System{
				Devices: map[string]*layouttest.Device{
					block.DevicePath(0): dev0,
				},
				OpenErrors: map[string]error{},
			}

			if test.device != nil {
				sys.Devices[block.DevicePath(1)] = test.device
			}

			if test.openErr != nil {
				sys.OpenErrors[block.DevicePath(1)] = test.openErr
			}

			disks, err := layout.Enumerate(append(test.opts,
				layout.WithLogger(zaptest.NewLogger(t)),
				layout.WithOpener(opener(sys)),
			)...)
			require.ErrorIs(t, err, test.expected)
			assert.Nil(t, disks)

			if test.cause != nil {
				require.ErrorIs(t, err, test.cause)
			}

			assert.Equal(t, 1, dev0.Closed)

			if test.wasClosed {
				assert.Equal(t, 1, test.device.Closed)
			}

			assert.Equal(t, []string{block.DevicePath(0), block.DevicePath(1)}, sys.Opened)
		})
	}
}

func TestEnumerateCloseFailure(t *testing.T) {
	dev := layoutDevice(twoPartitionGPT())
	dev.CloseErr = errors.New("invalid handle")

	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{
			block.DevicePath(0): dev,
		},
	}

	core, logs := observer.New(zap.WarnLevel)

	disks, err := layout.Enumerate(
		layout.WithLogger(zap.New(core)),
		layout.WithOpener(opener(sys)),
	)
	require.NoError(t, err)
	require.Len(t, disks, 1)

	entries := logs.FilterMessage("failed to close disk device").All()
	require.Len(t, entries, 1)
	assert.Equal(t, block.DevicePath(0), entries[0].ContextMap()["path"])
	assert.Equal(t, "invalid handle", entries[0].ContextMap()["error"])
}

func TestEnumerateCloseFailureKeepsError(t *testing.T) {
	dev := &layouttest.Device{
		Errors: map[uint32]error{
			ioctl.IOCTLDiskGetDriveLayoutEx: errors.New("the device is not ready"),
		},
		CloseErr: errors.New("invalid handle"),
	}

	sys := &layouttest.System{
		Devices: map[string]*layouttest.Device{
			block.DevicePath(0): dev,
		},
	}

	_, err := layout.Enumerate(layout.WithOpener(opener(sys)))
	require.ErrorIs(t, err, layout.ErrIO)
	assert.NotContains(t, err.Error(), "invalid handle")
	assert.Equal(t, 1, dev.Closed)
}
