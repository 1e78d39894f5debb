// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build windows

package block

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/sys/windows"

	"github.com/siderolabs/go-disklayout/internal/ioctl"
)

// Device wraps an open handle of a physical disk.
type Device struct {
	path   string
	handle windows.Handle

	closeOnce sync.Once
	closeErr  error
}

// NewFromPath opens the device at the specified path for querying.
//
// A missing device is reported as an error matching fs.ErrNotExist.
func NewFromPath(path string) (*Device, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	handle, err := windows.CreateFile(
		p,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	return &Device{
		path:   path,
		handle: handle,
	}, nil
}

// Close releases the device handle.
//
// Only the first call closes the handle, subsequent calls return the same result.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		if err := windows.CloseHandle(d.handle); err != nil {
			d.closeErr = &fs.PathError{Op: "close", Path: d.path, Err: err}
		}
	})

	return d.closeErr
}

// IOControl issues the device control request without input data.
//
// A buffer which can't hold the response is reported as ioctl.ErrBufferTooSmall.
func (d *Device) IOControl(code uint32, out []byte) (uint32, error) {
	var (
		outPtr   *byte
		returned uint32
	)

	if len(out) > 0 {
		outPtr = &out[0]
	}

	err := windows.DeviceIoControl(d.handle, code, nil, 0, outPtr, uint32(len(out)), &returned, nil)
	if err == nil {
		return returned, nil
	}

	if errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) || errors.Is(err, windows.ERROR_MORE_DATA) {
		return returned, fmt.Errorf("%w: %w", ioctl.ErrBufferTooSmall, err)
	}

	return returned, fmt.Errorf("control code %#08x on %q: %w", code, d.path, err)
}
