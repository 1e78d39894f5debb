// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !windows

package block

import (
	"errors"
	"io/fs"
)

// Device wraps an open handle of a physical disk.
type Device struct{}

// NewFromPath opens the device at the specified path for querying.
func NewFromPath(path string) (*Device, error) {
	return nil, &fs.PathError{Op: "open", Path: path, Err: errors.ErrUnsupported}
}

// Close releases the device handle.
func (*Device) Close() error {
	return nil
}

// IOControl issues the device control request without input data.
func (*Device) IOControl(uint32, []byte) (uint32, error) {
	return 0, errors.ErrUnsupported
}
