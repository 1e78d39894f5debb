// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layouttest

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/siderolabs/go-disklayout/internal/ioctl"
)

// ErrUnknownCode is returned by Device for control codes without a response.
var ErrUnknownCode = errors.New("unknown control code")

// Call records a single control request.
type Call struct {
	Code       uint32
	BufferSize int
}

// Device is a fake disk device serving canned control responses.
//
// A response which doesn't fit the output buffer is reported as ioctl.ErrBufferTooSmall.
type Device struct {
	Responses map[uint32][]byte
	Errors    map[uint32]error
	CloseErr  error

	Calls  []Call
	Closed int
}

// IOControl implements ioctl.Controller.
func (d *Device) IOControl(code uint32, out []byte) (uint32, error) {
	d.Calls = append(d.Calls, Call{Code: code, BufferSize: len(out)})

	if err, ok := d.Errors[code]; ok {
		return 0, err
	}

	resp, ok := d.Responses[code]
	if !ok {
		return 0, fmt.Errorf("%w: %#08x", ErrUnknownCode, code)
	}

	if len(out) < len(resp) {
		return 0, fmt.Errorf("%w: %d bytes required", ioctl.ErrBufferTooSmall, len(resp))
	}

	return uint32(copy(out, resp)), nil
}

// Close records the handle release.
func (d *Device) Close() error {
	d.Closed++

	return d.CloseErr
}

// System is a fake set of devices keyed by path.
type System struct {
	Devices    map[string]*Device
	OpenErrors map[string]error

	Opened []string
}

// Open returns the device registered for the path.
//
// Unknown paths are reported as fs.ErrNotExist.
func (s *System) Open(path string) (*Device, error) {
	s.Opened = append(s.Opened, path)

	if err, ok := s.OpenErrors[path]; ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	dev, ok := s.Devices[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return dev, nil
}
