// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import (
	"go.uber.org/zap"

	"github.com/siderolabs/go-disklayout/block"
)

// DefaultMaxIndex is the number of disk indices probed by default.
const DefaultMaxIndex = 16

// Device is an open disk device.
type Device interface {
	// IOControl issues the device control request without input data.
	//
	// If out is too small for the response, the returned error should match ErrBufferTooSmall.
	IOControl(code uint32, out []byte) (uint32, error)
	Close() error
}

// Opener opens the disk device at the path.
//
// A missing device should be reported as an error matching fs.ErrNotExist.
type Opener func(path string) (Device, error)

// Options is the options for enumerating disks.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger
	// Opener for disk devices, block.NewFromPath by default.
	Opener Opener

	// MaxIndex limits the disk indices probed to [0, MaxIndex).
	MaxIndex uint32
	// InitialBufferSize is the size of the first buffer for device control requests.
	InitialBufferSize int

	// Geometry requests disk size and sector size.
	Geometry bool
}

// Option is an option for enumerating disks.
type Option func(*Options)

// WithLogger sets the logger for the enumeration.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithOpener replaces the disk device opener.
func WithOpener(opener Opener) Option {
	return func(o *Options) {
		o.Opener = opener
	}
}

// WithMaxIndex sets the number of disk indices to probe.
func WithMaxIndex(maxIndex uint32) Option {
	return func(o *Options) {
		o.MaxIndex = maxIndex
	}
}

// WithInitialBufferSize sets the size of the first buffer for device control requests.
func WithInitialBufferSize(size int) Option {
	return func(o *Options) {
		o.InitialBufferSize = size
	}
}

// WithGeometry requests disk size and sector size for every disk.
func WithGeometry(geometry bool) Option {
	return func(o *Options) {
		o.Geometry = geometry
	}
}

func openBlockDevice(path string) (Device, error) {
	dev, err := block.NewFromPath(path)
	if err != nil {
		return nil, err
	}

	return dev, nil
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger:   zap.NewNop(),
		Opener:   openBlockDevice,
		MaxIndex: DefaultMaxIndex,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
