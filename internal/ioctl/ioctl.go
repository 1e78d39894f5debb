// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package ioctl issues device control requests with output of unknown size.
package ioctl

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// ErrBufferTooSmall is reported by a Controller when the output buffer can't hold the response.
var ErrBufferTooSmall = errors.New("output buffer too small")

// DefaultInitialBufferSize is the size of the first buffer passed to the device.
const DefaultInitialBufferSize = 256

// Controller issues a single control request without input data.
//
// IOControl fills out and returns the number of valid bytes.
// If out is too small, the returned error should match ErrBufferTooSmall.
type Controller interface {
	IOControl(code uint32, out []byte) (uint32, error)
}

// QueryOptions configure Query.
type QueryOptions struct {
	Logger *zap.Logger

	InitialBufferSize int
}

// QueryOption is an option for Query.
type QueryOption func(*QueryOptions)

// WithLogger sets the logger for the query.
func WithLogger(logger *zap.Logger) QueryOption {
	return func(o *QueryOptions) {
		o.Logger = logger
	}
}

// WithInitialBufferSize overrides the size of the first buffer.
//
// Non-positive values select DefaultInitialBufferSize.
func WithInitialBufferSize(size int) QueryOption {
	return func(o *QueryOptions) {
		o.InitialBufferSize = size
	}
}

func applyQueryOptions(opts ...QueryOption) QueryOptions {
	o := QueryOptions{
		Logger:            zap.NewNop(),
		InitialBufferSize: DefaultInitialBufferSize,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.InitialBufferSize <= 0 {
		o.InitialBufferSize = DefaultInitialBufferSize
	}

	return o
}

// Query issues the control request, doubling the output buffer until the response fits.
//
// The device doesn't reliably report the required size, so the buffer grows only
// by doubling, and the loop has no upper bound.
// The returned slice is truncated to the number of bytes reported by the device.
func Query(dev Controller, code uint32, opts ...QueryOption) ([]byte, error) {
	options := applyQueryOptions(opts...)

	buf := make([]byte, options.InitialBufferSize)

	for {
		n, err := dev.IOControl(code, buf)
		if err == nil {
			if uint64(n) > uint64(len(buf)) {
				return nil, fmt.Errorf("control code %#08x returned %d bytes for a buffer of %d bytes", code, n, len(buf))
			}

			return slices.Clip(buf[:n]), nil
		}

		if !errors.Is(err, ErrBufferTooSmall) {
			return nil, err
		}

		options.Logger.Debug("buffer too small, reallocating",
			zap.Uint32("code", code),
			zap.Int("size", len(buf)),
			zap.Int("new_size", len(buf)*2),
		)

		buf = make([]byte, len(buf)*2)
	}
}
