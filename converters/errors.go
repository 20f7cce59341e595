// SPDX-License-Identifier: MIT

package converters

import "errors"

var (
	// ErrMalformed indicates a node or link object without usable ids.
	ErrMalformed = errors.New("converters: malformed node-link document")

	// ErrUnknownCodec indicates a codec name other than json or msgpack.
	ErrUnknownCodec = errors.New("converters: unknown codec")

	// ErrUnknownCompression indicates a compression other than none, gzip or zstd.
	ErrUnknownCompression = errors.New("converters: unknown compression")

	// ErrUnknownFormat indicates an export format other than json, msgpack or xlsx.
	ErrUnknownFormat = errors.New("converters: unknown export format")
)
