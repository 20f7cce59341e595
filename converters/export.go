// SPDX-License-Identifier: MIT

package converters

import (
	"fmt"
	"io"

	"github.com/yosukefk/chemnetrowk-vis/core"
)

// Export formats.
const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
	FormatXLSX    = "xlsx"
)

// Export writes g to w in format. json and msgpack carry the node-link
// document and honor comp; pretty only affects uncompressed json. xlsx is
// already a zip container and rejects any compression but none.
func Export(w io.Writer, g *core.Graph, format string, comp Compression, pretty bool) error {
	if comp == "" {
		comp = CompressionNone
	}
	if err := CheckFormat(format, comp); err != nil {
		return err
	}
	switch {
	case format == FormatXLSX:
		return WriteWorkbook(w, g)
	case format == FormatJSON && comp == CompressionNone:
		return WriteJSON(w, g, pretty)
	}

	codec, err := CodecByName(format)
	if err != nil {
		return err
	}
	s, err := NewSerializer(SnapshotConfig{Codec: codec, Compression: comp})
	if err != nil {
		return err
	}
	data, err := s.EncodeGraph(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

// CheckFormat reports whether Export accepts the format and compression
// pair. An empty compression means none.
func CheckFormat(format string, comp Compression) error {
	switch comp {
	case "", CompressionNone, CompressionGzip, CompressionZstd:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCompression, comp)
	}
	switch format {
	case FormatJSON, FormatMsgPack:
	case FormatXLSX:
		if comp != "" && comp != CompressionNone {
			return fmt.Errorf("%w: %q for xlsx", ErrUnknownCompression, comp)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}

// ContentType returns the MIME type of an Export payload.
func ContentType(format string, comp Compression) string {
	switch comp {
	case CompressionGzip:
		return "application/gzip"
	case CompressionZstd:
		return "application/zstd"
	}
	switch format {
	case FormatMsgPack:
		return "application/msgpack"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "application/json"
}
