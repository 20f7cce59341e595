// SPDX-License-Identifier: MIT
// File: snapshot.go
// Role: codec + compression pipeline for graph snapshots.

package converters

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yosukefk/chemnetrowk-vis/core"
)

// Codec encodes and decodes snapshot payloads.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
	Name() string
}

// Compression names a compression algorithm.
type Compression string

// Supported compressions.
const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// JSONCodec implements Codec with encoding/json.
type JSONCodec struct{}

func (JSONCodec) Encode(v interface{}) ([]byte, error)    { return json.Marshal(v) }
func (JSONCodec) Decode(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                            { return "json" }

// MsgPackCodec implements Codec with msgpack.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(v interface{}) ([]byte, error)    { return msgpack.Marshal(v) }
func (MsgPackCodec) Decode(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }
func (MsgPackCodec) Name() string                            { return "msgpack" }

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgPackCodec{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// SnapshotConfig selects codec and compression.
type SnapshotConfig struct {
	Codec       Codec
	Compression Compression
}

// Serializer encodes then compresses (and the reverse).
type Serializer struct {
	config SnapshotConfig
}

// NewSerializer validates cfg. A nil codec defaults to msgpack and an empty
// compression to none.
func NewSerializer(cfg SnapshotConfig) (*Serializer, error) {
	if cfg.Codec == nil {
		cfg.Codec = MsgPackCodec{}
	}
	switch cfg.Compression {
	case "":
		cfg.Compression = CompressionNone
	case CompressionNone, CompressionGzip, CompressionZstd:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, cfg.Compression)
	}

	return &Serializer{config: cfg}, nil
}

// DefaultSerializer is msgpack + zstd.
func DefaultSerializer() *Serializer {
	return &Serializer{config: SnapshotConfig{Codec: MsgPackCodec{}, Compression: CompressionZstd}}
}

// Serialize encodes v and compresses the payload.
func (s *Serializer) Serialize(v interface{}) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("converters: %s encode: %w", s.config.Codec.Name(), err)
	}
	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("converters: %s compress: %w", s.config.Compression, err)
	}

	return data, nil
}

// Deserialize decompresses data and decodes it into v.
func (s *Serializer) Deserialize(data []byte, v interface{}) error {
	data, err := s.decompress(data)
	if err != nil {
		return fmt.Errorf("converters: %s decompress: %w", s.config.Compression, err)
	}
	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("converters: %s decode: %w", s.config.Codec.Name(), err)
	}

	return nil
}

// EncodeGraph serializes the node-link form of g.
func (s *Serializer) EncodeGraph(g *core.Graph) ([]byte, error) {
	return s.Serialize(ToNodeLink(g))
}

// DecodeGraph rebuilds a graph written by EncodeGraph.
func (s *Serializer) DecodeGraph(data []byte) (*core.Graph, error) {
	var nl NodeLink
	if err := s.Deserialize(data, &nl); err != nil {
		return nil, err
	}

	return FromNodeLink(&nl)
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}
