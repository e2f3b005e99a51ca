/*
 * Copyright (c) 2024. Shuojiang Liu.
 * Licensed under the MIT License (the "License");
 * you may not use this file except in compliance with the License.
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package compression applies an optional codec to LogRecord value bytes
// before they reach the record codec. The on-disk record layout is
// unaware of compression: it only ever sees the (already compressed, if
// enabled) value byte slice and a varint length for it.
package compression

import (
	"fmt"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Type selects the codec applied to a record's value bytes.
type Type uint8

const (
	// None stores values exactly as given, bit-identical to no compression.
	None Type = iota

	// Snappy trades ratio for speed; a good default for hot paths.
	Snappy

	// Zstd trades some speed for a better ratio on larger values.
	Zstd
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Snappy:
		return "snappy"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Compress encodes value according to t. The returned slice may alias value
// when t is None.
func Compress(t Type, value []byte) ([]byte, error) {
	switch t {
	case None:
		return value, nil
	case Snappy:
		return snappy.Encode(nil, value), nil
	case Zstd:
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("compression: zstd encoder: %w", err)
		}
		defer func() { _ = encoder.Close() }()
		return encoder.EncodeAll(value, make([]byte, 0, len(value))), nil
	default:
		return nil, fmt.Errorf("compression: unsupported type %s", t)
	}
}

// Decompress reverses Compress. Empty input always decodes to empty output,
// regardless of t, so tombstone (DELETED) records never need special-casing.
func Decompress(t Type, value []byte) ([]byte, error) {
	if len(value) == 0 {
		return value, nil
	}

	switch t {
	case None:
		return value, nil
	case Snappy:
		return snappy.Decode(nil, value)
	case Zstd:
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("compression: zstd decoder: %w", err)
		}
		defer decoder.Close()
		return decoder.DecodeAll(value, make([]byte, 0, len(value)))
	default:
		return nil, fmt.Errorf("compression: unsupported type %s", t)
	}
}
