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

package kioskdb

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kioskdb/kioskdb/compression"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

type Options struct {
	// DirectoryPath is the path to the data directory
	DirectoryPath string

	// DataFileSize is the size of the data file
	DataFileSize int64

	// SyncWrites indicates whether to sync for every write to disk
	SyncWrites bool

	// BytesPerSync indicates the cumulative number of bytes written before syncing to disk
	BytesPerSync uint

	// IndexType defines the type for index
	IndexType IndexerType

	// MMapAtStartUp indicates whether to use mmap to load the data file at startup
	MMapAtStartUp bool

	// DataFileMergeRatio indicates the threshold of the data file size to the merge size
	DataFileMergeRatio float32

	// ValueCompression selects the codec applied to value bytes before
	// they are written into a LogRecord. It must stay constant across the
	// life of a data directory; the engine does not persist or validate it.
	ValueCompression compression.Type

	// Logger receives structured logs for open/close/merge/recovery
	// events. A nil Logger defaults to a no-op logger so the engine
	// stays usable as an embedded library with zero log setup.
	Logger *zap.SugaredLogger
}

// IteratorOptions defines the index iterator configuration options
type IteratorOptions struct {
	// Prefix denotes the iteration for the key with given prefix, default null
	Prefix []byte

	// Reverse indicates whether to traverse in reverse direction
	// the default value is false, which means forward traversal
	Reverse bool
}

// WriteBatchOptions defines batch writing configuration options
type WriteBatchOptions struct {
	// MaxBatchNum denotes the max number of records within a batch
	MaxBatchNum uint

	// SyncWrites denotes whether to sync the disk when commiting
	SyncWrites bool
}

type IndexerType = int8

const (
	// BTree indicates btree index
	BTree IndexerType = iota + 1

	// ART indicates Adaptive Radix Tree index
	ART

	// BPlusTree indicates b+tree index
	BPlusTree

	// SkipList indicates a concurrent skip list index
	SkipList
)

var DefaultOptions = Options{
	DirectoryPath:      os.TempDir(),
	DataFileSize:       256 * 1024 * 1024, // 256MB
	SyncWrites:         false,
	BytesPerSync:       0,
	IndexType:          BTree,
	MMapAtStartUp:      true,
	DataFileMergeRatio: 0.5,
	ValueCompression:   compression.None,
}

var DefaultIteratorOptions = IteratorOptions{
	Prefix:  nil,
	Reverse: false,
}

var DefaultWriteBatchOptions = WriteBatchOptions{
	MaxBatchNum: 10000,
	SyncWrites:  true,
}

// fileOptions mirrors Options in a form that can be decoded from a HuJSON
// (JSON-with-comments) config file. IndexType and ValueCompression are
// spelled out as names since raw enum integers aren't self-documenting
// in a checked-in config file.
type fileOptions struct {
	DirectoryPath      string  `json:"directory_path"`
	DataFileSize       int64   `json:"data_file_size"`
	SyncWrites         bool    `json:"sync_writes"`
	BytesPerSync       uint    `json:"bytes_per_sync"`
	IndexType          string  `json:"index_type"`
	MMapAtStartUp      bool    `json:"mmap_at_startup"`
	DataFileMergeRatio float32 `json:"data_file_merge_ratio"`
	ValueCompression   string  `json:"value_compression"`
}

// LoadOptionsFile reads a HuJSON config file (JSON with comments and
// trailing commas allowed) and overlays it onto DefaultOptions. Fields
// omitted from the file keep their DefaultOptions value.
func LoadOptionsFile(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("load options file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return Options{}, fmt.Errorf("load options file %s: invalid HuJSON: %w", path, err)
	}

	fo := fileOptions{
		DirectoryPath:      DefaultOptions.DirectoryPath,
		DataFileSize:       DefaultOptions.DataFileSize,
		SyncWrites:         DefaultOptions.SyncWrites,
		BytesPerSync:       DefaultOptions.BytesPerSync,
		MMapAtStartUp:      DefaultOptions.MMapAtStartUp,
		DataFileMergeRatio: DefaultOptions.DataFileMergeRatio,
	}
	if err := json.Unmarshal(standardized, &fo); err != nil {
		return Options{}, fmt.Errorf("load options file %s: %w", path, err)
	}

	indexType, err := parseIndexerType(fo.IndexType)
	if err != nil {
		return Options{}, err
	}

	valueCompression, err := parseCompressionType(fo.ValueCompression)
	if err != nil {
		return Options{}, err
	}

	return Options{
		DirectoryPath:      fo.DirectoryPath,
		DataFileSize:       fo.DataFileSize,
		SyncWrites:         fo.SyncWrites,
		BytesPerSync:       fo.BytesPerSync,
		IndexType:          indexType,
		MMapAtStartUp:      fo.MMapAtStartUp,
		DataFileMergeRatio: fo.DataFileMergeRatio,
		ValueCompression:   valueCompression,
	}, nil
}

func parseIndexerType(name string) (IndexerType, error) {
	switch name {
	case "", "BTREE":
		return BTree, nil
	case "ART":
		return ART, nil
	case "BPLUSTREE":
		return BPlusTree, nil
	case "SKIPLIST":
		return SkipList, nil
	default:
		return 0, fmt.Errorf("load options file: unknown index_type %q", name)
	}
}

func parseCompressionType(name string) (compression.Type, error) {
	switch name {
	case "", "NONE":
		return compression.None, nil
	case "SNAPPY":
		return compression.Snappy, nil
	case "ZSTD":
		return compression.Zstd, nil
	default:
		return 0, fmt.Errorf("load options file: unknown value_compression %q: %w", name, ErrInvalidCompressionType)
	}
}
