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
	"os"
	"path/filepath"
	"testing"

	"github.com/kioskdb/kioskdb/compression"
	"github.com/stretchr/testify/assert"
)

func TestLoadOptionsFile(t *testing.T) {
	directory, _ := os.MkdirTemp("", "kioskdb-options")
	configPath := filepath.Join(directory, "kioskdb.jsonc")

	contents := `{
		// data directory used by this instance
		"directory_path": "/tmp/kioskdb-data",
		"data_file_size": 67108864,
		"sync_writes": true,
		"index_type": "SKIPLIST",
		"value_compression": "ZSTD", // favor ratio over speed
	}`
	assert.Nil(t, os.WriteFile(configPath, []byte(contents), 0644))

	options, err := LoadOptionsFile(configPath)
	assert.Nil(t, err)
	assert.Equal(t, "/tmp/kioskdb-data", options.DirectoryPath)
	assert.Equal(t, int64(67108864), options.DataFileSize)
	assert.True(t, options.SyncWrites)
	assert.Equal(t, SkipList, options.IndexType)
	assert.Equal(t, compression.Zstd, options.ValueCompression)

	// fields omitted from the file fall back to DefaultOptions
	assert.Equal(t, DefaultOptions.MMapAtStartUp, options.MMapAtStartUp)
	assert.Equal(t, DefaultOptions.DataFileMergeRatio, options.DataFileMergeRatio)
}

func TestLoadOptionsFile_UnknownIndexType(t *testing.T) {
	directory, _ := os.MkdirTemp("", "kioskdb-options")
	configPath := filepath.Join(directory, "kioskdb.jsonc")
	assert.Nil(t, os.WriteFile(configPath, []byte(`{"index_type": "HASHMAP"}`), 0644))

	_, err := LoadOptionsFile(configPath)
	assert.NotNil(t, err)
}

func TestLoadOptionsFile_UnknownCompressionType(t *testing.T) {
	directory, _ := os.MkdirTemp("", "kioskdb-options")
	configPath := filepath.Join(directory, "kioskdb.jsonc")
	assert.Nil(t, os.WriteFile(configPath, []byte(`{"value_compression": "GZIP"}`), 0644))

	_, err := LoadOptionsFile(configPath)
	assert.NotNil(t, err)
}

func TestLoadOptionsFile_MissingFile(t *testing.T) {
	_, err := LoadOptionsFile("/does/not/exist/kioskdb.jsonc")
	assert.NotNil(t, err)
}
