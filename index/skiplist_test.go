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

package index

import (
	"testing"

	"github.com/kioskdb/kioskdb/data"
	"github.com/stretchr/testify/assert"
)

func TestSkipList_Put(t *testing.T) {
	sl := NewSkipList()

	result1 := sl.Put(nil, &data.LogRecordPos{Fid: 1, Offset: 100})
	assert.Nil(t, result1)

	result2 := sl.Put([]byte("a"), &data.LogRecordPos{Fid: 1, Offset: 2})
	assert.Nil(t, result2)

	result3 := sl.Put([]byte("a"), &data.LogRecordPos{Fid: 11, Offset: 12})
	assert.Equal(t, uint32(1), result3.Fid)
	assert.Equal(t, int64(2), result3.Offset)
}

func TestSkipList_Get(t *testing.T) {
	sl := NewSkipList()

	result1 := sl.Put(nil, &data.LogRecordPos{Fid: 1, Offset: 100})
	assert.Nil(t, result1)

	pos1 := sl.Get(nil)
	assert.Equal(t, uint32(1), pos1.Fid)
	assert.Equal(t, int64(100), pos1.Offset)

	result2 := sl.Put([]byte("a"), &data.LogRecordPos{Fid: 1, Offset: 3})
	assert.Nil(t, result2)

	pos2 := sl.Get([]byte("a"))
	assert.Equal(t, uint32(1), pos2.Fid)
	assert.Equal(t, int64(3), pos2.Offset)
}

func TestSkipList_Delete(t *testing.T) {
	sl := NewSkipList()

	result1 := sl.Put(nil, &data.LogRecordPos{Fid: 1, Offset: 100})
	assert.Nil(t, result1)

	result2, ok := sl.Delete(nil)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), result2.Fid)

	_, ok = sl.Delete([]byte("does-not-exist"))
	assert.False(t, ok)
}

func TestSkipList_Iterator(t *testing.T) {
	sl1 := NewSkipList()

	iter1 := sl1.Iterator(false)
	assert.False(t, iter1.Valid())

	sl1.Put([]byte("golang"), &data.LogRecordPos{Fid: 1, Offset: 10})
	sl1.Put([]byte("awsl"), &data.LogRecordPos{Fid: 1, Offset: 10})
	sl1.Put([]byte("java"), &data.LogRecordPos{Fid: 1, Offset: 10})
	sl1.Put([]byte("dart"), &data.LogRecordPos{Fid: 1, Offset: 10})

	var forward [][]byte
	for iter2 := sl1.Iterator(false); iter2.Valid(); iter2.Next() {
		forward = append(forward, iter2.Key())
	}
	assert.Equal(t, [][]byte{[]byte("awsl"), []byte("dart"), []byte("golang"), []byte("java")}, forward)

	var backward [][]byte
	for iter3 := sl1.Iterator(true); iter3.Valid(); iter3.Next() {
		backward = append(backward, iter3.Key())
	}
	assert.Equal(t, [][]byte{[]byte("java"), []byte("golang"), []byte("dart"), []byte("awsl")}, backward)

	iter4 := sl1.Iterator(false)
	for iter4.Seek([]byte("bxt")); iter4.Valid(); iter4.Next() {
		assert.NotNil(t, iter4.Key())
	}
}

func TestSkipList_Size(t *testing.T) {
	sl := NewSkipList()
	assert.Equal(t, 0, sl.Size())

	sl.Put([]byte("a"), &data.LogRecordPos{Fid: 1, Offset: 1})
	sl.Put([]byte("b"), &data.LogRecordPos{Fid: 1, Offset: 2})
	assert.Equal(t, 2, sl.Size())

	assert.Nil(t, sl.Close())
}
