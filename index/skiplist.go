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
	"bytes"
	"sort"
	"sync"

	"github.com/huandu/skiplist"
	"github.com/kioskdb/kioskdb/data"
)

// byteKeyComparable orders []byte keys lexicographically for huandu/skiplist,
// which needs both an authoritative Compare and a fast CalcScore hint.
//
// refer to [https://github.com/huandu/skiplist]
type byteKeyComparable struct{}

func (byteKeyComparable) Compare(lhs, rhs interface{}) int {
	return bytes.Compare(lhs.([]byte), rhs.([]byte))
}

// CalcScore must be monotonic with Compare: huandu/skiplist sorts primarily
// by score and only calls Compare to break ties between equal scores. The
// leading bytes are left-aligned into the high bits of a uint64 (the same
// scheme skiplist.Bytes uses) so that a key's score always reflects its
// lexicographic rank regardless of length, instead of a length-dependent
// accumulation that would place short keys with large leading bytes before
// long keys with small leading bytes.
func (byteKeyComparable) CalcScore(key interface{}) float64 {
	b := key.([]byte)

	limit := len(b)
	if limit > 8 {
		limit = 8
	}

	var score uint64
	for i := 0; i < limit; i++ {
		score |= uint64(b[i]) << uint(56-i*8)
	}

	return float64(score)
}

// SkipList defines the concurrent skip list index
//
// huandu/skiplist is not itself safe for concurrent use, so it is wrapped
// in a reader/writer lock, the same texture as the BTree and ART indexes
// in this package.
type SkipList struct {
	list *skiplist.SkipList
	lock *sync.RWMutex
}

// NewSkipList creates a new SkipList index structure
func NewSkipList() *SkipList {
	return &SkipList{
		list: skiplist.New(byteKeyComparable{}),
		lock: new(sync.RWMutex),
	}
}

func (sl *SkipList) Put(key []byte, pos *data.LogRecordPos) *data.LogRecordPos {
	sl.lock.Lock()
	defer sl.lock.Unlock()

	var oldPos *data.LogRecordPos
	if elem := sl.list.Get(key); elem != nil {
		oldPos = elem.Value.(*data.LogRecordPos)
	}

	sl.list.Set(key, pos)

	return oldPos
}

func (sl *SkipList) Get(key []byte) *data.LogRecordPos {
	sl.lock.RLock()
	defer sl.lock.RUnlock()

	elem := sl.list.Get(key)
	if elem == nil {
		return nil
	}

	return elem.Value.(*data.LogRecordPos)
}

func (sl *SkipList) Delete(key []byte) (*data.LogRecordPos, bool) {
	sl.lock.Lock()
	defer sl.lock.Unlock()

	elem := sl.list.Remove(key)
	if elem == nil {
		return nil, false
	}

	return elem.Value.(*data.LogRecordPos), true
}

func (sl *SkipList) Size() int {
	sl.lock.RLock()
	defer sl.lock.RUnlock()

	return sl.list.Len()
}

func (sl *SkipList) Close() error {
	return nil
}

func (sl *SkipList) Iterator(reverse bool) Iterator {
	sl.lock.RLock()
	defer sl.lock.RUnlock()

	return newSkipListIterator(sl.list, reverse)
}

// skipListIterator defines a skip list index iterator. Like bTreeIterator
// and artIterator, it snapshots key/position pairs into a slice at
// construction time so the cursor stays stable under concurrent mutation.
type skipListIterator struct {
	currentIndex int
	reverse      bool
	values       []*Item
}

func newSkipListIterator(list *skiplist.SkipList, reverse bool) *skipListIterator {
	values := make([]*Item, 0, list.Len())

	for elem := list.Front(); elem != nil; elem = elem.Next() {
		values = append(values, &Item{
			key: elem.Key().([]byte),
			pos: elem.Value.(*data.LogRecordPos),
		})
	}

	if reverse {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}

	return &skipListIterator{
		currentIndex: 0,
		reverse:      reverse,
		values:       values,
	}
}

func (sli *skipListIterator) Rewind() {
	sli.currentIndex = 0
}

func (sli *skipListIterator) Seek(key []byte) {
	if sli.reverse {
		sli.currentIndex = sort.Search(len(sli.values), func(i int) bool {
			return bytes.Compare(sli.values[i].key, key) <= 0
		})
	} else {
		sli.currentIndex = sort.Search(len(sli.values), func(i int) bool {
			return bytes.Compare(sli.values[i].key, key) >= 0
		})
	}
}

func (sli *skipListIterator) Next() {
	sli.currentIndex += 1
}

func (sli *skipListIterator) Valid() bool {
	return sli.currentIndex < len(sli.values)
}

func (sli *skipListIterator) Key() []byte {
	return sli.values[sli.currentIndex].key
}

func (sli *skipListIterator) Value() *data.LogRecordPos {
	return sli.values[sli.currentIndex].pos
}

func (sli *skipListIterator) Close() {
	sli.values = nil
}
