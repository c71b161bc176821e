package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/wager/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize

	degree = 2
)

// MemStore returns a btree backed store without persistence, used by the
// ledger and in tests.
func MemStore() CacheableKVStore {
	return &memStore{
		bt:   btree.New(degree),
		free: btree.NewFreeList(DefaultFreeListSize),
	}
}

type memStore struct {
	bt   *btree.BTree
	free *btree.FreeList
}

var _ CacheableKVStore = (*memStore)(nil)

func (m *memStore) Get(key []byte) ([]byte, error) {
	if res := m.bt.Get(bkey{key}); res != nil {
		return res.(setItem).value, nil
	}
	return nil, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	return m.bt.Has(bkey{key}), nil
}

func (m *memStore) Set(key, value []byte) error {
	m.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.bt.Delete(bkey{key})
	return nil
}

func (m *memStore) Iterator(start, end []byte) (Iterator, error) {
	return newSliceIterator(ascend(m.bt, start, end)), nil
}

func (m *memStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(m, m.free)
}

// BTreeCacheWrap places a btree cache over a KVStore. All writes are kept in
// the btree until Write is called.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	free *btree.FreeList
	back KVStore
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv KVStore, free *btree.FreeList) *BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return &BTreeCacheWrap{
		bt:   btree.NewWithFreeList(degree, free),
		free: free,
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write flushes all cached operations to the underlying store in key order
// and then cleans up.
func (b *BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		switch t := i.(type) {
		case setItem:
			err = b.back.Set(t.key, t.value)
		case deletedItem:
			err = b.back.Delete(t.key)
		default:
			err = errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", i)
		}
		return err == nil
	})
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all data.
func (b *BTreeCacheWrap) Discard() {
	// Clean up the btree so that nodes return to the free list.
	for b.bt.DeleteMin() != nil {
	}
}

// Set writes to the BTree.
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete marks the key as deleted in the BTree.
func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return nil
}

// Get reads from btree if there, else backing store.
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	if res == nil {
		return b.back.Get(key)
	}
	switch t := res.(type) {
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
	}
}

// Has reads from btree if there, else backing store.
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	if res == nil {
		return b.back.Has(key)
	}
	switch res.(type) {
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
	}
}

// Iterator over a domain of keys in ascending order. Combines results from
// btree and backing store.
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer parent.Close()

	var below []setItem
	for ; parent.Valid(); parent.Next() {
		below = append(below, newSetItem(parent.Key(), parent.Value()))
	}
	return newSliceIterator(merge(below, ascendAll(b.bt, start, end))), nil
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item and may be used for queries or
// embedded in data to store.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first.
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
