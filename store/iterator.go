package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendAll returns all items in [start, end), including deletion markers.
// A nil end means no upper bound.
func ascendAll(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// ascend returns all set items in [start, end).
func ascend(bt *btree.BTree, start, end []byte) []setItem {
	var res []setItem
	for _, i := range ascendAll(bt, start, end) {
		if s, ok := i.(setItem); ok {
			res = append(res, s)
		}
	}
	return res
}

// merge combines the ordered content of a parent store with the ordered
// pending operations of a cache. Pending operations shadow the parent.
func merge(below []setItem, above []btree.Item) []setItem {
	res := make([]setItem, 0, len(below)+len(above))
	i, j := 0, 0
	for i < len(below) || j < len(above) {
		if j == len(above) {
			res = append(res, below[i])
			i++
			continue
		}
		top := above[j].(keyer).Key()
		if i < len(below) {
			switch cmp := bytes.Compare(below[i].key, top); {
			case cmp < 0:
				res = append(res, below[i])
				i++
				continue
			case cmp == 0:
				// Shadowed by the cache.
				i++
			}
		}
		if s, ok := above[j].(setItem); ok {
			res = append(res, s)
		}
		j++
	}
	return res
}

type sliceIterator struct {
	items []setItem
	pos   int
}

var _ Iterator = (*sliceIterator)(nil)

func newSliceIterator(items []setItem) *sliceIterator {
	return &sliceIterator{items: items}
}

func (s *sliceIterator) Valid() bool {
	return s.pos < len(s.items)
}

func (s *sliceIterator) Next() {
	if !s.Valid() {
		panic("iterator is not valid")
	}
	s.pos++
}

func (s *sliceIterator) Key() []byte {
	return s.items[s.pos].key
}

func (s *sliceIterator) Value() []byte {
	return s.items[s.pos].value
}

func (s *sliceIterator) Close() {
	s.items = nil
}
