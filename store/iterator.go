package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectBtree returns all cached items within [start, end) in ascending
// order. Both bounds are optional.
func collectBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	if start == nil && end == nil {
		bt.Ascend(insert)
	} else if start == nil { // end != nil
		bt.AscendLessThan(bkey{end}, insert)
	} else if end == nil { // start != nil
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	} else { // both != nil
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// combine joins our results with those of the parent, taking into
// consideration overwrites and deletes. Both inputs must be sorted by key.
func combine(ours []btree.Item, parent Iterator) []Model {
	defer parent.Close()

	var res []Model
	for len(ours) > 0 || parent.Valid() {
		if len(ours) == 0 {
			res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
			parent.Next()
			continue
		}

		key := ours[0].(keyer).Key()
		if parent.Valid() {
			switch cmp := bytes.Compare(parent.Key(), key); {
			case cmp < 0:
				res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
				parent.Next()
				continue
			case cmp == 0:
				// Our version overwrites the parent.
				parent.Next()
			}
		}

		if item, ok := ours[0].(setItem); ok {
			res = append(res, Model{Key: item.key, Value: item.value})
		}
		ours = ours[1:]
	}
	return res
}
