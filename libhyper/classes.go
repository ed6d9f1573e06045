package libhyper

import (
	"bytes"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Classes partitions ds into classes of Equal diagrams.
//
// Each class lists indexes into ds in ascending order, and classes are ordered
// by their first index. A nil entry in ds is a class of its own.
func Classes(ds []*Diagram) [][]int {
	byKey := redblacktree.Tree{
		Comparator: func(A, B interface{}) int {
			return bytes.Compare(A.([]byte), B.([]byte))
		},
	}

	var classes [][]int
	for i, d := range ds {
		if d == nil {
			classes = append(classes, []int{i})
			continue
		}
		key := d.CanonicKey()
		if found, exists := byKey.Get(key); exists {
			ci := found.(int)
			classes[ci] = append(classes[ci], i)
		} else {
			byKey.Put(key, len(classes))
			classes = append(classes, []int{i})
		}
	}
	return classes
}
