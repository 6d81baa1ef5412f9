package path

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jakecoffman/cp"
)

// buckets groups the indexes of the nodes of a Path by their exact position,
// so that overlapping nodes can be drawn and picked as one. Bucket keys are
// positions relative to the center of the owning entity.
type buckets map[cp.Vector][]int

// insert adds index at pos, shifting up every stored index greater than or
// equal to it first.
// Panics if the bucket at pos already contains index.
func (b buckets) insert(index int, pos cp.Vector) {
	for _, bucket := range b {
		for k, idx := range bucket {
			if idx >= index {
				bucket[k]++
			}
		}
	}

	bucket := b[pos]
	if slices.Contains(bucket, index) {
		panic(fmt.Sprintf("bucket already contains index %d", index))
	}

	bucket = append(bucket, index)
	slices.Sort(bucket)
	b[pos] = bucket
}

// remove deletes index from the bucket at pos, then shifts down every stored
// index greater than it.
// Panics if the bucket does not contain index.
func (b buckets) remove(index int, pos cp.Vector) {
	bucket, ok := b[pos]
	if !ok {
		panic(fmt.Sprintf("no bucket at %v", pos))
	}

	k := slices.Index(bucket, index)
	if k < 0 {
		panic(fmt.Sprintf("bucket at %v does not contain index %d", pos, index))
	}

	if len(bucket) == 1 {
		delete(b, pos)
	} else {
		b[pos] = slices.Delete(bucket, k, k+1)
	}

	for _, bucket := range b {
		for j, idx := range bucket {
			if idx > index {
				bucket[j]--
			}
		}
	}
}

// moveIndex relocates index from the bucket at pos to the one at newPos.
// The remove/insert pair leaves every other index untouched.
func (b buckets) moveIndex(index int, pos, newPos cp.Vector) {
	b.remove(index, pos)
	b.insert(index, newPos)
}

// get returns the sorted indexes of the nodes at pos, nil if there are none.
func (b buckets) get(pos cp.Vector) []int { return b[pos] }

// contains reports whether the bucket at pos holds index.
func (b buckets) contains(index int, pos cp.Vector) bool {
	return slices.Contains(b[pos], index)
}

// all returns the buckets grouped by position.
func (b buckets) all() iter.Seq2[cp.Vector, []int] {
	return func(yield func(cp.Vector, []int) bool) {
		for pos, bucket := range b {
			if !yield(pos, bucket) {
				return
			}
		}
	}
}
