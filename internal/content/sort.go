package content

import (
	"cmp"
	"slices"
)

// Order selects the direction of a sorted projection.
type Order int

const (
	Ascending Order = iota
	Descending
)

// SortedBy returns a copy of items sorted by the projected key. The sort is
// stable: ties keep their original relative order in both directions.
func SortedBy[K cmp.Ordered](items []Item, key func(Item) K, order Order) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		c := cmp.Compare(key(a), key(b))
		if order == Descending {
			c = -c
		}
		return c
	})
	return out
}

// Common projection keys for SortedBy.

// ByDate keys an item by its publish date.
func ByDate(it Item) int64 { return it.Body.Date.UnixNano() }

// ByLastModified keys an item by its last modification time.
func ByLastModified(it Item) int64 { return it.Body.LastModified.UnixNano() }

// ByTitle keys an item by its title.
func ByTitle(it Item) string { return it.Body.Title }

// ByPath keys an item by its output path.
func ByPath(it Item) string { return it.Path }
