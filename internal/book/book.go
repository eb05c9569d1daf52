// Package book implements the per-side, price-time-ordered resting order
// container: an ordered associative container keyed by (price, seq), with
// O(log n) insert/remove and an O(k) priority walk restricted to matchable
// entries.
package book

import (
	"github.com/tidwall/btree"

	"github.com/emberbook/matcher/internal/common"
)

// Book is one side's ordered collection of resting orders. The zero value
// is not usable; construct with New.
type Book struct {
	side common.Side
	tree *btree.BTreeG[*common.RestingOrder]
	seq  uint64
}

// New constructs an empty book for the given side. Buy books order by
// (price desc, seq asc); sell books order by (price asc, seq asc). That is
// the only asymmetry between the two sides.
func New(side common.Side) *Book {
	var less func(a, b *common.RestingOrder) bool
	if side == common.Buy {
		less = func(a, b *common.RestingOrder) bool {
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.Seq < b.Seq
		}
	} else {
		less = func(a, b *common.RestingOrder) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.Seq < b.Seq
		}
	}
	return &Book{
		side: side,
		tree: btree.NewBTreeG(less),
	}
}

// Push stamps o with a freshly assigned, monotonically increasing Seq and
// inserts it. o.Size must be >= 1; the caller owns that guarantee. Returns
// a pointer to the stored record so further mutation (decrementing Size
// during a later match) is visible in the book.
func (b *Book) Push(o common.RestingOrder) *common.RestingOrder {
	b.seq++
	o.Seq = b.seq
	o.Side = b.side
	stored := &o
	b.tree.Set(stored)
	return stored
}

// Remove deletes the resting order at (price, seq). Only Price and Seq
// participate in the book's ordering, so a bare key with those two fields
// set is enough to locate and remove the stored record.
func (b *Book) Remove(price, seq uint64) {
	b.tree.Delete(&common.RestingOrder{Price: price, Seq: seq})
}

// Len returns the number of resting orders on this side.
func (b *Book) Len() int {
	return b.tree.Len()
}

// matchable reports whether a resting order at restingPrice can match an
// incoming order on the opposite side quoting activePrice: buy-book
// entries qualify when restingPrice >= activePrice (an incoming sell),
// sell-book entries qualify when restingPrice <= activePrice (an incoming
// buy).
func (b *Book) matchable(restingPrice, activePrice uint64) bool {
	if b.side == common.Buy {
		return restingPrice >= activePrice
	}
	return restingPrice <= activePrice
}

// Walk visits resting orders in match-priority order, restricted to those
// matchable against an incoming order quoting activePrice, stopping at the
// first entry past that boundary. Because the book's own btree order is
// already match-priority order, the matchable entries are exactly the
// prefix of the scan up to that boundary. visit may mutate the order in
// place (e.g. decrementing Size); it returns false to stop the walk early.
func (b *Book) Walk(activePrice uint64, visit func(*common.RestingOrder) bool) {
	b.tree.Scan(func(o *common.RestingOrder) bool {
		if !b.matchable(o.Price, activePrice) {
			return false
		}
		return visit(o)
	})
}

// View performs an unrestricted ordered walk over every resting order, for
// read-only observation by tests and monitoring collaborators.
func (b *Book) View(visit func(*common.RestingOrder) bool) {
	b.tree.Scan(visit)
}
