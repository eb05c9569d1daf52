// Package matcher implements the cross-side matching algorithm: the
// priority walk with self-trade skip, and the three execution policies.
package matcher

import (
	"github.com/emberbook/matcher/internal/book"
	"github.com/emberbook/matcher/internal/common"
)

// Match executes active against opposing per active.Policy, emitting
// events to sink, mutating opposing in place, and reporting the terminal
// outcome. It never returns an error: every well-formed submission reaches
// a terminal state.
func Match(opposing *book.Book, active common.Order, sink common.Sink) common.MatchResult {
	if active.Size == 0 {
		// A zero-size incoming order is a no-op: no events, no remainder,
		// no rest.
		return common.MatchResult{Outcome: common.Filled}
	}

	switch active.Policy {
	case common.FillOrKill:
		return matchFillOrKill(opposing, active, sink)
	case common.ImmediateOrCancel:
		return matchImmediateOrCancel(opposing, active, sink)
	default:
		return matchLimit(opposing, active, sink)
	}
}

func matchLimit(opposing *book.Book, active common.Order, sink common.Sink) common.MatchResult {
	traded, remaining := priorityFill(opposing, active, active.Size, sink)
	if remaining == 0 {
		return common.MatchResult{Outcome: common.Filled, Traded: traded}
	}
	return common.MatchResult{
		Outcome: common.PartiallyFilled,
		Traded:  traded,
		Remainder: &common.RestingOrder{
			Price:  active.Price,
			Size:   remaining,
			UserID: active.UserID,
			Side:   active.Side,
		},
	}
}

func matchFillOrKill(opposing *book.Book, active common.Order, sink common.Sink) common.MatchResult {
	if availableLiquidity(opposing, active) < active.Size {
		sink.OnDrop(common.DropEvent{
			User:   active.UserID,
			Price:  active.Price,
			Size:   active.Size,
			Side:   active.Side,
			Reason: common.FoKInsufficient,
		})
		return common.MatchResult{Outcome: common.Killed}
	}

	// Sufficient liquidity was confirmed by the dry run above, so this
	// fresh execution is guaranteed to fully fill and never leaves a
	// remainder.
	traded, _ := priorityFill(opposing, active, active.Size, sink)
	return common.MatchResult{Outcome: common.Filled, Traded: traded}
}

func matchImmediateOrCancel(opposing *book.Book, active common.Order, sink common.Sink) common.MatchResult {
	traded, _ := priorityFill(opposing, active, active.Size, sink)
	if traded == 0 {
		sink.OnDrop(common.DropEvent{
			User:   active.UserID,
			Price:  active.Price,
			Size:   active.Size,
			Side:   active.Side,
			Reason: common.IoCNoFill,
		})
		return common.MatchResult{Outcome: common.Dropped}
	}
	if traded < active.Size {
		// The unfilled remainder is never rested for IoC, regardless of
		// how much was filled.
		return common.MatchResult{Outcome: common.PartiallyFilled, Traded: traded}
	}
	return common.MatchResult{Outcome: common.Filled, Traded: traded}
}

// priorityFill walks opposing in match-priority order, skipping entries
// from active's own user, and fills up to need units, emitting a TradeEvent
// per match. Entries fully consumed are collected and removed after the
// walk, avoiding mutation-during-iteration on the btree. Returns the
// quantity traded and the quantity still unfilled.
func priorityFill(opposing *book.Book, active common.Order, need uint64, sink common.Sink) (traded, remaining uint64) {
	if need == 0 {
		return 0, 0
	}

	type consumedKey struct{ price, seq uint64 }
	var toRemove []consumedKey

	remaining = need
	opposing.Walk(active.Price, func(resting *common.RestingOrder) bool {
		if remaining == 0 {
			return false
		}
		if resting.UserID == active.UserID {
			// Self-trade prevention: skip entirely, neither matched nor
			// removed, and the walk continues past it without penalty.
			return true
		}

		if resting.Size <= remaining {
			remaining -= resting.Size
			sink.OnTrade(common.TradeEvent{
				TakerUser:  active.UserID,
				MakerUser:  resting.UserID,
				Qty:        resting.Size,
				MakerPrice: resting.Price,
				TakerSide:  active.Side,
			})
			toRemove = append(toRemove, consumedKey{resting.Price, resting.Seq})
		} else {
			sink.OnTrade(common.TradeEvent{
				TakerUser:  active.UserID,
				MakerUser:  resting.UserID,
				Qty:        remaining,
				MakerPrice: resting.Price,
				TakerSide:  active.Side,
			})
			resting.Size -= remaining
			remaining = 0
		}
		return remaining > 0
	})

	for _, k := range toRemove {
		opposing.Remove(k.price, k.seq)
	}
	return need - remaining, remaining
}

// availableLiquidity sums resting size over the same filtered priority
// walk as priorityFill (same self-skip predicate, same price bound), for
// FoK's dry run. It stops accumulating as soon as the running total
// reaches active.Size, which is behaviorally identical to summing the
// full filtered walk unconditionally.
func availableLiquidity(opposing *book.Book, active common.Order) uint64 {
	var sum uint64
	opposing.Walk(active.Price, func(resting *common.RestingOrder) bool {
		if sum >= active.Size {
			return false
		}
		if resting.UserID == active.UserID {
			return true
		}
		sum += resting.Size
		return sum < active.Size
	})
	return sum
}
