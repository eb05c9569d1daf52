// Package common holds the value types shared by the book, matcher and
// engine: sides, policies, orders and the events the core emits.
package common

import "fmt"

// Side is which book an order belongs to, incoming or resting.
type Side int

const (
	Buy Side = iota
	Sell
)

// Opposite returns the other side. The matching walk always runs an
// incoming order against the book of its Opposite.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Policy is the execution policy of an incoming order. Only Limit orders
// ever rest; resting orders do not carry a Policy.
type Policy int

const (
	Limit Policy = iota
	FillOrKill
	ImmediateOrCancel
)

func (p Policy) String() string {
	switch p {
	case Limit:
		return "limit"
	case FillOrKill:
		return "fill-or-kill"
	case ImmediateOrCancel:
		return "immediate-or-cancel"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Order is an incoming submission: a limit price, a remaining size, the
// opaque user identifier used for self-trade prevention, the side it is
// submitted on, and its execution policy.
type Order struct {
	Price  uint64
	Size   uint64
	UserID uint64
	Side   Side
	Policy Policy
}

// RestingOrder is the book's resting-order record. It has no Policy (only
// Limit orders rest) and carries Seq, the per-book insertion sequence that
// establishes time priority at a given price.
type RestingOrder struct {
	Price  uint64
	Size   uint64
	UserID uint64
	Side   Side
	Seq    uint64
}

type Outcome int

const (
	Filled Outcome = iota
	PartiallyFilled
	Killed
	Dropped
)

func (o Outcome) String() string {
	switch o {
	case Filled:
		return "filled"
	case PartiallyFilled:
		return "partially-filled"
	case Killed:
		return "killed"
	case Dropped:
		return "dropped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MatchResult is what one Match/Submit call reports: the terminal outcome,
// the quantity traded, and the remainder (if any) that was rested.
type MatchResult struct {
	Outcome   Outcome
	Traded    uint64
	Remainder *RestingOrder
}

type DropReason int

const (
	FoKInsufficient DropReason = iota
	IoCNoFill
)

func (r DropReason) String() string {
	if r == FoKInsufficient {
		return "fok-insufficient-liquidity"
	}
	return "ioc-no-fill"
}

// TradeEvent is emitted for every matched pair. TakerSide drives
// verb/direction phrasing in human-readable logs ("bought from" for a
// taker buy, "sold to" for a taker sell). MakerPrice is always the resting
// order's price: the maker sets the price, the taker gets price
// improvement.
type TradeEvent struct {
	TakerUser  uint64
	MakerUser  uint64
	Qty        uint64
	MakerPrice uint64
	TakerSide  Side
}

type AddEvent struct {
	User  uint64
	Price uint64
	Size  uint64
	Side  Side
}

type DropEvent struct {
	User   uint64
	Price  uint64
	Size   uint64
	Side   Side
	Reason DropReason
}

// Sink receives every trade, add and drop event as the core produces it,
// synchronously; implementations must not block indefinitely.
type Sink interface {
	OnTrade(TradeEvent)
	OnAdd(AddEvent)
	OnDrop(DropEvent)
}

type NoopSink struct{}

func (NoopSink) OnTrade(TradeEvent) {}
func (NoopSink) OnAdd(AddEvent)     {}
func (NoopSink) OnDrop(DropEvent)   {}
