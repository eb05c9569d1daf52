// Package engine is the thin coordinator: it routes an incoming order to
// the matcher against the opposing book, and rests any remainder the
// matcher permits on the same side.
package engine

import (
	"github.com/emberbook/matcher/internal/book"
	"github.com/emberbook/matcher/internal/common"
	"github.com/emberbook/matcher/internal/matcher"
)

// Engine owns one instrument's two opposing books. It is a plain value;
// there is no global state.
type Engine struct {
	buy  *book.Book
	sell *book.Book
	sink common.Sink
}

// New constructs an engine with empty buy and sell books, emitting events
// to sink.
func New(sink common.Sink) *Engine {
	if sink == nil {
		sink = common.NoopSink{}
	}
	return &Engine{
		buy:  book.New(common.Buy),
		sell: book.New(common.Sell),
		sink: sink,
	}
}

// SubmitBuy submits an incoming buy order: it is matched against the sell
// book, and any remainder permitted by policy rests on the buy book.
func (e *Engine) SubmitBuy(order common.Order) common.MatchResult {
	order.Side = common.Buy
	return e.submit(order)
}

// SubmitSell submits an incoming sell order: it is matched against the buy
// book, and any remainder permitted by policy rests on the sell book.
func (e *Engine) SubmitSell(order common.Order) common.MatchResult {
	order.Side = common.Sell
	return e.submit(order)
}

// submit is the single entry point both SubmitBuy and SubmitSell route
// through. Orders are processed one at a time, to completion, in
// submission order. There is no suspension point inside this call.
func (e *Engine) submit(order common.Order) common.MatchResult {
	opposing, same := e.books(order.Side)

	result := matcher.Match(opposing, order, e.sink)
	if result.Remainder != nil {
		resting := same.Push(*result.Remainder)
		e.sink.OnAdd(common.AddEvent{
			User:  resting.UserID,
			Price: resting.Price,
			Size:  resting.Size,
			Side:  resting.Side,
		})
	}
	return result
}

func (e *Engine) books(side common.Side) (opposing, same *book.Book) {
	if side == common.Buy {
		return e.sell, e.buy
	}
	return e.buy, e.sell
}

// BuyersView performs a read-only, priority-ordered walk over the resting
// buy book.
func (e *Engine) BuyersView(visit func(*common.RestingOrder) bool) {
	e.buy.View(visit)
}

// SellersView performs a read-only, priority-ordered walk over the resting
// sell book.
func (e *Engine) SellersView(visit func(*common.RestingOrder) bool) {
	e.sell.View(visit)
}
