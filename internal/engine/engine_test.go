package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberbook/matcher/internal/common"
)

func viewSide(view func(func(*common.RestingOrder) bool)) []*common.RestingOrder {
	var out []*common.RestingOrder
	view(func(o *common.RestingOrder) bool {
		out = append(out, o)
		return true
	})
	return out
}

func TestSubmitRoutesToTheOpposingBook(t *testing.T) {
	eng := New(common.NoopSink{})

	result := eng.SubmitSell(common.Order{Price: 10, Size: 5, UserID: 1, Policy: common.Limit})
	require.Equal(t, common.PartiallyFilled, result.Outcome)
	assert.Len(t, viewSide(eng.SellersView), 1)
	assert.Empty(t, viewSide(eng.BuyersView))

	result = eng.SubmitBuy(common.Order{Price: 10, Size: 5, UserID: 2, Policy: common.Limit})
	require.Equal(t, common.Filled, result.Outcome)
	assert.Empty(t, viewSide(eng.SellersView))
	assert.Empty(t, viewSide(eng.BuyersView))
}

func TestSubmissionsAreProcessedOneAtATimeInOrder(t *testing.T) {
	eng := New(common.NoopSink{})

	eng.SubmitBuy(common.Order{Price: 100, Size: 3, UserID: 1, Policy: common.Limit})
	eng.SubmitBuy(common.Order{Price: 100, Size: 3, UserID: 2, Policy: common.Limit})
	eng.SubmitBuy(common.Order{Price: 101, Size: 1, UserID: 3, Policy: common.Limit})

	resting := viewSide(eng.BuyersView)
	require.Len(t, resting, 3)
	// Buy book: highest price first, then arrival order within a price.
	assert.Equal(t, uint64(3), resting[0].UserID)
	assert.Equal(t, uint64(1), resting[1].UserID)
	assert.Equal(t, uint64(2), resting[2].UserID)
}

// conservationSink only needs trade quantities; adds/drops are read off
// MatchResult in the test loop instead.
type conservationSink struct{ tradedQty uint64 }

func (s *conservationSink) OnTrade(e common.TradeEvent) { s.tradedQty += e.Qty }
func (s *conservationSink) OnAdd(common.AddEvent)       {}
func (s *conservationSink) OnDrop(common.DropEvent)     {}

// TestConservationOfUnits checks conservation of units, aggregated per
// side: a trade always removes one unit from the buy side and one matching unit
// from the sell side, so the total traded quantity is shared by both
// sides' ledgers; what differs per side is how much of that side's own
// submitted volume ended up resting versus killed/dropped.
func TestConservationOfUnits(t *testing.T) {
	sink := &conservationSink{}
	eng := New(sink)

	submissions := []common.Order{
		{Price: 10, Size: 5, UserID: 1, Side: common.Sell, Policy: common.Limit},
		{Price: 10, Size: 5, UserID: 2, Side: common.Sell, Policy: common.Limit},
		{Price: 10, Size: 7, UserID: 3, Side: common.Buy, Policy: common.Limit},
		{Price: 100, Size: 10, UserID: 4, Side: common.Sell, Policy: common.Limit},
		{Price: 100, Size: 15, UserID: 5, Side: common.Buy, Policy: common.FillOrKill},
		{Price: 10, Size: 3, UserID: 6, Side: common.Sell, Policy: common.Limit},
		{Price: 10, Size: 10, UserID: 7, Side: common.Buy, Policy: common.ImmediateOrCancel},
	}

	submitted := map[common.Side]uint64{}
	killedOrDropped := map[common.Side]uint64{}
	for _, o := range submissions {
		submitted[o.Side] += o.Size

		var result common.MatchResult
		if o.Side == common.Buy {
			result = eng.SubmitBuy(o)
		} else {
			result = eng.SubmitSell(o)
		}

		unfilled := o.Size - result.Traded
		switch result.Outcome {
		case common.Killed, common.Dropped:
			killedOrDropped[o.Side] += unfilled
		case common.PartiallyFilled:
			if result.Remainder == nil {
				// IoC: the unfilled remainder was discarded, not rested.
				killedOrDropped[o.Side] += unfilled
			}
		}
	}

	resting := map[common.Side]uint64{}
	for _, o := range viewSide(eng.BuyersView) {
		resting[common.Buy] += o.Size
	}
	for _, o := range viewSide(eng.SellersView) {
		resting[common.Sell] += o.Size
	}

	// Every trade removes matching quantity from both sides at once, so
	// the traded total is shared by both sides' ledgers.
	for _, side := range []common.Side{common.Buy, common.Sell} {
		assert.Equal(t, submitted[side], sink.tradedQty+resting[side]+killedOrDropped[side],
			"conservation failed for side %v", side)
	}
}

func TestSelfTradePreventionAcrossTheEngine(t *testing.T) {
	eng := New(common.NoopSink{})

	eng.SubmitBuy(common.Order{Price: 100, Size: 5, UserID: 1, Policy: common.Limit})
	result := eng.SubmitSell(common.Order{Price: 100, Size: 5, UserID: 1, Policy: common.Limit})

	// The sell cannot match its own resting buy, so it must rest instead.
	assert.Equal(t, common.PartiallyFilled, result.Outcome)
	assert.Len(t, viewSide(eng.BuyersView), 1)
	assert.Len(t, viewSide(eng.SellersView), 1)
}

func TestIoCNeverRests(t *testing.T) {
	eng := New(common.NoopSink{})

	result := eng.SubmitBuy(common.Order{Price: 10, Size: 5, UserID: 1, Policy: common.ImmediateOrCancel})
	assert.Equal(t, common.Dropped, result.Outcome)
	assert.Empty(t, viewSide(eng.BuyersView))
}
