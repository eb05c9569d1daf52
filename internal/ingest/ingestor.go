// Package ingest provides the single-owner queue an embedder needs when
// orders originate from more than one concurrent source: the engine itself
// makes no thread-safety claims, so exactly one supervised goroutine must
// drain submissions and call Engine.Submit* serially.
package ingest

import (
	"context"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/emberbook/matcher/internal/common"
)

const defaultQueueSize = 256

// Submitter is the subset of Engine that the ingestor drives. It is an
// interface so tests can supply a recording stand-in.
type Submitter interface {
	SubmitBuy(common.Order) common.MatchResult
	SubmitSell(common.Order) common.MatchResult
}

// Ingestor serializes a channel of orders, from any number of concurrent
// producers, into sequential calls against a single Submitter.
type Ingestor struct {
	engine Submitter
	orders chan common.Order
}

// New constructs an Ingestor with the given producer-side buffer size. A
// size of 0 or less uses a reasonable default.
func New(engine Submitter, queueSize int) *Ingestor {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Ingestor{
		engine: engine,
		orders: make(chan common.Order, queueSize),
	}
}

// Enqueue hands an order to the pump. Safe to call concurrently from
// multiple producer goroutines; blocks if the queue is full.
func (in *Ingestor) Enqueue(order common.Order) {
	in.orders <- order
}

// Close signals that no further orders will be enqueued. Only the
// producer side should call this, and only once.
func (in *Ingestor) Close() {
	close(in.orders)
}

// Start launches the single supervised consumer goroutine under a tomb
// bound to ctx. It returns the tomb so the caller can wait on it or
// trigger a clean shutdown via ctx cancellation.
func (in *Ingestor) Start(ctx context.Context) *tomb.Tomb {
	t, ctx := tomb.WithContext(ctx)
	t.Go(func() error {
		return in.run(t)
	})
	return t
}

func (in *Ingestor) run(t *tomb.Tomb) error {
	log.Info().Msg("ingestor running")
	for {
		select {
		case <-t.Dying():
			log.Info().Msg("ingestor shutting down")
			return nil
		case order, ok := <-in.orders:
			if !ok {
				log.Info().Msg("ingestor drained, exiting")
				return nil
			}
			in.submit(order)
		}
	}
}

func (in *Ingestor) submit(order common.Order) {
	var result common.MatchResult
	switch order.Side {
	case common.Buy:
		result = in.engine.SubmitBuy(order)
	case common.Sell:
		result = in.engine.SubmitSell(order)
	}
	log.Debug().
		Str("side", order.Side.String()).
		Str("outcome", result.Outcome.String()).
		Uint64("traded", result.Traded).
		Msg("submission processed")
}
