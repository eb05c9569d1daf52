// Package events provides the structured-logging implementation of
// common.Sink, using zerolog.
package events

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/emberbook/matcher/internal/common"
)

// LogSink logs every TRADE, ADD and DROP event through zerolog. The zero
// value holds a zerolog.Logger with no writer and logs nothing;
// NewDefaultLogSink logs through the global logger, and NewLogSink lets a
// caller attach a scoped logger (e.g. one carrying a run-correlation id).
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink builds a LogSink that logs through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// NewDefaultLogSink builds a LogSink that logs through the package-level
// zerolog logger.
func NewDefaultLogSink() *LogSink {
	return &LogSink{logger: log.Logger}
}

// OnTrade logs a matched pair. The verb/direction phrasing is driven by the
// taker's side: a taker buy "bought from" the maker, a taker sell "sold
// to" the maker.
func (s *LogSink) OnTrade(e common.TradeEvent) {
	verb, prep := dealVerbDirection(e.TakerSide)
	s.logger.Info().
		Uint64("taker_user", e.TakerUser).
		Uint64("maker_user", e.MakerUser).
		Uint64("qty", e.Qty).
		Uint64("price", e.MakerPrice).
		Str("taker_side", e.TakerSide.String()).
		Msgf("[TRADE] user %d %s %d units %s user %d for price %d",
			e.TakerUser, verb, e.Qty, prep, e.MakerUser, e.MakerPrice)
}

// OnAdd logs a remainder resting on the book.
func (s *LogSink) OnAdd(e common.AddEvent) {
	s.logger.Info().
		Uint64("user", e.User).
		Uint64("price", e.Price).
		Uint64("size", e.Size).
		Str("side", e.Side.String()).
		Msgf("[ADD] user %d resting %d @ %d on the %s book", e.User, e.Size, e.Price, e.Side)
}

// OnDrop logs a FoK kill or a zero-fill IoC cancellation.
func (s *LogSink) OnDrop(e common.DropEvent) {
	s.logger.Info().
		Uint64("user", e.User).
		Uint64("price", e.Price).
		Uint64("size", e.Size).
		Str("side", e.Side.String()).
		Str("reason", e.Reason.String()).
		Msgf("[DROP] user %d order %d @ %d on the %s book (%s)", e.User, e.Size, e.Price, e.Side, e.Reason)
}

// dealVerbDirection returns the verb and preposition pair used to phrase a
// trade log line for the given taker side.
func dealVerbDirection(takerSide common.Side) (verb, prep string) {
	if takerSide == common.Buy {
		return "bought", "from"
	}
	return "sold", "to"
}
