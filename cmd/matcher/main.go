// Command matcher is the single-shot CLI entry point: it reads a YAML
// submission document from a file, feeds it to a fresh engine, and exits.
package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/emberbook/matcher/internal/common"
	"github.com/emberbook/matcher/internal/engine"
	"github.com/emberbook/matcher/internal/events"
	"github.com/emberbook/matcher/internal/input"
)

func main() {
	os.Exit(run())
}

func run() int {
	var inputPath string
	flag.StringVar(&inputPath, "input", "", "path to the submissions document")
	flag.StringVar(&inputPath, "i", "", "shorthand for --input")
	flag.Parse()

	// Tag every log line from this run with a correlation id; the core
	// itself has no notion of order identity, only user_id.
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()

	if inputPath == "" {
		logger.Error().Msg("missing required --input/-i flag")
		return 1
	}

	f, err := os.Open(inputPath)
	if err != nil {
		logger.Error().Err(err).Str("path", inputPath).Msg("unable to open input file")
		return 1
	}
	defer f.Close()

	orders, err := input.ParseSubmissions(f)
	if err != nil {
		logger.Error().Err(err).Str("path", inputPath).Msg("unable to parse submissions")
		return 1
	}

	eng := engine.New(events.NewLogSink(logger))
	runEngine(eng, orders)

	logger.Info().Int("submissions", len(orders)).Msg("run complete")
	return 0
}

func runEngine(eng *engine.Engine, orders []common.Order) {
	for _, order := range orders {
		switch order.Side {
		case common.Buy:
			eng.SubmitBuy(order)
		case common.Sell:
			eng.SubmitSell(order)
		}
	}
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
