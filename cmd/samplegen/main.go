// Command samplegen writes a deterministic set of raw POS extracts for local
// development:
//
//	samplegen -out testdata/extracts -seed 42 -days 14 -orders-per-day 40
package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"posetl/internal/samplegen"
)

func main() {
	var (
		out          = flag.String("out", "extracts", "output directory for the CSV files")
		seed         = flag.Int64("seed", 1, "random seed; identical seeds produce identical files")
		days         = flag.Int("days", 7, "number of consecutive business days")
		ordersPerDay = flag.Int("orders-per-day", 40, "mean order count per day")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rng := rand.New(rand.NewSource(*seed))
	cfg := samplegen.Config{Days: *days, OrdersPerDay: *ordersPerDay}
	if err := samplegen.Generate(*out, rng, cfg); err != nil {
		log.Fatal().Err(err).Msg("generate extracts")
	}
	log.Info().Str("dir", *out).Int("days", *days).Msg("extracts written")
}
