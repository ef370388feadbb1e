package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"solana-swap-classifier/internal/classifier"
	"solana-swap-classifier/internal/dualrun"
	"solana-swap-classifier/internal/provider/helius"
	"solana-swap-classifier/internal/stats"
)

const maxLineBytes = 16 * 1024 * 1024

// Runs the staged pipeline and the delta-oriented pattern variant over the
// same enhanced records and reports where they disagree.
func main() {
	_ = godotenv.Load()

	input := flag.String("input", "", "Input file of enhanced-transaction JSON lines (default stdin)")
	minNotional := flag.Float64("min-notional-usd", 0, "Erase trades whose quote value is below this USD floor (0 disables)")
	priceUSD := flag.Float64("sol-price-usd", 0, "Fixed SOL/USD price (0 uses the built-in default)")
	onlyDiffs := flag.Bool("only-diffs", true, "Emit only disagreements")

	flag.Parse()

	logger := log.New(os.Stderr, "[compare] ", log.LstdFlags)

	var in io.Reader = os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			logger.Fatalf("open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	pipelineOpts := []classifier.Option{
		classifier.WithStats(stats.New()),
		classifier.WithLogger(logger),
	}
	if *priceUSD > 0 {
		pipelineOpts = append(pipelineOpts, classifier.WithPriceSource(fixedPrice(*priceUSD)))
	}
	pipeline := classifier.New(classifier.Config{MinNotionalUSD: *minNotional}, pipelineOpts...)
	adapter := helius.NewAdapter(pipeline, logger)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	total, disagreements := 0, 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		rec, err := helius.ParseTransaction(line)
		if err != nil {
			logger.Printf("skip undecodable line: %v", err)
			continue
		}
		if rec.Failed() {
			continue
		}
		tx := adapter.Convert(rec)

		staged := pipeline.Classify(tx)
		pattern := pipeline.ClassifyDeltas(tx)

		total++
		res := dualrun.Compare(staged, pattern)
		if !res.Agree() {
			disagreements++
		}
		if res.Agree() && *onlyDiffs {
			continue
		}
		if err := enc.Encode(res); err != nil {
			logger.Fatalf("write output: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatalf("read input: %v", err)
	}

	logger.Printf("compared=%d disagreements=%d", total, disagreements)
}

// fixedPrice is a PriceSource pinned to a flag value.
type fixedPrice float64

func (p fixedPrice) PriceUSD() (float64, bool) { return float64(p), true }
