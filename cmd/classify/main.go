package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"solana-swap-classifier/internal/classifier"
	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/provider/helius"
	"solana-swap-classifier/internal/provider/shyft"
	"solana-swap-classifier/internal/stats"
)

// maxLineBytes bounds one provider record; enhanced payloads with large
// account lists stay well under this.
const maxLineBytes = 16 * 1024 * 1024

func main() {
	_ = godotenv.Load()

	provider := flag.String("provider", "shyft", "Input record shape: shyft or helius")
	input := flag.String("input", "", "Input file of JSON lines (default stdin)")
	minNotional := flag.Float64("min-notional-usd", 0, "Erase trades whose quote value is below this USD floor (0 disables)")
	priceUSD := flag.Float64("sol-price-usd", 0, "Fixed SOL/USD price for notional and fee conversion (0 uses the built-in default)")
	printStats := flag.Bool("stats", false, "Print running statistics to stderr when done")

	flag.Parse()

	logger := log.New(os.Stderr, "[classify] ", log.LstdFlags)

	var in io.Reader = os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			logger.Fatalf("open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	running := stats.New()

	pipelineOpts := []classifier.Option{
		classifier.WithStats(running),
		classifier.WithLogger(logger),
	}
	if *priceUSD > 0 {
		pipelineOpts = append(pipelineOpts, classifier.WithPriceSource(fixedPrice(*priceUSD)))
	}
	pipeline := classifier.New(classifier.Config{MinNotionalUSD: *minNotional}, pipelineOpts...)

	classify, err := classifyFunc(*provider, pipeline, logger)
	if err != nil {
		logger.Fatal(err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := enc.Encode(classify(line)); err != nil {
			logger.Fatalf("write output: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatalf("read input: %v", err)
	}

	if *printStats {
		snap := running.Snapshot()
		logger.Printf("total=%d swaps=%d splits=%d erases=%d", snap.Total, snap.Swaps, snap.Splits, snap.Erases)
		for reason, n := range snap.EraseReasons {
			logger.Printf("  erase %s: %d", reason, n)
		}
	}
}

func classifyFunc(provider string, pipeline *classifier.Pipeline, logger *log.Logger) (func([]byte) *domain.Classification, error) {
	switch provider {
	case "shyft":
		a := shyft.NewAdapter(pipeline, logger)
		return a.ClassifyJSON, nil
	case "helius":
		a := helius.NewAdapter(pipeline, logger)
		return a.ClassifyJSON, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want shyft or helius)", provider)
	}
}

// fixedPrice is a PriceSource pinned to a flag value.
type fixedPrice float64

func (p fixedPrice) PriceUSD() (float64, bool) { return float64(p), true }
