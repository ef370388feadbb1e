package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"solana-swap-classifier/internal/classifier"
	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/feed"
	"solana-swap-classifier/internal/idhash"
	"solana-swap-classifier/internal/observability"
	"solana-swap-classifier/internal/pricecache"
	"solana-swap-classifier/internal/provider/helius"
	"solana-swap-classifier/internal/stats"
	"solana-swap-classifier/internal/storage"
	chstore "solana-swap-classifier/internal/storage/clickhouse"
	"solana-swap-classifier/internal/storage/memory"
	"solana-swap-classifier/internal/storage/migrations"
	pgstore "solana-swap-classifier/internal/storage/postgres"
)

func main() {
	// .env is optional; flags and real env take precedence.
	_ = godotenv.Load()

	wsEndpoint := flag.String("ws-endpoint", envOr("WS_ENDPOINT", ""), "Provider WebSocket endpoint pushing enhanced transaction JSON")
	subscribe := flag.String("subscribe", envOr("WS_SUBSCRIBE", ""), "Optional subscribe payload sent after each connect")
	postgresDSN := flag.String("postgres-dsn", envOr("POSTGRES_DSN", ""), "PostgreSQL connection string for swap records")
	clickhouseDSN := flag.String("clickhouse-dsn", envOr("CLICKHOUSE_DSN", ""), "ClickHouse connection string for the erase audit log")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")
	minNotional := flag.Float64("min-notional-usd", 0, "Erase trades whose quote value is below this USD floor (0 disables)")
	statsInterval := flag.Duration("stats-interval", 1*time.Minute, "Interval for logging running statistics")

	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	if *wsEndpoint == "" {
		logger.Fatal("--ws-endpoint is required")
	}
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err := run(ctx, logger, options{
		wsEndpoint:    *wsEndpoint,
		subscribe:     *subscribe,
		postgresDSN:   *postgresDSN,
		clickhouseDSN: *clickhouseDSN,
		useMemory:     *useMemory,
		minNotional:   *minNotional,
		statsInterval: *statsInterval,
	})

	done <- err
	cancel()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

type options struct {
	wsEndpoint    string
	subscribe     string
	postgresDSN   string
	clickhouseDSN string
	useMemory     bool
	minNotional   float64
	statsInterval time.Duration
}

func run(ctx context.Context, logger *log.Logger, opts options) error {
	var swapStore storage.SwapRecordStore = memory.NewSwapRecordStore()
	var auditStore storage.EraseAuditStore = memory.NewEraseAuditStore()

	if !opts.useMemory {
		pool, err := pgstore.NewPool(ctx, opts.postgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("postgres migrations: %w", err)
		}
		swapStore = pgstore.NewSwapRecordStore(pool)

		if opts.clickhouseDSN != "" {
			conn, err := migrations.RunClickhouseMigrations(ctx, opts.clickhouseDSN)
			if err != nil {
				return fmt.Errorf("clickhouse migrations: %w", err)
			}
			defer conn.Close()
			auditStore = chstore.NewEraseAuditStore(conn)
		} else {
			logger.Println("No --clickhouse-dsn, keeping erase audit in memory")
		}
	}

	// SOL/USD reference price, refreshed in the background.
	prices := pricecache.New(
		pricecache.WithLogger(logger),
		pricecache.WithFetcher(func(ctx context.Context) (float64, error) {
			price, err := pricecache.FetchBinance(ctx)
			if err != nil {
				observability.RecordPriceRefreshError()
			}
			return price, err
		}),
	)
	go prices.Run(ctx)
	go trackHealth(ctx, prices)

	running := stats.New()
	go logStats(ctx, logger, running, opts.statsInterval)

	pipeline := classifier.New(classifier.Config{MinNotionalUSD: opts.minNotional},
		classifier.WithPriceSource(prices),
		classifier.WithStats(running),
		classifier.WithObserver(observability.DefaultMetrics),
		classifier.WithLogger(logger),
	)
	adapter := helius.NewAdapter(pipeline, logger)

	feedOpts := []feed.Option{feed.WithLogger(logger), feed.WithObserver(metricsObserver{})}
	if opts.subscribe != "" {
		feedOpts = append(feedOpts, feed.WithSubscribePayload([]byte(opts.subscribe)))
	}
	stream := feed.New(opts.wsEndpoint, feedOpts...)

	streamErr := make(chan error, 1)
	go func() { streamErr <- stream.Run(ctx) }()

	logger.Printf("Ingesting from %s", opts.wsEndpoint)

	for {
		select {
		case <-ctx.Done():
			return <-streamErr
		case msg, ok := <-stream.Messages():
			if !ok {
				return <-streamErr
			}
			c := adapter.ClassifyJSON(msg)
			observability.RecordClassification(c.Outcome(), c.ProcessingTime)
			if err := persist(ctx, swapStore, auditStore, c); err != nil {
				logger.Printf("persist: %v", err)
			}
		}
	}
}

// persist writes one classification to the appropriate store. Duplicate
// swap records mean the signature was already processed and are not errors.
func persist(ctx context.Context, swaps storage.SwapRecordStore, audit storage.EraseAuditStore, c *domain.Classification) error {
	now := time.Now().UnixMilli()

	switch {
	case c.Swap != nil:
		id := idhash.ComputeRecordID(c.Swap.Signature, c.Swap.BaseMint, string(c.Swap.Direction))
		started := time.Now()
		err := swaps.Insert(ctx, domain.RecordsFromSwap(c.Swap, id, now))
		observability.RecordDBQuery("swap_records", "insert", time.Since(started).Seconds(), err)
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil
		}
		if err == nil {
			observability.RecordStored("swap", 1)
		}
		return err

	case c.Split != nil:
		sell := domain.RecordsFromSwap(c.Split.Sell, idhash.ComputeRecordID(c.Split.Signature, c.Split.Sell.BaseMint, string(domain.DirectionSell)), now)
		buy := domain.RecordsFromSwap(c.Split.Buy, idhash.ComputeRecordID(c.Split.Signature, c.Split.Buy.BaseMint, string(domain.DirectionBuy)), now)
		sell.PairID = c.Split.PairID
		buy.PairID = c.Split.PairID
		started := time.Now()
		err := swaps.InsertBulk(ctx, []*domain.SwapRecord{sell, buy})
		observability.RecordDBQuery("swap_records", "insert_bulk", time.Since(started).Seconds(), err)
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil
		}
		if err == nil {
			observability.RecordStored("split", 2)
		}
		return err

	default:
		observability.RecordErase(c.Erase.Reason)
		started := time.Now()
		err := audit.Insert(ctx, domain.RecordFromErase(c.Erase, now))
		observability.RecordDBQuery("erase_audit", "insert", time.Since(started).Seconds(), err)
		if err == nil {
			observability.RecordStored("erase", 1)
		}
		return err
	}
}

func trackHealth(ctx context.Context, prices *pricecache.Cache) {
	const interval = 15 * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			observability.UpdatePriceCacheAge(prices.Age())
			observability.AddUptime(interval)
		}
	}
}

func logStats(ctx context.Context, logger *log.Logger, running *stats.Running, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := running.Snapshot()
			logger.Printf("stats: total=%d swaps=%d splits=%d erases=%d", snap.Total, snap.Swaps, snap.Splits, snap.Erases)
		}
	}
}

// metricsObserver bridges feed lifecycle events to Prometheus counters.
type metricsObserver struct{}

func (metricsObserver) MessageReceived()        { observability.RecordFeedMessage() }
func (metricsObserver) Reconnected()            { observability.RecordFeedReconnect() }
func (metricsObserver) StreamError(kind string) { observability.RecordFeedError(kind) }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
