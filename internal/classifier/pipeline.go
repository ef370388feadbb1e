// Package classifier implements the transaction-classification pipeline: an
// ordered sequence of pure stages that turns provider-normalized balance
// changes into exactly one of ParsedSwap, SplitSwapPair, or EraseResult.
// The pipeline is total: it never panics across its boundary and never
// returns a partial shape.
package classifier

import (
	"fmt"
	"log"
	"time"

	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/stats"
	"solana-swap-classifier/internal/sysaccount"
)

// PriceSource supplies the cached SOL/USD reference price. Implementations
// must never block; readers tolerate staleness by design.
type PriceSource interface {
	// PriceUSD returns the last-known price and whether it came from a
	// successful fetch (false means the hardcoded default).
	PriceUSD() (float64, bool)
}

// StageObserver records per-stage wall-clock duration. It must add
// negligible overhead and never alter control flow.
type StageObserver interface {
	ObserveStage(stage string, d time.Duration)
}

// Stage names reported to the observer.
const (
	StageSwapper   = "swapper_identifier"
	StageNoise     = "noise_filter"
	StageDeltas    = "delta_collector"
	StageQuoteBase = "quote_base_detector"
	StageErase     = "erase_validator"
	StageAmounts   = "amount_normalizer"
	StageAssemble  = "output_assembler"
)

// Pipeline classifies transactions. Construct once per process; concurrent
// calls for different transactions are fully independent, and calls for the
// same transaction are idempotent.
type Pipeline struct {
	cfg      Config
	filter   sysaccount.Filter
	prices   PriceSource
	stats    *stats.Running
	observer StageObserver
	logger   *log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSystemAccountFilter replaces the default system-account predicate.
func WithSystemAccountFilter(f sysaccount.Filter) Option {
	return func(p *Pipeline) { p.filter = f }
}

// WithPriceSource wires the cached reference price used by the notional
// filter and stablecoin fee conversion.
func WithPriceSource(src PriceSource) Option {
	return func(p *Pipeline) { p.prices = src }
}

// WithStats wires an injectable running-statistics collector.
func WithStats(s *stats.Running) Option {
	return func(p *Pipeline) { p.stats = s }
}

// WithObserver wires per-stage latency instrumentation.
func WithObserver(o StageObserver) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithLogger sets the logger; nil means silent.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline with the given configuration.
func New(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		filter: sysaccount.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Classify runs the full staged pipeline on one transaction. It always
// returns exactly one populated member of the output union; recovered panics
// become parsing_error erases.
func (p *Pipeline) Classify(tx *Transaction) (c *domain.Classification) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c = p.recovered(tx, r)
		}
		c.ProcessingTime = time.Since(start)
		p.record(c)
	}()

	if tx == nil || tx.Signature == "" {
		return p.eraseOut(tx, identification{method: domain.IdentifyUnknown},
			domain.EraseMissingFields, "missing signature", nil, 0)
	}

	// Swapper identification.
	stageStart := time.Now()
	id, ok := identifySwapper(tx, p.filter)
	p.observe(StageSwapper, stageStart)
	if !ok {
		return p.eraseOut(tx, id, domain.EraseSwapperUnidentified, "", nil, 0)
	}

	// Rent-noise stripping.
	stageStart = time.Now()
	noise := filterRentNoise(tx.Changes, id.swapper)
	p.observe(StageNoise, stageStart)

	// Per-asset aggregation.
	stageStart = time.Now()
	deltas := collectDeltas(noise.economic, id.swapper, tx)
	deltas = applyEntryExitHeuristic(deltas)
	deltas = synthesizeFromAction(deltas, tx.Action)
	p.observe(StageDeltas, stageStart)

	rentStripped := len(noise.rentRefunds)

	// Role assignment.
	stageStart = time.Now()
	qb := detectQuoteBase(deltas)
	p.observe(StageQuoteBase, stageStart)
	if qb.eraseReason != "" {
		return p.eraseOut(tx, id, qb.eraseReason, "", deltas, rentStripped)
	}

	if qb.splitRequired {
		stageStart = time.Now()
		split := assembleSplit(tx, id, qb.outgoing, qb.incoming)
		p.observe(StageAssemble, stageStart)
		return &domain.Classification{Split: split}
	}

	// Strict rejection rules (standard path only).
	stageStart = time.Now()
	if reason := validateSwap(qb.quote, qb.base); reason != "" {
		p.observe(StageErase, stageStart)
		return p.eraseOut(tx, id, reason, "", deltas, rentStripped)
	}
	dir := qb.direction
	if dir == "" {
		dir = resolveDirection(qb.quote, qb.base)
	}
	p.observe(StageErase, stageStart)

	// Core-to-core pairs are settlement reshuffles, not tradeable events.
	if coretoken.IsCore(qb.quote.Mint) && coretoken.IsCore(qb.base.Mint) {
		return p.eraseOut(tx, id, domain.EraseCoreToCore,
			fmt.Sprintf("%s <-> %s", qb.quote.Mint, qb.base.Mint), deltas, rentStripped)
	}

	// Amount normalization.
	stageStart = time.Now()
	solPrice, _ := p.price()
	amounts := normalizeAmounts(tx, dir, qb.quote, qb.base, solPrice)
	p.observe(StageAmounts, stageStart)

	// Notional floor.
	if reason := p.belowNotionalFloor(qb.quote); reason != "" {
		return p.eraseOut(tx, id, reason, "", deltas, rentStripped)
	}

	stageStart = time.Now()
	swap := assembleSwap(tx, id, dir, qb.quote, qb.base, amounts)
	p.observe(StageAssemble, stageStart)

	return &domain.Classification{Swap: swap}
}

// belowNotionalFloor applies the configurable USD value floor using the
// cached spot price. Only quote sides with a known USD interpretation
// participate; everything else passes.
func (p *Pipeline) belowNotionalFloor(quote *domain.AssetDelta) string {
	if p.cfg.MinNotionalUSD <= 0 {
		return ""
	}
	solPrice, _ := p.price()

	var valueUSD float64
	switch {
	case coretoken.IsSOLEquivalent(quote.Mint):
		valueUSD = quote.AbsNormalized() * solPrice
	case coretoken.IsStablecoin(quote.Mint):
		valueUSD = quote.AbsNormalized()
	default:
		return ""
	}

	if valueUSD < p.cfg.MinNotionalUSD {
		return domain.EraseBelowMinValue
	}
	return ""
}

// price returns the cached reference price or the hardcoded default.
func (p *Pipeline) price() (float64, bool) {
	if p.prices == nil {
		return DefaultSOLPriceUSD, false
	}
	return p.prices.PriceUSD()
}

// eraseOut assembles an EraseResult classification.
func (p *Pipeline) eraseOut(tx *Transaction, id identification, reason, detail string, deltas []domain.AssetDelta, rentStripped int) *domain.Classification {
	if tx == nil {
		tx = &Transaction{}
	}
	return &domain.Classification{
		Erase: assembleErase(tx, id, reason, detail, deltas, rentStripped),
	}
}

// recovered converts a recovered panic into a parsing_error erase. Totality
// is a hard contract: callers feed high-volume, partially-malformed upstream
// data continuously and must never see a raw fault.
func (p *Pipeline) recovered(tx *Transaction, r any) *domain.Classification {
	sig := ""
	if tx != nil {
		sig = tx.Signature
	}
	if p.logger != nil {
		p.logger.Printf("classifier: recovered panic tx=%s: %v", sig, r)
	}
	return p.eraseOut(tx, identification{method: domain.IdentifyUnknown},
		domain.EraseParsingError, fmt.Sprint(r), nil, 0)
}

// observe reports one stage duration to the observer, when present.
func (p *Pipeline) observe(stage string, start time.Time) {
	if p.observer != nil {
		p.observer.ObserveStage(stage, time.Since(start))
	}
}

// record feeds the running statistics, when present.
func (p *Pipeline) record(c *domain.Classification) {
	if p.stats == nil || c == nil {
		return
	}
	switch c.Outcome() {
	case domain.OutcomeSwap:
		p.stats.RecordSwap()
	case domain.OutcomeSplit:
		p.stats.RecordSplit()
	case domain.OutcomeErase:
		p.stats.RecordErase(c.Erase.Reason)
	}
}
