package domain

import "time"

// Direction of a parsed swap relative to the base (traded) asset.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// IdentificationMethod records which escalation tier resolved the swapper.
type IdentificationMethod string

const (
	IdentifyFeePayer      IdentificationMethod = "fee_payer"
	IdentifySigner        IdentificationMethod = "signer"
	IdentifyOwnerAnalysis IdentificationMethod = "owner_analysis"
	IdentifyUnknown       IdentificationMethod = "unknown"
)

// FeeBreakdown itemizes transaction fees converted into quote-asset terms.
// Fees are informational: they feed wallet-cost display fields but never the
// base amount.
type FeeBreakdown struct {
	NetworkFeeLamports  int64   `json:"networkFeeLamports"`
	PriorityFeeLamports int64   `json:"priorityFeeLamports"`
	PlatformFeeLamports int64   `json:"platformFeeLamports,omitempty"`
	TotalFeeInQuote     float64 `json:"totalFeeInQuote"`
	// LowConfidence marks the 1:1 fallback conversion used when the quote
	// asset is neither SOL nor a known stablecoin.
	LowConfidence bool `json:"lowConfidence,omitempty"`
}

// ParsedSwap is a single classified BUY or SELL record. Amount fields always
// carry on-chain token amounts, never USD-converted values. Quote-side fields
// are direction-dependent and mutually exclusive: the BUY fields and the SELL
// fields must never both populate, and a nil pointer means "inapplicable",
// not "measured zero".
type ParsedSwap struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"` // unix ms
	Swapper   string `json:"swapper"`
	Protocol  string `json:"protocol,omitempty"`

	Direction   Direction `json:"direction"`
	QuoteMint   string    `json:"quoteMint,omitempty"`
	QuoteSymbol string    `json:"quoteSymbol,omitempty"`
	BaseMint    string    `json:"baseMint"`
	BaseSymbol  string    `json:"baseSymbol,omitempty"`

	// BaseAmount is the absolute, decimals-normalized amount of the traded
	// (non-quote) asset.
	BaseAmount float64 `json:"baseAmount"`

	// BUY only.
	TotalWalletCost *float64 `json:"totalWalletCost,omitempty"`
	SwapInputAmount *float64 `json:"swapInputAmount,omitempty"`

	// SELL only.
	NetWalletReceived *float64 `json:"netWalletReceived,omitempty"`
	SwapOutputAmount  *float64 `json:"swapOutputAmount,omitempty"`

	Fees FeeBreakdown `json:"fees"`

	IdentificationMethod IdentificationMethod `json:"swapperIdentificationMethod"`
	Confidence           int                  `json:"confidence"`
}

// SplitSwapPair represents a non-core-to-non-core swap as two linked records:
// a SELL of the outgoing asset and a BUY of the incoming asset, sharing one
// signature. No single direction applies to the pair as a whole.
type SplitSwapPair struct {
	PairID    string `json:"pairId"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	Swapper   string `json:"swapper"`
	Protocol  string `json:"protocol,omitempty"`

	Sell *ParsedSwap `json:"sell"`
	Buy  *ParsedSwap `json:"buy"`
}

// DebugInfo carries enough context to reconstruct a rejection without
// re-running the pipeline.
type DebugInfo struct {
	Deltas               []AssetDelta         `json:"deltas,omitempty"`
	RentRefundsStripped  int                  `json:"rentRefundsStripped,omitempty"`
	IdentificationMethod IdentificationMethod `json:"identificationMethod,omitempty"`
	Detail               string               `json:"detail,omitempty"`
}

// EraseResult is the rejection outcome: not a swap, with a specific
// machine-readable reason.
type EraseResult struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	Swapper   string `json:"swapper,omitempty"`
	Protocol  string `json:"protocol,omitempty"`

	Reason string    `json:"reason"`
	Debug  DebugInfo `json:"debugInfo"`

	IdentificationMethod IdentificationMethod `json:"swapperIdentificationMethod,omitempty"`
	Confidence           int                  `json:"confidence,omitempty"`
}

// Classification is the terminal tagged union emitted for every input
// transaction. Exactly one of Swap, Split, Erase is non-nil.
type Classification struct {
	Swap  *ParsedSwap    `json:"swap,omitempty"`
	Split *SplitSwapPair `json:"split,omitempty"`
	Erase *EraseResult   `json:"erase,omitempty"`

	// ProcessingTime measures the classification call itself.
	ProcessingTime time.Duration `json:"processingTimeNs"`
}

// Outcome labels for metrics and logging.
const (
	OutcomeSwap  = "swap"
	OutcomeSplit = "split"
	OutcomeErase = "erase"
)

// Outcome returns which member of the union is populated.
func (c *Classification) Outcome() string {
	switch {
	case c.Swap != nil:
		return OutcomeSwap
	case c.Split != nil:
		return OutcomeSplit
	default:
		return OutcomeErase
	}
}

// Signature returns the transaction signature of whichever member is set.
func (c *Classification) Signature() string {
	switch {
	case c.Swap != nil:
		return c.Swap.Signature
	case c.Split != nil:
		return c.Split.Signature
	case c.Erase != nil:
		return c.Erase.Signature
	}
	return ""
}
