package domain

import "encoding/json"

// SwapRecord is the flattened storage row for one side of a classified swap.
// A standard swap produces one record; a split pair produces two records
// sharing PairID. Amount columns are token-native; USD valuation is a
// consumer concern.
type SwapRecord struct {
	RecordID  string // deterministic hash, see idhash.ComputeRecordID
	PairID    string // empty for standard swaps
	Signature string
	Timestamp int64 // unix ms
	Swapper   string
	Protocol  string

	Side       Direction
	QuoteMint  string
	BaseMint   string
	BaseAmount float64

	// Nullable quote-side columns; nil means inapplicable, not zero.
	QuoteAmount *float64 // swap input (BUY) or output (SELL) in quote units
	WalletTotal *float64 // total wallet cost (BUY) or net received (SELL)

	TotalFeeInQuote      float64
	IdentificationMethod IdentificationMethod
	Confidence           int
	CreatedAt            int64 // record creation timestamp (ms)
}

// EraseRecord is the audit row for one rejected transaction.
type EraseRecord struct {
	Signature string
	Timestamp int64 // unix ms
	Swapper   string
	Protocol  string
	Reason    string
	Detail    string
	// DeltasJSON is the serialized asset-delta snapshot from DebugInfo.
	DeltasJSON string
	CreatedAt  int64
}

// RecordFromErase flattens an EraseResult into one audit row. The delta
// snapshot is serialized so rejections can be inspected without re-running
// the pipeline.
func RecordFromErase(e *EraseResult, now int64) *EraseRecord {
	r := &EraseRecord{
		Signature: e.Signature,
		Timestamp: e.Timestamp,
		Swapper:   e.Swapper,
		Protocol:  e.Protocol,
		Reason:    e.Reason,
		Detail:    e.Debug.Detail,
		CreatedAt: now,
	}
	if len(e.Debug.Deltas) > 0 {
		if data, err := json.Marshal(e.Debug.Deltas); err == nil {
			r.DeltasJSON = string(data)
		}
	}
	return r
}

// RecordsFromSwap flattens a ParsedSwap into one storage row.
func RecordsFromSwap(s *ParsedSwap, recordID string, now int64) *SwapRecord {
	r := &SwapRecord{
		RecordID:             recordID,
		Signature:            s.Signature,
		Timestamp:            s.Timestamp,
		Swapper:              s.Swapper,
		Protocol:             s.Protocol,
		Side:                 s.Direction,
		QuoteMint:            s.QuoteMint,
		BaseMint:             s.BaseMint,
		BaseAmount:           s.BaseAmount,
		TotalFeeInQuote:      s.Fees.TotalFeeInQuote,
		IdentificationMethod: s.IdentificationMethod,
		Confidence:           s.Confidence,
		CreatedAt:            now,
	}
	switch s.Direction {
	case DirectionBuy:
		r.QuoteAmount = s.SwapInputAmount
		r.WalletTotal = s.TotalWalletCost
	case DirectionSell:
		r.QuoteAmount = s.SwapOutputAmount
		r.WalletTotal = s.NetWalletReceived
	}
	return r
}
