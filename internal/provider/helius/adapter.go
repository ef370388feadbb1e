package helius

import (
	"log"
	"math"
	"strconv"

	"solana-swap-classifier/internal/classifier"
	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// Adapter converts enhanced records into the common model and classifies
// them through the delta-oriented pattern variant.
type Adapter struct {
	pipeline *classifier.Pipeline
	logger   *log.Logger
}

// NewAdapter wires an adapter to a pipeline. A nil logger means silent.
func NewAdapter(p *classifier.Pipeline, logger *log.Logger) *Adapter {
	return &Adapter{pipeline: p, logger: logger}
}

// Classify converts and classifies one record. Errored transactions
// short-circuit to an erase without entering the pipeline.
func (a *Adapter) Classify(rec *EnhancedTransaction) *domain.Classification {
	if rec == nil {
		return a.pipeline.ClassifyDeltas(nil)
	}
	if rec.Failed() {
		return &domain.Classification{Erase: &domain.EraseResult{
			Signature: rec.Signature,
			Timestamp: toMillis(rec.Timestamp),
			Reason:    domain.EraseUpstreamFailed,
			Debug: domain.DebugInfo{
				Detail:               string(*rec.TransactionError),
				IdentificationMethod: domain.IdentifyUnknown,
			},
			IdentificationMethod: domain.IdentifyUnknown,
			Confidence:           50,
		}}
	}
	return a.pipeline.ClassifyDeltas(a.Convert(rec))
}

// ClassifyJSON decodes and classifies one raw record. Undecodable payloads
// become parsing_error erases.
func (a *Adapter) ClassifyJSON(data []byte) *domain.Classification {
	rec, err := ParseTransaction(data)
	if err != nil {
		return &domain.Classification{Erase: &domain.EraseResult{
			Reason: domain.EraseParsingError,
			Debug:  domain.DebugInfo{Detail: err.Error(), IdentificationMethod: domain.IdentifyUnknown},

			IdentificationMethod: domain.IdentifyUnknown,
			Confidence:           50,
		}}
	}
	return a.Classify(rec)
}

// Convert maps one enhanced record onto the common pipeline input.
func (a *Adapter) Convert(rec *EnhancedTransaction) *classifier.Transaction {
	tx := &classifier.Transaction{
		Signature:   rec.Signature,
		Timestamp:   toMillis(rec.Timestamp),
		Protocol:    rec.Source,
		FeePayer:    rec.FeePayer,
		Signers:     []string{rec.FeePayer},
		FeeLamports: rec.Fee,
	}

	wrappedSolOwners := make(map[string]bool)
	for _, ad := range rec.AccountData {
		for _, tc := range ad.TokenBalanceChanges {
			raw, err := strconv.ParseInt(tc.RawTokenAmount.TokenAmount, 10, 64)
			if err != nil {
				if a.logger != nil {
					a.logger.Printf("helius: tx=%s mint=%s bad raw amount %q",
						rec.Signature, tc.Mint, tc.RawTokenAmount.TokenAmount)
				}
				continue
			}
			tx.Changes = append(tx.Changes, domain.BalanceChange{
				Owner:    tc.UserAccount,
				Mint:     tc.Mint,
				RawDelta: raw,
				Decimals: tc.RawTokenAmount.Decimals,
			})
			if coretoken.IsSOLEquivalent(tc.Mint) {
				wrappedSolOwners[tc.UserAccount] = true
			}
		}
	}

	// Wrapped-SOL transfer legs are the primary SOL-movement signal. The
	// gross volume touching the fee payer feeds the pattern variant's
	// low-native-SOL branch.
	for _, tt := range rec.TokenTransfers {
		if tt.Mint != coretoken.WSOL {
			continue
		}
		tx.WrappedSolSeen = true
		if tt.FromUserAccount == rec.FeePayer || tt.ToUserAccount == rec.FeePayer {
			tx.WrappedSolVolumeLamports += int64(math.Round(tt.TokenAmount * classifier.LamportsPerSOL))
		}
	}

	// Native balance change is the fallback when no wrapped-SOL token
	// change exists for an account. The fee payer's change is adjusted to
	// exclude the fee itself so that fees never read as trade flow.
	for _, ad := range rec.AccountData {
		if ad.NativeBalanceChange == 0 || wrappedSolOwners[ad.Account] {
			continue
		}
		delta := ad.NativeBalanceChange
		if ad.Account == rec.FeePayer {
			delta += rec.Fee
		}
		if delta == 0 {
			continue
		}
		tx.Changes = append(tx.Changes, domain.BalanceChange{
			Owner:    ad.Account,
			Mint:     coretoken.NativeSOL,
			RawDelta: delta,
			Decimals: coretoken.SOLDecimals,
		})
	}

	return tx
}

// toMillis normalizes second-resolution provider timestamps; values already
// in milliseconds pass through.
func toMillis(ts int64) int64 {
	if ts > 0 && ts < 1_000_000_000_000 {
		return ts * 1000
	}
	return ts
}
