package shyft

import (
	"log"
	"strings"

	"solana-swap-classifier/internal/classifier"
	"solana-swap-classifier/internal/domain"
)

// statusSuccess is the only upstream status that proceeds to classification.
const statusSuccess = "Success"

// Adapter converts provider records into the common model and runs the
// staged pipeline on them.
type Adapter struct {
	pipeline *classifier.Pipeline
	logger   *log.Logger
}

// NewAdapter wires an adapter to a pipeline. A nil logger means silent.
func NewAdapter(p *classifier.Pipeline, logger *log.Logger) *Adapter {
	return &Adapter{pipeline: p, logger: logger}
}

// Classify converts and classifies one record. Upstream-failed transactions
// short-circuit to an erase without entering the pipeline.
func (a *Adapter) Classify(rec *Transaction) *domain.Classification {
	if rec == nil {
		return a.pipeline.Classify(nil)
	}
	if rec.Status != statusSuccess {
		return upstreamFailed(rec)
	}
	if a.logger != nil && rec.Type != "" {
		a.logger.Printf("shyft: tx=%s type=%s", rec.Signature, rec.Type)
	}
	return a.pipeline.Classify(Convert(rec))
}

// ClassifyJSON decodes and classifies one raw record. Undecodable payloads
// become parsing_error erases; the adapter is total like the pipeline.
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

// Convert maps a provider record onto the common pipeline input.
func Convert(rec *Transaction) *classifier.Transaction {
	tx := &classifier.Transaction{
		Signature:   rec.Signature,
		Timestamp:   toMillis(rec.Timestamp),
		FeePayer:    rec.FeePayer,
		Signers:     rec.Signers,
		FeeLamports: rec.Fee,
	}
	if rec.Protocol != nil {
		tx.Protocol = rec.Protocol.Name
	}

	for _, c := range rec.TokenBalanceChanges {
		tx.Changes = append(tx.Changes, domain.BalanceChange{
			Owner:       c.Owner,
			Mint:        c.Mint,
			RawDelta:    c.ChangeAmount,
			Decimals:    c.Decimals,
			PreBalance:  clampUnsigned(c.PreBalance),
			PostBalance: clampUnsigned(c.PostBalance),
		})
	}

	if action := firstSwapAction(rec.Actions); action != nil {
		swapped := action.Info.TokensSwapped
		tx.Action = &classifier.SwapAction{
			InMint:      swapped.In.TokenAddress,
			InRawAmount: swapped.In.AmountRaw,
			InDecimals:  swapped.In.Decimals,

			OutMint:      swapped.Out.TokenAddress,
			OutRawAmount: swapped.Out.AmountRaw,
			OutDecimals:  swapped.Out.Decimals,
		}
		tx.Symbols = symbolMap(swapped)
	}

	return tx
}

// firstSwapAction returns the first swap-shaped action carrying both legs.
func firstSwapAction(actions []Action) *Action {
	for i := range actions {
		a := &actions[i]
		if !strings.EqualFold(a.Type, "SWAP") {
			continue
		}
		if a.Info.TokensSwapped == nil {
			continue
		}
		if a.Info.TokensSwapped.In.TokenAddress == "" || a.Info.TokensSwapped.Out.TokenAddress == "" {
			continue
		}
		return a
	}
	return nil
}

func symbolMap(swapped *TokensSwapped) map[string]string {
	if swapped.In.Symbol == "" && swapped.Out.Symbol == "" {
		return nil
	}
	m := make(map[string]string, 2)
	if swapped.In.Symbol != "" {
		m[swapped.In.TokenAddress] = swapped.In.Symbol
	}
	if swapped.Out.Symbol != "" {
		m[swapped.Out.TokenAddress] = swapped.Out.Symbol
	}
	return m
}

// toMillis normalizes second-resolution provider timestamps; values already
// in milliseconds pass through.
func toMillis(ts int64) int64 {
	if ts > 0 && ts < 1_000_000_000_000 {
		return ts * 1000
	}
	return ts
}

func clampUnsigned(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// upstreamFailed builds the short-circuit erase for failed transactions.
func upstreamFailed(rec *Transaction) *domain.Classification {
	return &domain.Classification{Erase: &domain.EraseResult{
		Signature: rec.Signature,
		Timestamp: toMillis(rec.Timestamp),
		Reason:    domain.EraseUpstreamFailed,
		Debug: domain.DebugInfo{
			Detail:               "status=" + rec.Status,
			IdentificationMethod: domain.IdentifyUnknown,
		},
		IdentificationMethod: domain.IdentifyUnknown,
		Confidence:           50,
	}}
}
