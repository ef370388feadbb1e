package classifier

import (
	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/sysaccount"
)

// identification is the swapper-identifier stage result.
type identification struct {
	swapper string
	method  domain.IdentificationMethod
}

// identifySwapper resolves the acting wallet via tiered escalation. Fee
// payers are frequently relayers or sponsor wallets in gasless patterns, so
// the fee-payer tier is accepted only when it actually owns a balance
// change; the signer tier follows, and owner analysis is the last resort,
// accepted only when it yields exactly one non-system candidate.
func identifySwapper(tx *Transaction, filter sysaccount.Filter) (identification, bool) {
	owners := make(map[string]bool) // owner -> has non-zero change
	for _, c := range tx.Changes {
		if c.RawDelta != 0 {
			owners[c.Owner] = true
		} else if _, seen := owners[c.Owner]; !seen {
			owners[c.Owner] = false
		}
	}

	// Tier 1: fee payer, if it owns any non-zero change.
	if tx.FeePayer != "" && owners[tx.FeePayer] {
		return identification{swapper: tx.FeePayer, method: domain.IdentifyFeePayer}, true
	}

	// Tier 2: primary signer, same test.
	if len(tx.Signers) > 0 {
		if signer := tx.Signers[0]; signer != "" && signer != tx.FeePayer && owners[signer] {
			return identification{swapper: signer, method: domain.IdentifySigner}, true
		}
	}

	// Tier 3: owner analysis. Every distinct owner with a non-zero change,
	// minus known system/pool/program accounts; accept only a unique result.
	var candidate string
	count := 0
	for owner, active := range owners {
		if !active {
			continue
		}
		if filter != nil && filter.IsSystemAccount(owner) {
			continue
		}
		candidate = owner
		count++
		if count > 1 {
			break
		}
	}
	if count == 1 {
		return identification{swapper: candidate, method: domain.IdentifyOwnerAnalysis}, true
	}

	return identification{method: domain.IdentifyUnknown}, false
}
