// Package sysaccount decides whether an address is a system, pool, or
// program account and therefore not a candidate swapper wallet. The check is
// a known-address set plus an extensible heuristic chain; callers may
// register additional heuristics without touching the core set.
package sysaccount

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Well-known program and infrastructure addresses. Anything in this set can
// never be a swapper.
var knownPrograms = map[string]struct{}{
	"11111111111111111111111111111111":             {}, // system program
	"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA":  {}, // SPL token
	"TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb":  {}, // token-2022
	"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL": {}, // associated token account
	"ComputeBudget111111111111111111111111111111":  {},
	"SysvarRent111111111111111111111111111111111":  {},
	"So11111111111111111111111111111111111111112":  {}, // WSOL mint
	"675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8": {}, // Raydium AMM v4
	"6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P":  {}, // pump.fun
	"JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4":  {}, // Jupiter v6
	"whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc":  {}, // Orca Whirlpool
	"5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1": {}, // Raydium authority
}

// Heuristic is an extension point for additional "is this a system account"
// checks beyond the known-address set.
type Heuristic interface {
	// Matches reports whether addr looks like a system/pool/program account.
	Matches(addr string) bool
}

// Filter answers whether an address should be excluded from swapper
// candidacy.
type Filter interface {
	IsSystemAccount(addr string) bool
}

// SetFilter is the default Filter: known-address set plus heuristics.
type SetFilter struct {
	known      map[string]struct{}
	heuristics []Heuristic
}

// New returns a SetFilter seeded with the well-known program set and the
// off-curve heuristic.
func New() *SetFilter {
	return &SetFilter{
		known:      knownPrograms,
		heuristics: []Heuristic{OffCurveHeuristic{}},
	}
}

// WithHeuristic appends an additional heuristic and returns the filter.
func (f *SetFilter) WithHeuristic(h Heuristic) *SetFilter {
	f.heuristics = append(f.heuristics, h)
	return f
}

// AddKnown registers additional known system addresses.
func (f *SetFilter) AddKnown(addrs ...string) {
	if len(f.known) == len(knownPrograms) {
		// copy-on-write so the package-level set stays pristine
		merged := make(map[string]struct{}, len(knownPrograms)+len(addrs))
		for k := range f.known {
			merged[k] = struct{}{}
		}
		f.known = merged
	}
	for _, a := range addrs {
		f.known[a] = struct{}{}
	}
}

// IsSystemAccount implements Filter.
func (f *SetFilter) IsSystemAccount(addr string) bool {
	if addr == "" {
		return true
	}
	if _, ok := f.known[addr]; ok {
		return true
	}
	for _, h := range f.heuristics {
		if h.Matches(addr) {
			return true
		}
	}
	return false
}

var _ Filter = (*SetFilter)(nil)

// OffCurveHeuristic flags program-derived addresses. PDAs are constructed to
// be off the ed25519 curve, so an address whose bytes do not decode to a
// curve point cannot be a wallet keypair; it belongs to a pool, vault, or
// program authority.
type OffCurveHeuristic struct{}

// Matches implements Heuristic.
func (OffCurveHeuristic) Matches(addr string) bool {
	raw, err := base58.Decode(addr)
	if err != nil || len(raw) != 32 {
		// Not a valid pubkey at all; treat as non-wallet.
		return true
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err != nil
}
