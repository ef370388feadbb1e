// Package shyft adapts the snake_case parsed-transaction shape into the
// common pipeline input. Records carry per-owner token balance changes plus
// optional action records describing the swap legs explicitly.
package shyft

import "encoding/json"

// Transaction is the provider-native record.
type Transaction struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"` // unix seconds
	Status    string `json:"status"`

	// Type is the upstream transaction-type label. It is documented as
	// unreliable and must never gate classification; it is logged at most.
	Type string `json:"type,omitempty"`

	Fee      int64    `json:"fee"` // lamports
	FeePayer string   `json:"fee_payer"`
	Signers  []string `json:"signers"`

	Protocol *Protocol `json:"protocol,omitempty"`

	TokenBalanceChanges []TokenBalanceChange `json:"token_balance_changes"`
	Actions             []Action             `json:"actions"`
}

// Protocol identifies the program the provider attributed the swap to.
type Protocol struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// TokenBalanceChange is one signed change to one token account.
type TokenBalanceChange struct {
	Address      string `json:"address,omitempty"` // token account
	Owner        string `json:"owner"`
	Mint         string `json:"mint"`
	ChangeAmount int64  `json:"change_amount"` // smallest units
	PreBalance   int64  `json:"pre_balance"`
	PostBalance  int64  `json:"post_balance"`
	Decimals     uint8  `json:"decimals"`
}

// Action is one parsed instruction-level record.
type Action struct {
	Type string     `json:"type"`
	Info ActionInfo `json:"info"`
}

// ActionInfo carries the fields of swap-shaped actions; other action types
// leave TokensSwapped nil.
type ActionInfo struct {
	Swapper       string         `json:"swapper,omitempty"`
	TokensSwapped *TokensSwapped `json:"tokens_swapped,omitempty"`
}

// TokensSwapped is the explicit in/out pair of a swap action.
type TokensSwapped struct {
	In  SwapLeg `json:"in"`
	Out SwapLeg `json:"out"`
}

// SwapLeg is one side of a swap action.
type SwapLeg struct {
	TokenAddress string `json:"token_address"`
	Symbol       string `json:"symbol,omitempty"`
	AmountRaw    int64  `json:"amount_raw"`
	Decimals     uint8  `json:"decimals"`
}

// ParseTransaction decodes one provider record.
func ParseTransaction(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
