// Package helius adapts the camelCase enhanced-transaction shape into the
// common pipeline input. Records arrive delta-oriented, so classification
// runs through the pattern variant: SOL movement is derived from wrapped-SOL
// transfer legs first, native balance change as fallback.
package helius

import "encoding/json"

// EnhancedTransaction is the provider-native record.
type EnhancedTransaction struct {
	Signature   string `json:"signature"`
	Timestamp   int64  `json:"timestamp"` // unix seconds
	Fee         int64  `json:"fee"`       // lamports
	FeePayer    string `json:"feePayer"`
	Source      string `json:"source,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	TransactionError *json.RawMessage `json:"transactionError"`

	TokenTransfers  []TokenTransfer  `json:"tokenTransfers"`
	NativeTransfers []NativeTransfer `json:"nativeTransfers"`
	AccountData     []AccountData    `json:"accountData"`
}

// Failed reports whether the upstream execution errored.
func (tx *EnhancedTransaction) Failed() bool {
	return tx.TransactionError != nil && string(*tx.TransactionError) != "null"
}

// TokenTransfer is one token movement between user accounts.
type TokenTransfer struct {
	FromUserAccount  string  `json:"fromUserAccount"`
	ToUserAccount    string  `json:"toUserAccount"`
	FromTokenAccount string  `json:"fromTokenAccount,omitempty"`
	ToTokenAccount   string  `json:"toTokenAccount,omitempty"`
	Mint             string  `json:"mint"`
	TokenAmount      float64 `json:"tokenAmount"` // decimal-normalized
}

// NativeTransfer is one lamport movement between accounts.
type NativeTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Amount          int64  `json:"amount"` // lamports
}

// AccountData is the per-account balance summary.
type AccountData struct {
	Account             string               `json:"account"`
	NativeBalanceChange int64                `json:"nativeBalanceChange"` // lamports
	TokenBalanceChanges []TokenBalanceChange `json:"tokenBalanceChanges"`
}

// TokenBalanceChange is one signed token-account change.
type TokenBalanceChange struct {
	UserAccount    string         `json:"userAccount"`
	TokenAccount   string         `json:"tokenAccount,omitempty"`
	Mint           string         `json:"mint"`
	RawTokenAmount RawTokenAmount `json:"rawTokenAmount"`
}

// RawTokenAmount carries the raw amount as a decimal string plus its scale.
type RawTokenAmount struct {
	TokenAmount string `json:"tokenAmount"`
	Decimals    uint8  `json:"decimals"`
}

// ParseTransaction decodes one provider record.
func ParseTransaction(data []byte) (*EnhancedTransaction, error) {
	var tx EnhancedTransaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
