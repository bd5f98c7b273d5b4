package domain

import (
	"fmt"
	"math/big"

	"mint-bot/errors"

	"github.com/ethereum/go-ethereum/core/types"
)

// TokenDecimals is the fixed-point precision of the deployed token.
const TokenDecimals = 18

var decimalFactor = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)

// MintRequest is what gets sent on chain. Build it with NewMintRequest only.
type MintRequest struct {
	Recipient string
	Quantity  int64
	Amount    *big.Int
}

// NewMintRequest refuses to build a request for an invalid recipient or a non-positive quantity.
func NewMintRequest(recipient string, quantity int64) (MintRequest, error) {
	if !IsValidAddress(recipient) {
		return MintRequest{}, fmt.Errorf("%w: %q", errors.ErrInvalidAddress, recipient)
	}
	if !IsPositiveInteger(float64(quantity)) {
		return MintRequest{}, fmt.Errorf("%w: %d", errors.ErrInvalidQuantity, quantity)
	}
	return MintRequest{
		Recipient: recipient,
		Quantity:  quantity,
		Amount:    ScaleAmount(quantity),
	}, nil
}

// ScaleAmount returns quantity * 10^TokenDecimals.
func ScaleAmount(quantity int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(quantity), decimalFactor)
}

// PendingMint is a submitted transaction that has not been observed on chain yet.
type PendingMint struct {
	Request MintRequest
	TxHash  string
	Nonce   uint64
	Tx      *types.Transaction
}

// Receipt is a confirmed inclusion.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}
