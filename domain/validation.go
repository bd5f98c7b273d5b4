package domain

import (
	"math"
	"strconv"
	"strings"

	"mint-bot/errors"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidAddress reports whether address is a canonical EVM address:
// "0x" followed by 40 hex digits. Mixed-case addresses must carry a valid
// EIP-55 checksum, all-lower and all-upper ones are accepted as is.
func IsValidAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return false
	}
	body := address[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	mixed, err := common.NewMixedcaseAddressFromString(address)
	return err == nil && mixed.ValidChecksum()
}

// IsPositiveInteger reports whether value is a finite whole number strictly greater than zero.
func IsPositiveInteger(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value > 0 && value == math.Trunc(value)
}

// ParseQuantity parses raw as a base-10 integer and checks it is positive.
// Unparseable text is reported as ErrInvalidQuantity, never as a panic.
func ParseQuantity(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.ErrInvalidQuantity
	}
	if !IsPositiveInteger(float64(n)) {
		return 0, errors.ErrInvalidQuantity
	}
	return n, nil
}
