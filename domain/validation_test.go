package domain

import (
	"math"
	"strings"
	"testing"

	"mint-bot/errors"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// EIP-55 reference vectors.
var checksummed = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)

	for _, a := range checksummed {
		req.True(IsValidAddress(a), a)
		req.True(IsValidAddress(strings.ToLower(a)), "lower case skips checksum")
		req.True(IsValidAddress("0x"+strings.ToUpper(a[2:])), "upper case skips checksum")
	}

	for _, a := range []string{
		"",
		"0x",
		"notAnAddress",
		"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",   // no prefix
		"0X5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", // upper-case prefix
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe",  // 39 digits
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedd", // 41 digits
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeg",  // not hex
		"0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",  // wrong checksum
		" 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	} {
		req.False(IsValidAddress(a), a)
	}
}

func TestIsValidAddress_SingleCharacterMutation(t *testing.T) {
	req := require.New(t)
	alphabet := "0123456789abcdefABCDEFxyzXYZ -"

	for _, a := range checksummed {
		total, rejected := 0, 0
		for i := 0; i < len(a); i++ {
			for _, c := range []byte(alphabet) {
				if c == a[i] {
					continue
				}
				mutated := []byte(a)
				mutated[i] = c
				total++
				if !IsValidAddress(string(mutated)) {
					rejected++
				}
			}
		}
		req.Greater(float64(rejected)/float64(total), 0.99, a)
	}
}

func TestIsValidAddress_GeneratedAccounts(t *testing.T) {
	req := require.New(t)
	for i := 0; i < 20; i++ {
		key, err := crypto.GenerateKey()
		req.NoError(err)
		a := crypto.PubkeyToAddress(key.PublicKey).Hex()

		req.True(IsValidAddress(a), a)
		req.True(IsValidAddress(strings.ToLower(a)), a)
	}
}

func TestIsPositiveInteger(t *testing.T) {
	req := require.New(t)

	req.True(IsPositiveInteger(1))
	req.True(IsPositiveInteger(10))
	req.True(IsPositiveInteger(1e15))

	req.False(IsPositiveInteger(0))
	req.False(IsPositiveInteger(-5))
	req.False(IsPositiveInteger(3.5))
	req.False(IsPositiveInteger(0.1))
	req.False(IsPositiveInteger(math.NaN()))
	req.False(IsPositiveInteger(math.Inf(1)))
}

func TestParseQuantity(t *testing.T) {
	req := require.New(t)

	n, err := ParseQuantity("10")
	req.NoError(err)
	req.Equal(int64(10), n)

	for _, raw := range []string{"", "0", "-3", "3.5", "10abc", "ten", "1e3", "99999999999999999999"} {
		_, err := ParseQuantity(raw)
		req.ErrorIs(err, errors.ErrInvalidQuantity, raw)
	}
}

func TestValidationIsPure(t *testing.T) {
	req := require.New(t)
	for i := 0; i < 3; i++ {
		req.True(IsValidAddress(checksummed[0]))
		req.False(IsValidAddress("notAnAddress"))
		req.False(IsPositiveInteger(3.5))
		req.True(IsPositiveInteger(7))
	}
}
