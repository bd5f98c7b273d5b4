package domain

import (
	"math/big"
	"testing"

	"mint-bot/errors"

	"github.com/stretchr/testify/require"
)

func TestScaleAmount(t *testing.T) {
	req := require.New(t)

	expected, ok := new(big.Int).SetString("10000000000000000000", 10)
	req.True(ok)
	req.Equal(0, expected.Cmp(ScaleAmount(10)))
	req.Equal("1000000000000000000", ScaleAmount(1).String())
}

func TestNewMintRequest(t *testing.T) {
	t.Run("should scale the quantity", func(t *testing.T) {
		req := require.New(t)

		mint, err := NewMintRequest(checksummed[0], 10)

		req.NoError(err)
		req.Equal(checksummed[0], mint.Recipient)
		req.Equal(int64(10), mint.Quantity)
		req.Equal(0, ScaleAmount(10).Cmp(mint.Amount))
	})

	t.Run("should refuse an invalid recipient", func(t *testing.T) {
		_, err := NewMintRequest("0xValidAddr", 10)
		require.ErrorIs(t, err, errors.ErrInvalidAddress)
	})

	t.Run("should refuse a non-positive quantity", func(t *testing.T) {
		_, err := NewMintRequest(checksummed[0], 0)
		require.ErrorIs(t, err, errors.ErrInvalidQuantity)

		_, err = NewMintRequest(checksummed[0], -3)
		require.ErrorIs(t, err, errors.ErrInvalidQuantity)
	})
}

func TestMintOutcome_Reply(t *testing.T) {
	req := require.New(t)
	address := checksummed[1]

	req.Equal("Token created and sent to "+address+"!", OutcomeMinted.Reply(address))
	req.Equal(InvalidInputReply, OutcomeInvalidInput.Reply(address))
	req.Equal(FailureReply, OutcomeSubmissionRejected.Reply(address))
	req.Equal(FailureReply, OutcomeConfirmationFailed.Reply(address))
	req.Equal(FailureReply, OutcomeConfirmationTimeout.Reply(address))
}
