package services

import (
	"context"
	stderrors "errors"
	"log/slog"

	"mint-bot/contract"
	"mint-bot/domain"
	"mint-bot/errors"
)

type IMintService interface {
	CreateToken(ctx context.Context, cmd domain.CreateTokenCommand) (domain.MintOutcome, domain.Receipt, error)
}

type MintService struct {
	log    *slog.Logger
	minter contract.IMinter
}

func NewMintService(log *slog.Logger, minter contract.IMinter) IMintService {
	return &MintService{log: log, minter: minter}
}

// CreateToken validates the command and, only if it is valid, mints on chain.
// The returned outcome is always set, the error only when the outcome is not OutcomeMinted.
func (s *MintService) CreateToken(ctx context.Context, cmd domain.CreateTokenCommand) (domain.MintOutcome, domain.Receipt, error) {
	// 1. Validate before touching the chain
	req, err := ValidateCreateToken(cmd)
	if err != nil {
		return domain.OutcomeInvalidInput, domain.Receipt{}, err
	}

	// 2. Token name and symbol are not part of the on-chain call
	s.log.Debug("Minting",
		"token_name", cmd.TokenName,
		"token_symbol", cmd.TokenSymbol,
		"recipient", req.Recipient,
		"quantity", req.Quantity)

	// 3. Submit and wait for inclusion
	receipt, err := s.minter.Mint(ctx, req)
	if err != nil {
		return OutcomeOf(err), domain.Receipt{}, err
	}
	return domain.OutcomeMinted, receipt, nil
}

// OutcomeOf classifies an error returned along the mint path.
func OutcomeOf(err error) domain.MintOutcome {
	switch {
	case err == nil:
		return domain.OutcomeMinted
	case stderrors.Is(err, errors.ErrInvalidInput),
		stderrors.Is(err, errors.ErrInvalidAddress),
		stderrors.Is(err, errors.ErrInvalidQuantity):
		return domain.OutcomeInvalidInput
	case stderrors.Is(err, errors.ErrConfirmationTimeout):
		return domain.OutcomeConfirmationTimeout
	case stderrors.Is(err, errors.ErrConfirmationFailed):
		return domain.OutcomeConfirmationFailed
	default:
		// Rejected submissions, a stopped signer and unknown errors all mean nothing was confirmed.
		return domain.OutcomeSubmissionRejected
	}
}
