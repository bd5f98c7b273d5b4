package services

import (
	"fmt"

	"mint-bot/domain"
	"mint-bot/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("evm_address", func(fl validator.FieldLevel) bool {
		return domain.IsValidAddress(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register evm_address validation: %v", err))
	}
	return v
}

type CreateTokenRequest struct {
	TokenName     string `validate:"required"`
	TokenSymbol   string `validate:"required"`
	Quantity      int64  `validate:"gt=0"`
	WalletAddress string `validate:"required,evm_address"`
}

// ValidateCreateToken turns a parsed command into a MintRequest.
// Every rejection wraps ErrInvalidInput.
func ValidateCreateToken(cmd domain.CreateTokenCommand) (domain.MintRequest, error) {
	quantity, err := domain.ParseQuantity(cmd.RawQuantity)
	if err != nil {
		return domain.MintRequest{}, fmt.Errorf("%w: %w: %q", errors.ErrInvalidInput, err, cmd.RawQuantity)
	}

	valReq := CreateTokenRequest{
		TokenName:     cmd.TokenName,
		TokenSymbol:   cmd.TokenSymbol,
		Quantity:      quantity,
		WalletAddress: cmd.WalletAddress,
	}
	if err := validate.Struct(valReq); err != nil {
		return domain.MintRequest{}, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	mint, err := domain.NewMintRequest(cmd.WalletAddress, quantity)
	if err != nil {
		return domain.MintRequest{}, fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)
	}
	return mint, nil
}
