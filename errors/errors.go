package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrNotCreateToken  = fmt.Errorf("not a createToken command")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidAddress  = fmt.Errorf("invalid wallet address")
	ErrInvalidQuantity = fmt.Errorf("quantity must be a positive integer")

	ErrSubmissionRejected  = fmt.Errorf("transaction submission rejected")
	ErrConfirmationFailed  = fmt.Errorf("transaction confirmation failed")
	ErrConfirmationTimeout = fmt.Errorf("transaction confirmation timed out")
	ErrTransactionReverted = fmt.Errorf("transaction reverted")
	ErrSignerStopped       = fmt.Errorf("signer queue stopped")

	ErrInvalidConfig     = fmt.Errorf("invalid configuration")
	ErrInvalidPrivateKey = fmt.Errorf("invalid private key")
	ErrInvalidChatID     = fmt.Errorf("invalid chat id")
	ErrDecimalsMismatch  = fmt.Errorf("token decimals mismatch")
)
