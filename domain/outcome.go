package domain

import "fmt"

type MintOutcome string

const (
	OutcomeMinted              MintOutcome = "minted"
	OutcomeInvalidInput        MintOutcome = "invalid_input"
	OutcomeSubmissionRejected  MintOutcome = "submission_rejected"
	OutcomeConfirmationFailed  MintOutcome = "confirmation_failed"
	OutcomeConfirmationTimeout MintOutcome = "confirmation_timeout"
)

const (
	InvalidInputReply = "Invalid input! Please ensure the wallet address is valid and quantity is a positive integer."
	FailureReply      = "An error occurred while creating the token. Please try again later."
)

func SuccessReply(address string) string {
	return fmt.Sprintf("Token created and sent to %s!", address)
}

// Reply returns the chat text for an outcome. Every chain failure shares the same text.
func (o MintOutcome) Reply(address string) string {
	switch o {
	case OutcomeMinted:
		return SuccessReply(address)
	case OutcomeInvalidInput:
		return InvalidInputReply
	default:
		return FailureReply
	}
}
