package domain

import (
	"fmt"
	"regexp"
	"strings"

	"mint-bot/errors"
)

const createTokenArgs = 4

// createTokenPattern matches "/createToken" optionally followed by arguments.
// Telegram appends "@botname" to commands issued in group chats.
var createTokenPattern = regexp.MustCompile(`^/createToken(?:@\w+)?(?:\s+(.*))?$`)

// CreateTokenCommand is one inbound /createToken invocation.
// Quantity is kept raw: parsing it is part of validation.
type CreateTokenCommand struct {
	ChatID        int64
	MessageID     int
	TokenName     string
	TokenSymbol   string
	RawQuantity   string
	WalletAddress string
}

// ParseCreateTokenCommand splits "/createToken <name> <symbol> <quantity> <address>".
// The last three words are symbol, quantity and address, the name takes everything before them.
// Text that is not a /createToken command returns ErrNotCreateToken; a command with
// fewer than four arguments returns ErrInvalidInput.
func ParseCreateTokenCommand(chatID int64, messageID int, text string) (CreateTokenCommand, error) {
	match := createTokenPattern.FindStringSubmatch(text)
	if match == nil {
		return CreateTokenCommand{}, errors.ErrNotCreateToken
	}
	fields := strings.Fields(match[1])
	if len(fields) < createTokenArgs {
		return CreateTokenCommand{}, fmt.Errorf("%w: expected %d arguments, got %d", errors.ErrInvalidInput, createTokenArgs, len(fields))
	}
	n := len(fields)
	return CreateTokenCommand{
		ChatID:        chatID,
		MessageID:     messageID,
		TokenName:     strings.Join(fields[:n-3], " "),
		TokenSymbol:   fields[n-3],
		RawQuantity:   fields[n-2],
		WalletAddress: fields[n-1],
	}, nil
}
