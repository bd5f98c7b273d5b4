package services

import (
	"context"
	stderrors "errors"
	"log/slog"

	"mint-bot/contract"
	"mint-bot/domain"
	"mint-bot/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CommandHandler turns one chat text into at most one reply.
type CommandHandler struct {
	log          *slog.Logger
	mintService  IMintService
	messenger    contract.IMessenger
	allowedChats []int64
}

// NewCommandHandler builds a handler. An empty allowedChats accepts every chat.
func NewCommandHandler(log *slog.Logger, mintService IMintService, messenger contract.IMessenger, allowedChats []int64) *CommandHandler {
	return &CommandHandler{
		log:          log,
		mintService:  mintService,
		messenger:    messenger,
		allowedChats: allowedChats,
	}
}

// Handle processes text received in chatID. It returns false when the text was
// ignored: not a /createToken command, or a chat outside the allow-list.
func (h *CommandHandler) Handle(ctx context.Context, chatID int64, messageID int, text string) bool {
	cmd, parseErr := domain.ParseCreateTokenCommand(chatID, messageID, text)
	if stderrors.Is(parseErr, errors.ErrNotCreateToken) {
		return false
	}
	if len(h.allowedChats) > 0 && !lo.Contains(h.allowedChats, chatID) {
		h.log.Debug("Ignoring command from chat outside allow-list", "chat_id", chatID)
		return false
	}

	log := h.log.With("invocation_id", uuid.NewString(), "chat_id", chatID)

	var (
		outcome domain.MintOutcome
		receipt domain.Receipt
		err     error
	)
	if parseErr != nil {
		outcome, err = domain.OutcomeInvalidInput, parseErr
	} else {
		outcome, receipt, err = h.mintService.CreateToken(ctx, cmd)
	}

	switch outcome {
	case domain.OutcomeMinted:
		log.Info("Token minted",
			"recipient", cmd.WalletAddress,
			"tx", receipt.TxHash,
			"block", receipt.BlockNumber)
	case domain.OutcomeInvalidInput:
		log.Debug("Invalid createToken input", "error", err)
	default:
		log.Error("Error minting token", "outcome", outcome, "error", err)
	}

	if err := h.messenger.Reply(ctx, chatID, messageID, outcome.Reply(cmd.WalletAddress)); err != nil {
		log.Error("Reply failed", "outcome", outcome, "error", err)
	}
	return true
}
