package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Messenger answers in the originating chat, threaded under the command message.
type Messenger struct {
	bot sender
}

func NewMessenger(bot sender) *Messenger {
	return &Messenger{bot: bot}
}

func (m *Messenger) Reply(ctx context.Context, chatID int64, replyTo int, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	_, err := m.bot.Send(msg)
	return err
}

// NewBot authenticates against the Bot API.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPI(token)
}
