package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mint-bot/errors"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	TelegramBotToken    string        `env:"TELEGRAM_BOT_TOKEN,required=true" validate:"required"`
	RPCURL              string        `env:"RPC_URL,required=true" validate:"required,url"`
	PrivateKey          string        `env:"PRIVATE_KEY,required=true" validate:"required"`
	ContractAddress     string        `env:"CONTRACT_ADDRESS,required=true" validate:"required,eth_addr"`
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	ConfirmationTimeout time.Duration `env:"CONFIRMATION_TIMEOUT,default=5m" validate:"gte=0"`
	SignerQueueSize     int           `env:"SIGNER_QUEUE_SIZE,default=16" validate:"gte=0"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0"`
	PollTimeout         int           `env:"POLL_TIMEOUT,default=60" validate:"gte=0"`
	AllowedChatIDs      string        `env:"ALLOWED_CHAT_IDS"`

	allowedChats []int64
}

// LoadConfig reads the given dotenv files when they exist, then the process environment.
// Variables already set in the environment win over the files.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	existing := lo.Filter(dotenvFiles, func(path string, _ int) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
		}
	}

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	allowedChats, err := ParseChatIDs(config.AllowedChatIDs)
	if err != nil {
		return Config{}, err
	}
	config.allowedChats = allowedChats
	return config, nil
}

// AllowedChats returns the parsed ALLOWED_CHAT_IDS. Empty means every chat.
func (c Config) AllowedChats() []int64 {
	return c.allowedChats
}

// ParseChatIDs parses a comma separated list of Telegram chat ids. Blank entries are skipped.
func ParseChatIDs(raw string) ([]int64, error) {
	fields := lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errors.ErrInvalidChatID, f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
