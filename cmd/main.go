package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mint-bot/errors"
	"mint-bot/infrastructure/chain"
	"mint-bot/infrastructure/telegram"
	"mint-bot/internal"
	"mint-bot/runtime/workers"
	"mint-bot/services"

	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint-bot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until SIGINT/SIGTERM.
// Deferred cleanups run before main calls os.Exit.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig(".env")
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	allowedChats := config.AllowedChats()
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Chain client
	chainClient, err := chain.Dial(ctx, log, chain.Options{
		RPCURL:              config.RPCURL,
		PrivateKey:          config.PrivateKey,
		ContractAddress:     config.ContractAddress,
		ConfirmationTimeout: config.ConfirmationTimeout,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidPrivateKey) ||
			stderrors.Is(err, errors.ErrInvalidAddress) ||
			stderrors.Is(err, errors.ErrDecimalsMismatch) {
			return exitConfig, fmt.Errorf("chain client: %w", err)
		}
		return exitRuntime, fmt.Errorf("chain client: %w", err)
	}
	defer func() {
		log.Info("Closing RPC connection...")
		chainClient.Close()
	}()

	// 3. Telegram
	bot, err := telegram.NewBot(config.TelegramBotToken)
	if err != nil {
		return exitRuntime, fmt.Errorf("telegram bot: %w", err)
	}
	log.Info("Authorized on Telegram", "bot", bot.Self.UserName)

	// 4. Signer queue, under its own supervisor so it outlives the listener drain
	signer := workers.NewSignerWorker(log, chainClient, config.SignerQueueSize)
	signerCtx, stopSigner := context.WithCancel(context.Background())
	signerSup := workers.NewSupervisor(log, config.RestartInterval)
	var signerDone sync.WaitGroup
	signerDone.Add(1)
	go func() {
		defer signerDone.Done()
		signerSup.Add(signer).Run(signerCtx)
	}()

	// 5. Command listener
	mintService := services.NewMintService(log, signer)
	handler := services.NewCommandHandler(log, mintService, telegram.NewMessenger(bot), allowedChats)
	listener := telegram.NewListener(log, bot, handler, config.PollTimeout)

	log.Info("Listening for /createToken", "allowed_chats", len(allowedChats))
	workers.NewSupervisor(log, config.RestartInterval).Add(listener).Run(ctx)

	// 6. Listener drained: stop the signer
	log.Info("Shutting down gracefully...")
	stopSigner()
	signer.Close()
	signerDone.Wait()
	log.Info("Program stopped cleanly")

	return exitOK, nil
}
