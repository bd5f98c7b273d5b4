package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mint-bot/infrastructure/chain"
	"mint-bot/runtime/workers"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseChainSuite struct {
	suite.Suite
	Config Config
	Log    *slog.Logger
	Client *chain.EVMClient
	Signer *workers.SignerWorker

	stopSigner context.CancelFunc
	signerDone chan struct{}
}

// SetupSuite loads the environment configuration and dials the dev chain.
func (s *BaseChainSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.RPCURL == "" {
		s.T().Skip("E2E_RPC_URL not set")
	}
	s.Log = logs.GetLoggerFromLevel(slog.LevelDebug)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Client, err = chain.Dial(ctx, s.Log, chain.Options{
		RPCURL:              s.Config.RPCURL,
		PrivateKey:          s.Config.PrivateKey,
		ContractAddress:     s.Config.ContractAddress,
		ConfirmationTimeout: 30 * time.Second,
	})
	s.Require().NoError(err, "Failed to connect to "+s.Config.RPCURL)

	s.Signer = workers.NewSignerWorker(s.Log, s.Client, 8)
	signerCtx, stop := context.WithCancel(context.Background())
	s.stopSigner = stop
	s.signerDone = make(chan struct{})
	go func() {
		defer close(s.signerDone)
		_ = s.Signer.Run(signerCtx)
	}()
}

func (s *BaseChainSuite) TearDownSuite() {
	if s.stopSigner != nil {
		s.stopSigner()
		s.Signer.Close()
		<-s.signerDone
	}
	if s.Client != nil {
		s.Client.Close()
	}
}

// Step prints a colorized header and runs fn with a bounded context.
func (s *BaseChainSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	fn(ctx)
}
