package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_RPC_URL points at a disposable dev chain (anvil, hardhat). Empty skips the suite.
	RPCURL          string `envconfig:"E2E_RPC_URL"`
	PrivateKey      string `envconfig:"E2E_PRIVATE_KEY"`
	ContractAddress string `envconfig:"E2E_CONTRACT_ADDRESS"`
	Recipient       string `envconfig:"E2E_RECIPIENT" default:"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
