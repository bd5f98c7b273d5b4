package chain

import (
	"context"
	"crypto/ecdsa"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"mint-bot/domain"
	"mint-bot/errors"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// boundContract is the part of *bind.BoundContract the client relies on.
type boundContract interface {
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
}

type waitMinedFunc func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

type Options struct {
	RPCURL              string
	PrivateKey          string
	ContractAddress     string
	ConfirmationTimeout time.Duration
}

// EVMClient holds one signing identity and one contract binding.
// It does not serialise Submit calls: callers sharing the signer must do it.
type EVMClient struct {
	log                 *slog.Logger
	contract            boundContract
	waitMined           waitMinedFunc
	auth                *bind.TransactOpts
	confirmationTimeout time.Duration
	closeFn             func()
}

// Dial connects to the RPC endpoint and binds the mintable token contract.
func Dial(ctx context.Context, log *slog.Logger, opts Options) (*EVMClient, error) {
	key, err := ParsePrivateKey(opts.PrivateKey)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(opts.ContractAddress) {
		return nil, fmt.Errorf("%w: contract %q", errors.ErrInvalidAddress, opts.ContractAddress)
	}

	rpc, err := ethclient.DialContext(ctx, opts.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", opts.RPCURL, err)
	}
	chainID, err := rpc.ChainID(ctx)
	if err != nil {
		rpc.Close()
		return nil, fmt.Errorf("chain id: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		rpc.Close()
		return nil, fmt.Errorf("transactor: %w", err)
	}
	parsed, err := parseMintableABI()
	if err != nil {
		rpc.Close()
		return nil, fmt.Errorf("abi: %w", err)
	}

	contract := bind.NewBoundContract(common.HexToAddress(opts.ContractAddress), parsed, rpc, rpc, rpc)
	wait := func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
		return bind.WaitMined(ctx, rpc, tx)
	}

	client := newEVMClient(log, contract, wait, auth, opts.ConfirmationTimeout, rpc.Close)
	if err := client.verifyDecimals(ctx); err != nil {
		client.Close()
		return nil, err
	}

	log.Info("Chain client ready",
		"chain_id", chainID.String(),
		"signer", client.Signer(),
		"contract", opts.ContractAddress)
	return client, nil
}

func newEVMClient(log *slog.Logger, contract boundContract, wait waitMinedFunc,
	auth *bind.TransactOpts, confirmationTimeout time.Duration, closeFn func()) *EVMClient {
	return &EVMClient{
		log:                 log,
		contract:            contract,
		waitMined:           wait,
		auth:                auth,
		confirmationTimeout: confirmationTimeout,
		closeFn:             closeFn,
	}
}

// ParsePrivateKey accepts a hex secp256k1 key with or without the 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPrivateKey, err)
	}
	return key, nil
}

// Signer returns the address transactions are sent from.
func (c *EVMClient) Signer() string {
	return c.auth.From.Hex()
}

// Submit sends mint(recipient, amount). Nonce and gas are left to the node.
func (c *EVMClient) Submit(ctx context.Context, req domain.MintRequest) (domain.PendingMint, error) {
	opts := *c.auth
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, mintMethod, common.HexToAddress(req.Recipient), req.Amount)
	if err != nil {
		return domain.PendingMint{}, fmt.Errorf("%w: %v", errors.ErrSubmissionRejected, err)
	}

	c.log.Info("Mint submitted",
		"tx", tx.Hash().Hex(),
		"nonce", tx.Nonce(),
		"recipient", req.Recipient,
		"amount", req.Amount.String())
	return domain.PendingMint{
		Request: req,
		TxHash:  tx.Hash().Hex(),
		Nonce:   tx.Nonce(),
		Tx:      tx,
	}, nil
}

// Await blocks until the transaction is included or the confirmation timeout elapses.
// A zero timeout waits as long as ctx allows.
func (c *EVMClient) Await(ctx context.Context, pending domain.PendingMint) (domain.Receipt, error) {
	if pending.Tx == nil {
		return domain.Receipt{}, fmt.Errorf("%w: no transaction to wait for", errors.ErrConfirmationFailed)
	}

	if c.confirmationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmationTimeout)
		defer cancel()
	}

	receipt, err := c.waitMined(ctx, pending.Tx)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return domain.Receipt{}, fmt.Errorf("%w: %s", errors.ErrConfirmationTimeout, pending.TxHash)
		}
		return domain.Receipt{}, fmt.Errorf("%w: %v", errors.ErrConfirmationFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return domain.Receipt{}, fmt.Errorf("%w: %w: %s", errors.ErrConfirmationFailed, errors.ErrTransactionReverted, pending.TxHash)
	}

	var block uint64
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}
	c.log.Info("Mint confirmed", "tx", pending.TxHash, "block", block, "gas_used", receipt.GasUsed)
	return domain.Receipt{
		TxHash:      pending.TxHash,
		BlockNumber: block,
		GasUsed:     receipt.GasUsed,
	}, nil
}

// BalanceOf reads the token balance of account in base units.
func (c *EVMClient) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, balanceOfMethod, common.HexToAddress(account)); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("balanceOf: unexpected %d outputs", len(out))
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf: unexpected output type %T", out[0])
	}
	return balance, nil
}

// Decimals reads the token's decimals().
func (c *EVMClient) Decimals(ctx context.Context) (uint8, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, decimalsMethod); err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("decimals: unexpected %d outputs", len(out))
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected output type %T", out[0])
	}
	return decimals, nil
}

// verifyDecimals fails when the contract does not use the decimals amounts are scaled by.
func (c *EVMClient) verifyDecimals(ctx context.Context) error {
	decimals, err := c.Decimals(ctx)
	if err != nil {
		return fmt.Errorf("decimals: %w", err)
	}
	if decimals != domain.TokenDecimals {
		return fmt.Errorf("%w: contract has %d, expected %d", errors.ErrDecimalsMismatch, decimals, domain.TokenDecimals)
	}
	return nil
}

func (c *EVMClient) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}
