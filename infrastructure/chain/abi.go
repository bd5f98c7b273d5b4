package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	mintMethod      = "mint"
	balanceOfMethod = "balanceOf"
	decimalsMethod  = "decimals"
)

// mintableTokenABI covers the subset of an Ownable mintable ERC-20 the bot calls.
// mint(address,uint256) -> 0x40c10f19
const mintableTokenABI = `[
  {"type":"function","name":"mint","stateMutability":"nonpayable",
   "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"decimals","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

func parseMintableABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(mintableTokenABI))
}
