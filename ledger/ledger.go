package ledger

import "github.com/ethereum/go-ethereum/common"

// TokenLedger is the external ledger the gate drives. The gate assumes each
// call is atomic and that TotalSupply reflects every prior successful Mint
// and Burn before the next call is evaluated.
type TokenLedger interface {
	Mint(to common.Address, amount uint64) error
	Burn(from common.Address, amount uint64) error
	BalanceOf(addr common.Address) uint64
	TotalSupply() uint64
}
