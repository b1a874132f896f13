package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSupplyOverflow      = errors.New("total supply overflow")
)

// Memory is an in-process TokenLedger used by tests and the demo command.
// It enforces no cap of its own; the gate owns the cap.
type Memory struct {
	balances map[common.Address]uint64
	supply   uint64
}

func NewMemory() *Memory {
	return &Memory{balances: make(map[common.Address]uint64)}
}

func (l *Memory) Mint(to common.Address, amount uint64) error {
	next, overflow := math.SafeAdd(l.supply, amount)
	if overflow {
		return fmt.Errorf("%w: supply %d, amount %d", ErrSupplyOverflow, l.supply, amount)
	}
	l.supply = next
	l.balances[to] += amount
	return nil
}

func (l *Memory) Burn(from common.Address, amount uint64) error {
	if l.balances[from] < amount {
		return fmt.Errorf("%w: %s holds %d, burn %d", ErrInsufficientBalance, from.Hex(), l.balances[from], amount)
	}
	l.balances[from] -= amount
	l.supply -= amount
	return nil
}

func (l *Memory) BalanceOf(addr common.Address) uint64 {
	return l.balances[addr]
}

func (l *Memory) TotalSupply() uint64 {
	return l.supply
}
