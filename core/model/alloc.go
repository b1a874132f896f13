package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// AllocationBook tracks cumulative minted amounts per address for one phase.
// Entries only ever grow; burns happen on the external ledger and never
// reduce a counter here.
type AllocationBook struct {
	limit  uint64
	minted map[common.Address]uint64
}

func NewAllocationBook(limit uint64) *AllocationBook {
	return &AllocationBook{
		limit:  limit,
		minted: make(map[common.Address]uint64),
	}
}

// Reserve checks that amount fits under the per-address cap and returns the
// cumulative value a later Commit should record. It writes nothing.
func (b *AllocationBook) Reserve(addr common.Address, amount uint64) (uint64, error) {
	current := b.minted[addr]
	next, overflow := math.SafeAdd(current, amount)
	if overflow || next > b.limit {
		return 0, fmt.Errorf("%w: %s minted %d of %d, requested %d",
			ErrAllocationExceeded, addr.Hex(), current, b.limit, amount)
	}
	return next, nil
}

// Commit records a cumulative value previously returned by Reserve.
func (b *AllocationBook) Commit(addr common.Address, cumulative uint64) {
	b.minted[addr] = cumulative
}

func (b *AllocationBook) Minted(addr common.Address) uint64 {
	return b.minted[addr]
}

func (b *AllocationBook) Remaining(addr common.Address) uint64 {
	current := b.minted[addr]
	if current >= b.limit {
		return 0
	}
	return b.limit - current
}

// Total sums every entry in the book.
func (b *AllocationBook) Total() uint64 {
	var sum uint64
	for _, v := range b.minted {
		sum += v
	}
	return sum
}
