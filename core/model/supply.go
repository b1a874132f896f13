package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
)

// CheckCapacity fails when minting amount on top of totalSupply would pass
// maxSupply. Applies to every mint path, admin mint included.
func CheckCapacity(totalSupply, amount, maxSupply uint64) error {
	next, overflow := math.SafeAdd(totalSupply, amount)
	if overflow || next > maxSupply {
		return fmt.Errorf("%w: supply %d, requested %d, max %d",
			ErrSupplyExceeded, totalSupply, amount, maxSupply)
	}
	return nil
}
