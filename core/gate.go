package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"phased-mint-gate/core/model"
	"phased-mint-gate/ledger"
)

// Gate is the mint facade. Every mutation of phase, whitelist, role and
// allocation state funnels through its methods, and each method runs its
// checks in a fixed order with no writes until all checks pass, so a failed
// call leaves no partial effect.
//
// Time is an explicit input: phase-sensitive methods take `now` (unix
// seconds) instead of reading a clock, and the caller must supply
// non-decreasing values.
type Gate struct {
	ledger ledger.TokenLedger
	roles  *model.RoleRegistry

	clock   model.PhaseClock
	root    common.Hash
	rootSet bool
	ended   bool

	whitelistBook *model.AllocationBook
	publicBook    *model.AllocationBook

	feed []model.Event
}

func NewGate(l ledger.TokenLedger, superAdmins ...common.Address) *Gate {
	return &Gate{
		ledger:        l,
		roles:         model.NewRoleRegistry(superAdmins...),
		whitelistBook: model.NewAllocationBook(model.WhitelistCap),
		publicBook:    model.NewAllocationBook(model.PublicCap),
	}
}

func (g *Gate) emit(ev model.Event) {
	g.feed = append(g.feed, ev)
	logrus.Infof("event %s %+v", ev.Name(), ev)
}

// Events returns every notification emitted so far, oldest first.
func (g *Gate) Events() []model.Event {
	return g.feed
}

func (g *Gate) requireAdmin(caller common.Address) error {
	if !g.roles.IsAdmin(caller) {
		return fmt.Errorf("%w: %s lacks admin role", model.ErrUnauthorized, caller.Hex())
	}
	return nil
}

// SetWhitelistRoot replaces the whitelist root. Admin only; the root may be
// replaced any number of times, already-minted allocations are unaffected.
func (g *Gate) SetWhitelistRoot(caller common.Address, root common.Hash) error {
	if err := g.requireAdmin(caller); err != nil {
		return err
	}
	g.root = root
	g.rootSet = true
	g.emit(model.RootUpdatedEvent{Root: root})
	return nil
}

func (g *Gate) WhitelistRoot() (common.Hash, bool) {
	return g.root, g.rootSet
}

// StartWhitelistPhase records the whitelist window start. One-way; requires
// a root to already be set so proofs can verify from the first second.
func (g *Gate) StartWhitelistPhase(caller common.Address, now uint64) error {
	if err := g.requireAdmin(caller); err != nil {
		return err
	}
	if !g.rootSet {
		return fmt.Errorf("%w: whitelist root not set", model.ErrPhaseState)
	}
	if err := g.clock.StartWhitelist(now); err != nil {
		return err
	}
	g.emit(model.WhitelistPhaseStartedEvent{Time: now})
	return nil
}

// StartPublicPhase records the public window start. One-way; legal only
// after the whitelist window has fully elapsed.
func (g *Gate) StartPublicPhase(caller common.Address, now uint64) error {
	if err := g.requireAdmin(caller); err != nil {
		return err
	}
	if err := g.clock.StartPublic(now); err != nil {
		return err
	}
	g.emit(model.PublicPhaseStartedEvent{Time: now})
	return nil
}

func (g *Gate) CurrentPhase(now uint64) model.Phase {
	return model.CurrentPhase(now, g.clock.WhitelistStart, g.clock.PublicStart, model.PhaseDuration, g.ended)
}

// WhitelistMint mints during the whitelist window. Check order: terminal
// flag, phase, amount, allocation, supply capacity, proof. Each failure is a
// hard stop before any write.
func (g *Gate) WhitelistMint(caller common.Address, now uint64, amount uint64, proof []common.Hash) error {
	if g.ended {
		return fmt.Errorf("%w: whitelist mint rejected", model.ErrMintEnded)
	}
	if phase := g.CurrentPhase(now); phase != model.PhaseWhitelist {
		return fmt.Errorf("%w: whitelist mint in phase %s", model.ErrPhaseState, phase)
	}
	if amount == 0 {
		return fmt.Errorf("%w: zero amount", model.ErrBadInput)
	}
	next, err := g.whitelistBook.Reserve(caller, amount)
	if err != nil {
		return err
	}
	if err := model.CheckCapacity(g.ledger.TotalSupply(), amount, model.MaxSupply); err != nil {
		return err
	}
	if !model.VerifyProof(proof, g.root, caller) {
		logrus.Warnf("whitelist mint: bad proof from %s", caller.Hex())
		return fmt.Errorf("%w: %s is not a whitelist member", model.ErrInvalidProof, caller.Hex())
	}

	if err := g.ledger.Mint(caller, amount); err != nil {
		return err
	}
	g.whitelistBook.Commit(caller, next)
	g.emit(model.WhitelistMintEvent{Minter: caller, Amount: amount})
	return nil
}

// PublicMint mints during the public window. Same ordering as WhitelistMint
// minus the proof; the public allocation cap applies.
func (g *Gate) PublicMint(caller common.Address, now uint64, amount uint64) error {
	if g.ended {
		return fmt.Errorf("%w: public mint rejected", model.ErrMintEnded)
	}
	if phase := g.CurrentPhase(now); phase != model.PhasePublic {
		return fmt.Errorf("%w: public mint in phase %s", model.ErrPhaseState, phase)
	}
	if amount == 0 {
		return fmt.Errorf("%w: zero amount", model.ErrBadInput)
	}
	next, err := g.publicBook.Reserve(caller, amount)
	if err != nil {
		return err
	}
	if err := model.CheckCapacity(g.ledger.TotalSupply(), amount, model.MaxSupply); err != nil {
		return err
	}

	if err := g.ledger.Mint(caller, amount); err != nil {
		return err
	}
	g.publicBook.Commit(caller, next)
	g.emit(model.PublicMintEvent{Minter: caller, Amount: amount})
	return nil
}

// AdminMint is the unrestricted administrative path: no phase check, no
// allocation cap, no proof. The global supply cap and the terminal flag
// still apply.
func (g *Gate) AdminMint(caller, to common.Address, amount uint64) error {
	if err := g.requireAdmin(caller); err != nil {
		return err
	}
	if g.ended {
		return fmt.Errorf("%w: admin mint rejected", model.ErrMintEnded)
	}
	if amount == 0 {
		return fmt.Errorf("%w: zero amount", model.ErrBadInput)
	}
	if err := model.CheckCapacity(g.ledger.TotalSupply(), amount, model.MaxSupply); err != nil {
		return err
	}
	if err := g.ledger.Mint(to, amount); err != nil {
		return err
	}
	logrus.Infof("admin mint %d to %s by %s", amount, to.Hex(), caller.Hex())
	return nil
}

// EndMintPermanently flips the terminal flag once both windows have closed.
// It burns nothing and touches no balance; it only forecloses every future
// mint path, admin mint included.
func (g *Gate) EndMintPermanently(caller common.Address, now uint64) error {
	if err := g.requireAdmin(caller); err != nil {
		return err
	}
	if g.ended {
		return fmt.Errorf("%w: already ended", model.ErrMintEnded)
	}
	if phase := g.CurrentPhase(now); phase != model.PhaseEnded {
		return fmt.Errorf("%w: cannot end mint in phase %s", model.ErrPhaseState, phase)
	}

	total := g.ledger.TotalSupply()
	var unissued uint64
	if total < model.MaxSupply {
		unissued = model.MaxSupply - total
	}
	g.ended = true
	g.emit(model.MintPermanentlyEndedEvent{Remaining: unissued})
	return nil
}

func (g *Gate) MintEnded() bool {
	return g.ended
}

func (g *Gate) AddAdmin(caller, addr common.Address) error {
	if err := g.roles.AddAdmin(caller, addr); err != nil {
		return err
	}
	g.emit(model.AdminAddedEvent{Addr: addr})
	return nil
}

func (g *Gate) RemoveAdmin(caller, addr common.Address) error {
	if err := g.roles.RemoveAdmin(caller, addr); err != nil {
		return err
	}
	g.emit(model.AdminRemovedEvent{Addr: addr})
	return nil
}

func (g *Gate) IsAdmin(addr common.Address) bool {
	return g.roles.IsAdmin(addr)
}

// RemainingSupply is the amount still mintable: zero once the terminal flag
// is set, otherwise max supply minus the ledger's total.
func (g *Gate) RemainingSupply() uint64 {
	if g.ended {
		return 0
	}
	total := g.ledger.TotalSupply()
	if total >= model.MaxSupply {
		return 0
	}
	return model.MaxSupply - total
}

func (g *Gate) WhitelistRemaining(addr common.Address) uint64 {
	return g.whitelistBook.Remaining(addr)
}

func (g *Gate) PublicRemaining(addr common.Address) uint64 {
	return g.publicBook.Remaining(addr)
}

func (g *Gate) WhitelistMinted(addr common.Address) uint64 {
	return g.whitelistBook.Minted(addr)
}

func (g *Gate) PublicMinted(addr common.Address) uint64 {
	return g.publicBook.Minted(addr)
}

// VerifyWhitelist is a read-only fan-out of proof verification over parallel
// slices. Fails fast on a length mismatch.
func (g *Gate) VerifyWhitelist(accounts []common.Address, proofs [][]common.Hash) ([]bool, error) {
	if len(accounts) != len(proofs) {
		return nil, fmt.Errorf("%w: %d accounts against %d proofs", model.ErrBadInput, len(accounts), len(proofs))
	}
	results := make([]bool, len(accounts))
	for i := range accounts {
		results[i] = model.VerifyProof(proofs[i], g.root, accounts[i])
	}
	return results, nil
}
