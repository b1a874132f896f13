package model

import "github.com/ethereum/go-ethereum/common"

// Event is a notification recorded after a successful state mutation,
// exactly one per triggering call.
type Event interface {
	Name() string
	Topic() string
}

var (
	TopicRootUpdated           = "0x" + Keccak256("RootUpdated(bytes32)")
	TopicWhitelistPhaseStarted = "0x" + Keccak256("WhitelistPhaseStarted(uint64)")
	TopicPublicPhaseStarted    = "0x" + Keccak256("PublicPhaseStarted(uint64)")
	TopicMintPermanentlyEnded  = "0x" + Keccak256("MintPermanentlyEnded(uint64)")
	TopicWhitelistMint         = "0x" + Keccak256("WhitelistMint(address,uint64)")
	TopicPublicMint            = "0x" + Keccak256("PublicMint(address,uint64)")
	TopicAdminAdded            = "0x" + Keccak256("AdminAdded(address)")
	TopicAdminRemoved          = "0x" + Keccak256("AdminRemoved(address)")
)

type RootUpdatedEvent struct {
	Root common.Hash
}

func (RootUpdatedEvent) Name() string  { return "RootUpdated" }
func (RootUpdatedEvent) Topic() string { return TopicRootUpdated }

type WhitelistPhaseStartedEvent struct {
	Time uint64
}

func (WhitelistPhaseStartedEvent) Name() string  { return "WhitelistPhaseStarted" }
func (WhitelistPhaseStartedEvent) Topic() string { return TopicWhitelistPhaseStarted }

type PublicPhaseStartedEvent struct {
	Time uint64
}

func (PublicPhaseStartedEvent) Name() string  { return "PublicPhaseStarted" }
func (PublicPhaseStartedEvent) Topic() string { return TopicPublicPhaseStarted }

// MintPermanentlyEndedEvent carries the unissued supply at the moment the
// terminal flag was set. Nothing is burned; the number is informational.
type MintPermanentlyEndedEvent struct {
	Remaining uint64
}

func (MintPermanentlyEndedEvent) Name() string  { return "MintPermanentlyEnded" }
func (MintPermanentlyEndedEvent) Topic() string { return TopicMintPermanentlyEnded }

type WhitelistMintEvent struct {
	Minter common.Address
	Amount uint64
}

func (WhitelistMintEvent) Name() string  { return "WhitelistMint" }
func (WhitelistMintEvent) Topic() string { return TopicWhitelistMint }

type PublicMintEvent struct {
	Minter common.Address
	Amount uint64
}

func (PublicMintEvent) Name() string  { return "PublicMint" }
func (PublicMintEvent) Topic() string { return TopicPublicMint }

type AdminAddedEvent struct {
	Addr common.Address
}

func (AdminAddedEvent) Name() string  { return "AdminAdded" }
func (AdminAddedEvent) Topic() string { return TopicAdminAdded }

type AdminRemovedEvent struct {
	Addr common.Address
}

func (AdminRemovedEvent) Name() string  { return "AdminRemoved" }
func (AdminRemovedEvent) Topic() string { return TopicAdminRemoved }
