package model

import "fmt"

type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseWhitelist
	PhasePublic
	PhaseEnded
)

// Fixed drop parameters. Changing any of these breaks compatibility with
// already-generated proofs and off-chain tooling.
const (
	MaxSupply     uint64 = 10000
	WhitelistCap  uint64 = 5
	PublicCap     uint64 = 1
	PhaseDuration uint64 = 2 * 24 * 60 * 60 // seconds
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseWhitelist:
		return "Whitelist"
	case PhasePublic:
		return "Public"
	case PhaseEnded:
		return "Ended"
	}
	return "Unknown"
}

// PhaseClock records the two one-way phase start timestamps, unix seconds.
// Zero means unset. Neither field is ever reset.
type PhaseClock struct {
	WhitelistStart uint64
	PublicStart    uint64
}

func (c *PhaseClock) StartWhitelist(now uint64) error {
	if c.WhitelistStart != 0 {
		return fmt.Errorf("%w: whitelist phase already started at %d", ErrPhaseState, c.WhitelistStart)
	}
	c.WhitelistStart = now
	return nil
}

func (c *PhaseClock) StartPublic(now uint64) error {
	if c.WhitelistStart == 0 {
		return fmt.Errorf("%w: whitelist phase never started", ErrPhaseState)
	}
	if now < c.WhitelistStart+PhaseDuration {
		return fmt.Errorf("%w: whitelist phase not ended", ErrPhaseState)
	}
	if c.PublicStart != 0 {
		return fmt.Errorf("%w: public phase already started at %d", ErrPhaseState, c.PublicStart)
	}
	c.PublicStart = now
	return nil
}

// CurrentPhase derives the phase from the clock inputs alone. The rules are
// evaluated strictly in order; the terminal flag overrides all time logic,
// and the gap between a closed whitelist window and a not-yet-started public
// window reads as Ended.
func CurrentPhase(now, whitelistStart, publicStart, duration uint64, ended bool) Phase {
	if ended {
		return PhaseEnded
	}
	if whitelistStart == 0 || now < whitelistStart {
		return PhaseNotStarted
	}
	if now < whitelistStart+duration {
		return PhaseWhitelist
	}
	if publicStart == 0 {
		return PhaseEnded
	}
	if now < publicStart {
		return PhaseEnded
	}
	if now < publicStart+duration {
		return PhasePublic
	}
	return PhaseEnded
}
