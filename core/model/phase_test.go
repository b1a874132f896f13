package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = uint64(1700000000)

func TestCurrentPhaseRules(t *testing.T) {
	wl := testBase
	pub := testBase + PhaseDuration

	cases := []struct {
		name           string
		now            uint64
		whitelistStart uint64
		publicStart    uint64
		ended          bool
		want           Phase
	}{
		{"ended overrides everything", wl + 10, wl, pub, true, PhaseEnded},
		{"whitelist unset", testBase, 0, 0, false, PhaseNotStarted},
		{"before whitelist start", wl - 1, wl, 0, false, PhaseNotStarted},
		{"whitelist opens at start", wl, wl, 0, false, PhaseWhitelist},
		{"last second of whitelist", wl + PhaseDuration - 1, wl, 0, false, PhaseWhitelist},
		{"whitelist closed, public never started", wl + PhaseDuration, wl, 0, false, PhaseEnded},
		{"gap before public start reads ended", pub - 1, wl, pub, false, PhaseEnded},
		{"public opens at start", pub, wl, pub, false, PhasePublic},
		{"last second of public", pub + PhaseDuration - 1, wl, pub, false, PhasePublic},
		{"after public window", pub + PhaseDuration, wl, pub, false, PhaseEnded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CurrentPhase(tc.now, tc.whitelistStart, tc.publicStart, PhaseDuration, tc.ended)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCurrentPhaseIsPure(t *testing.T) {
	for i := 0; i < 10; i++ {
		a := CurrentPhase(testBase+42, testBase, 0, PhaseDuration, false)
		b := CurrentPhase(testBase+42, testBase, 0, PhaseDuration, false)
		assert.Equal(t, a, b)
	}
}

// With the public start recorded exactly when the whitelist window elapses,
// the derived phase must never move backwards as time advances.
func TestCurrentPhaseMonotonic(t *testing.T) {
	wl := testBase
	pub := testBase + PhaseDuration

	last := PhaseNotStarted
	for now := wl - 100; now < pub+2*PhaseDuration; now += 977 {
		got := CurrentPhase(now, wl, pub, PhaseDuration, false)
		assert.GreaterOrEqual(t, int(got), int(last), "phase rewound at %d", now)
		last = got
	}
	assert.Equal(t, PhaseEnded, CurrentPhase(pub+PhaseDuration, wl, pub, PhaseDuration, false))
}

func TestPhaseClockStartWhitelistOnce(t *testing.T) {
	var clock PhaseClock
	require.NoError(t, clock.StartWhitelist(testBase))
	assert.Equal(t, testBase, clock.WhitelistStart)

	err := clock.StartWhitelist(testBase + 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPhaseState))
	assert.Equal(t, testBase, clock.WhitelistStart)
}

func TestPhaseClockStartPublic(t *testing.T) {
	var clock PhaseClock

	err := clock.StartPublic(testBase)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPhaseState), "public before whitelist")

	require.NoError(t, clock.StartWhitelist(testBase))

	err = clock.StartPublic(testBase + PhaseDuration - 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPhaseState), "whitelist window still open")

	require.NoError(t, clock.StartPublic(testBase+PhaseDuration))

	err = clock.StartPublic(testBase + PhaseDuration + 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPhaseState), "public double start")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "NotStarted", PhaseNotStarted.String())
	assert.Equal(t, "Whitelist", PhaseWhitelist.String())
	assert.Equal(t, "Public", PhasePublic.String())
	assert.Equal(t, "Ended", PhaseEnded.String())
	assert.Equal(t, "Unknown", Phase(99).String())
}
