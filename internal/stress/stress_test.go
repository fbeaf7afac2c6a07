package stress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		DomainSize: 10,
		Iterations: 2000,
		Seed:       1,
		Trials:     1,
	}
}

func TestTrial_OracleEquivalence(t *testing.T) {
	r := NewRunner(testConfig())
	for seed := int64(1); seed <= 5; seed++ {
		rep := r.Trial(seed)
		assert.True(t, rep.Ok(), "seed %d: %d mismatches, %d canonical violations",
			seed, rep.Mismatches, rep.CanonicalViolations)
	}
}

func TestTrial_Deterministic(t *testing.T) {
	r := NewRunner(testConfig())
	a := r.Trial(99)
	b := r.Trial(99)
	assert.Equal(t, a.Oracle, b.Oracle, "same seed must replay the same assignments")
	assert.Equal(t, a.Breakpoints, b.Breakpoints)
}

func TestTrial_FinalStateMatchesOracle(t *testing.T) {
	r := NewRunner(testConfig())
	rep := r.Trial(3)
	require.True(t, rep.Ok())

	// Reconstruct every point value from the breakpoint sequence alone.
	require.NotEmpty(t, rep.Breakpoints)
	for k, want := range rep.Oracle {
		got := rep.Breakpoints[0].Value
		for _, bp := range rep.Breakpoints {
			if bp.Key > k {
				break
			}
			got = bp.Value
		}
		assert.Equal(t, want, got, "key %d", k)
	}
}

func TestRun_ParallelTrials(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 4
	cfg.Workers = 2

	reports := NewRunner(cfg).Run()
	require.Len(t, reports, 4)
	for i, rep := range reports {
		assert.Equal(t, cfg.Seed+int64(i), rep.Seed, "reports must come back in trial order")
		assert.True(t, rep.Ok(), "trial %d failed", i)
	}
}

func TestRun_MatchesSequentialTrials(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 3
	cfg.Workers = 3
	r := NewRunner(cfg)

	parallel := r.Run()
	for i, rep := range parallel {
		assert.Equal(t, r.Trial(cfg.Seed+int64(i)), rep, "trial %d", i)
	}
}
