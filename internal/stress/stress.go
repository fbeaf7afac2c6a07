// Package stress validates the interval map against a brute-force reference
// model. A trial drives Assign with randomly drawn bounded intervals, updates
// a plain array over the same domain in lockstep, and cross-checks every
// point lookup plus the canonical-form invariants after each step. Trials are
// fully deterministic: all randomness comes from a seeded generator, so a
// seed reproduces a run exactly.
package stress

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/vanand88/interval-map/internal/intervalmap"
)

// Config controls trial runs.
type Config struct {
	// DomainSize bounds the key/value domain; begin, end and value are all
	// drawn uniformly from [0, DomainSize).
	DomainSize int
	// Iterations is the number of random Assign calls per trial.
	Iterations int
	// Seed is the base seed; trial i runs with Seed+i.
	Seed int64
	// Trials is the number of independent trials.
	Trials int
	// Workers caps the worker pool; 0 means one worker per CPU.
	Workers int
}

// DefaultConfig mirrors the historical smoke run: a 10-key domain hammered
// with 1<<20 random assignments.
func DefaultConfig() Config {
	return Config{
		DomainSize: 10,
		Iterations: 1 << 20,
		Seed:       1,
		Trials:     1,
	}
}

// Report summarizes one trial.
type Report struct {
	Seed       int64
	Iterations int
	// Mismatches counts steps after which at least one lookup disagreed with
	// the reference model.
	Mismatches int
	// CanonicalViolations counts steps after which the breakpoint sequence
	// broke an invariant (missing sentinel, unordered keys, adjacent equal
	// values).
	CanonicalViolations int
	// Breakpoints is the final breakpoint sequence.
	Breakpoints []intervalmap.Breakpoint[int, int]
	// Oracle is the final state of the reference array.
	Oracle []int
}

// Ok reports whether the trial finished without any disagreement.
func (r Report) Ok() bool {
	return r.Mismatches == 0 && r.CanonicalViolations == 0
}

// Runner executes trials.
type Runner struct {
	cfg    Config
	logger *zap.Logger
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for mismatch and progress messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Trial runs one seeded trial and returns its report. Each call builds a
// fresh map and reference array, so concurrent Trial calls are independent.
func (r *Runner) Trial(seed int64) Report {
	rng := rand.New(rand.NewSource(seed))
	m := intervalmap.New(0, 0)
	oracle := make([]int, r.cfg.DomainSize)

	rep := Report{Seed: seed, Iterations: r.cfg.Iterations}

	for step := 0; step < r.cfg.Iterations; step++ {
		begin := rng.Intn(r.cfg.DomainSize)
		end := rng.Intn(r.cfg.DomainSize)
		value := rng.Intn(r.cfg.DomainSize)

		m.Assign(begin, end, value)
		for k := begin; k < end; k++ {
			oracle[k] = value
		}

		if k, ok := r.firstMismatch(m, oracle); !ok {
			rep.Mismatches++
			r.logger.Error("lookup disagrees with reference model",
				zap.Int64("seed", seed),
				zap.Int("step", step),
				zap.Int("begin", begin),
				zap.Int("end", end),
				zap.Int("value", value),
				zap.Int("key", k),
				zap.Int("got", m.Lookup(k)),
				zap.Int("want", oracle[k]))
		}
		if !canonical(m.Breakpoints()) {
			rep.CanonicalViolations++
			r.logger.Error("breakpoint sequence is not canonical",
				zap.Int64("seed", seed),
				zap.Int("step", step),
				zap.Any("breakpoints", m.Breakpoints()))
		}
	}

	rep.Breakpoints = m.Breakpoints()
	rep.Oracle = oracle
	return rep
}

// firstMismatch compares every key in the domain against the reference
// model, returning the first disagreeing key.
func (r *Runner) firstMismatch(m *intervalmap.Map[int, int], oracle []int) (int, bool) {
	for k := 0; k < r.cfg.DomainSize; k++ {
		if m.Lookup(k) != oracle[k] {
			return k, false
		}
	}
	return 0, true
}

// canonical reports whether the sequence satisfies the structural
// invariants: non-empty with the sentinel at key 0, strictly increasing
// keys, no adjacent equal values.
func canonical(bps []intervalmap.Breakpoint[int, int]) bool {
	if len(bps) == 0 || bps[0].Key != 0 {
		return false
	}
	for i := 1; i < len(bps); i++ {
		if bps[i-1].Key >= bps[i].Key || bps[i-1].Value == bps[i].Value {
			return false
		}
	}
	return true
}
