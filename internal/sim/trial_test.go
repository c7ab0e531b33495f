package sim_test

import (
	"math/rand/v2"
	"testing"

	"github.com/kcatlin/permsim/internal/sim"
	"github.com/kcatlin/permsim/internal/strategy"
)

func resolve(t *testing.T, names ...string) []strategy.Resolved {
	t.Helper()
	resolved, err := strategy.Resolve(names)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return resolved
}

func TestTrialAssignmentIsPermutation(t *testing.T) {
	trial := sim.NewTrial(sim.Params{
		Searchers:  10,
		Slots:      16,
		Attempts:   8,
		Strategies: resolve(t, strategy.NameLoop),
	}, rand.New(rand.NewPCG(42, 0)))

	assignment := trial.Assignment()
	if assignment.Len() != 16 {
		t.Fatalf("assignment has %d slots, want 16", assignment.Len())
	}

	seen := make([]bool, assignment.Len())
	for slot := 0; slot < assignment.Len(); slot++ {
		v := assignment.At(slot)
		if v < 0 || v >= assignment.Len() {
			t.Fatalf("slot %d holds out-of-range identity %d", slot, v)
		}
		if seen[v] {
			t.Fatalf("identity %d appears twice", v)
		}
		seen[v] = true
	}
}

func TestTrialSeedDeterminism(t *testing.T) {
	params := sim.Params{
		Searchers:  8,
		Slots:      8,
		Attempts:   4,
		Strategies: resolve(t, strategy.NameRandom, strategy.NameLoop),
	}

	run := func() map[string][]bool {
		trial := sim.NewTrial(params, rand.New(rand.NewPCG(7, 3)))
		result := trial.Run()
		flags := make(map[string][]bool, len(result))
		for name, outcomes := range result {
			for _, out := range outcomes {
				flags[name] = append(flags[name], out.Success)
			}
		}
		return flags
	}

	first, second := run(), run()
	for name, flags := range first {
		for i, ok := range flags {
			if second[name][i] != ok {
				t.Fatalf("strategy %s searcher %d differs between identically seeded trials", name, i)
			}
		}
	}
}

func TestTrialResultShape(t *testing.T) {
	params := sim.Params{
		Searchers:  5,
		Slots:      9,
		Attempts:   4,
		Strategies: resolve(t, strategy.NameRandom, strategy.NameLoop),
	}

	result := sim.NewTrial(params, rand.New(rand.NewPCG(1, 1))).Run()

	if len(result) != 2 {
		t.Fatalf("result has %d strategies, want 2", len(result))
	}
	for _, name := range []string{strategy.NameRandom, strategy.NameLoop} {
		outcomes, ok := result[name]
		if !ok {
			t.Fatalf("result missing strategy %s", name)
		}
		if len(outcomes) != params.Searchers {
			t.Errorf("strategy %s has %d outcomes, want %d", name, len(outcomes), params.Searchers)
		}
	}
}

func TestTrialLoopMatchesCycleStructure(t *testing.T) {
	// The loop strategy must succeed for exactly the searchers whose
	// cycle distance fits the budget, computed independently from the
	// generated assignment.
	params := sim.Params{
		Searchers:  20,
		Slots:      20,
		Attempts:   10,
		Strategies: resolve(t, strategy.NameLoop),
	}

	for seed := uint64(0); seed < 50; seed++ {
		trial := sim.NewTrial(params, rand.New(rand.NewPCG(seed, 0)))
		assignment := trial.Assignment()
		outcomes := trial.Run()[strategy.NameLoop]

		for searcher, out := range outcomes {
			want := assignment.CycleLen(searcher) <= params.Attempts
			if out.Success != want {
				t.Errorf("seed=%d searcher %d: success=%v, cycle length %d, budget %d",
					seed, searcher, out.Success, assignment.CycleLen(searcher), params.Attempts)
			}
		}
	}
}
