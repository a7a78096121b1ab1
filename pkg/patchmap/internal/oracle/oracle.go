// Package oracle drives a real patchmap.Map and a naive model.Model through
// identical randomized operation sequences and reports the first place they
// disagree. This is the harness patchmap's property-based tests build on,
// in the same spirit as the teacher's state_model_*_test.go files: rather
// than hand-writing every interesting interleaving of insert/delete/resize,
// generate a long random sequence and trust that disagreement with the
// naive reference is itself the bug report.
package oracle

import (
	"fmt"
	"math/rand"

	"github.com/google/go-cmp/cmp"

	"github.com/whashgo/patchmap/pkg/patchmap"
	"github.com/whashgo/patchmap/pkg/patchmap/model"
)

// Config parameterizes a Run: how many operations to perform, how to
// generate keys and values, and how to compare two values for equality
// (V is not constrained comparable, so this can't default to ==).
type Config[K comparable, V any] struct {
	Rand     *rand.Rand
	Ops      int
	KeyGen   func(*rand.Rand) K
	ValueGen func(*rand.Rand) V
	ValueEq  func(a, b V) bool
}

// Run executes cfg.Ops randomly chosen operations against both real and
// ref, failing fast with a descriptive error the moment their observable
// behavior diverges. On success it also does a full final comparison of
// every key the model holds against what real reports.
func Run[K comparable, V any](real *patchmap.Map[K, V], ref *model.Model[K, V], cfg Config[K, V]) error {
	for step := 0; step < cfg.Ops; step++ {
		k := cfg.KeyGen(cfg.Rand)

		switch cfg.Rand.Intn(10) {
		case 0, 1, 2, 3:
			v := cfg.ValueGen(cfg.Rand)

			wantExisted := ref.Set(k, v)
			gotExisted := real.Set(k, v)

			if wantExisted != gotExisted {
				return fmt.Errorf("step %d: Set(%v) existed mismatch: model=%v real=%v", step, k, wantExisted, gotExisted)
			}
		case 4, 5:
			v := cfg.ValueGen(cfg.Rand)

			wantInserted := ref.Insert(k, v)
			gotInserted := real.Insert(k, v)

			if wantInserted != gotInserted {
				return fmt.Errorf("step %d: Insert(%v) mismatch: model=%v real=%v", step, k, wantInserted, gotInserted)
			}
		case 6, 7:
			wantDeleted := ref.Delete(k)
			gotDeleted := real.Delete(k)

			if wantDeleted != gotDeleted {
				return fmt.Errorf("step %d: Delete(%v) mismatch: model=%v real=%v", step, k, wantDeleted, gotDeleted)
			}
		case 8:
			wantV, wantOk := ref.Get(k)
			gotV, gotOk := real.Get(k)

			if wantOk != gotOk {
				return fmt.Errorf("step %d: Get(%v) presence mismatch: model=%v real=%v", step, k, wantOk, gotOk)
			}

			if wantOk && !cfg.ValueEq(wantV, gotV) {
				return fmt.Errorf("step %d: Get(%v) value mismatch: %s", step, k, cmp.Diff(wantV, gotV))
			}
		default:
			if cfg.Rand.Intn(25) == 0 {
				ref.Clear()
				real.Clear()
			}
		}

		if real.Len() != ref.Len() {
			return fmt.Errorf("step %d: length mismatch: model=%d real=%d", step, ref.Len(), real.Len())
		}
	}

	return compareAll(real, ref, cfg.ValueEq)
}

func compareAll[K comparable, V any](real *patchmap.Map[K, V], ref *model.Model[K, V], valueEq func(a, b V) bool) error {
	want := ref.Snapshot()

	got := make(map[K]V, real.Len())
	for k, v := range real.All() {
		got[k] = v
	}

	if len(want) != len(got) {
		return fmt.Errorf("final length mismatch: model=%d real=%d", len(want), len(got))
	}

	for k, wv := range want {
		gv, ok := got[k]
		if !ok {
			return fmt.Errorf("final comparison: key %v present in model, missing in real", k)
		}

		if !valueEq(wv, gv) {
			return fmt.Errorf("final comparison: value mismatch for key %v: %s", k, cmp.Diff(wv, gv))
		}
	}

	return nil
}
