package patchmap_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whashgo/patchmap/pkg/patchmap"
	"github.com/whashgo/patchmap/pkg/patchmap/internal/oracle"
	"github.com/whashgo/patchmap/pkg/patchmap/model"
)

func TestPropertyAgainstNaiveModel(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		seed := seed

		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(seed))

			real, err := patchmap.New[int, int]()
			require.NoError(t, err)

			ref := model.New[int, int]()

			cfg := oracle.Config[int, int]{
				Rand: rnd,
				Ops:  4000,
				KeyGen: func(r *rand.Rand) int {
					return r.Intn(300) // small key space forces frequent collisions/overwrites
				},
				ValueGen: func(r *rand.Rand) int { return r.Intn(1 << 30) },
				ValueEq:  func(a, b int) bool { return a == b },
			}

			require.NoError(t, oracle.Run(real, ref, cfg))
		})
	}
}

func TestPropertyWithStringKeys(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))

	real, err := patchmap.New[string, string]()
	require.NoError(t, err)

	ref := model.New[string, string]()

	cfg := oracle.Config[string, string]{
		Rand: rnd,
		Ops:  2000,
		KeyGen: func(r *rand.Rand) string {
			return fmt.Sprintf("k%d", r.Intn(500))
		},
		ValueGen: func(r *rand.Rand) string { return fmt.Sprintf("v%d", r.Intn(1000)) },
		ValueEq:  func(a, b string) bool { return a == b },
	}

	require.NoError(t, oracle.Run(real, ref, cfg))
}
