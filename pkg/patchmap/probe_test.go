package patchmap_test

import (
	"testing"

	"github.com/whashgo/patchmap/pkg/patchmap"
)

// FuzzMapSetGetDelete decodes the fuzz input as a sequence of (op, key)
// bytes and checks the map against a plain Go map kept alongside it. It
// complements TestPropertyAgainstNaiveModel with corpus-driven exploration
// of the probe/insert/erase interaction on small key spaces, where
// collisions on home buckets are common.
func FuzzMapSetGetDelete(f *testing.F) {
	f.Add([]byte{0, 1, 0, 2, 1, 1, 2, 1})
	f.Add([]byte{1, 5, 1, 5, 2, 5})

	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := patchmap.New[byte, int]()
		if err != nil {
			t.Fatal(err)
		}

		ref := make(map[byte]int)
		val := 0

		for i := 0; i+1 < len(data); i += 2 {
			op := data[i] % 3
			key := data[i+1]

			switch op {
			case 0:
				val++
				ref[key] = val
				m.Set(key, val)
			case 1:
				delete(ref, key)
				m.Delete(key)
			case 2:
				wantV, wantOk := ref[key]
				gotV, gotOk := m.Get(key)

				if wantOk != gotOk {
					t.Fatalf("Get(%d) presence mismatch: map=%v real=%v", key, wantOk, gotOk)
				}

				if wantOk && wantV != gotV {
					t.Fatalf("Get(%d) value mismatch: map=%d real=%d", key, wantV, gotV)
				}
			}

			if m.Len() != len(ref) {
				t.Fatalf("length mismatch after op %d on key %d: map=%d real=%d", op, key, len(ref), m.Len())
			}
		}

		for k, wantV := range ref {
			gotV, ok := m.Get(k)
			if !ok || gotV != wantV {
				t.Fatalf("final check failed for key %d: map=%d real=(%d,%v)", k, wantV, gotV, ok)
			}
		}
	})
}
