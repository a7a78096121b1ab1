package patchmap

import (
	"math/rand"
	"testing"
)

func TestBitmapSetUnset(t *testing.T) {
	b := newBitmap(200)

	for _, i := range []int{0, 1, 63, 64, 65, 127, 128, 199} {
		if b.isSet(i) {
			t.Fatalf("slot %d unexpectedly set before any Set call", i)
		}

		b.set(i)

		if !b.isSet(i) {
			t.Fatalf("slot %d not set after Set", i)
		}
	}

	if got, want := b.popcount(), 8; got != want {
		t.Fatalf("popcount = %d, want %d", got, want)
	}

	b.unset(64)
	if b.isSet(64) {
		t.Fatalf("slot 64 still set after Unset")
	}

	if got, want := b.popcount(), 7; got != want {
		t.Fatalf("popcount after unset = %d, want %d", got, want)
	}

	b.clear()
	if b.popcount() != 0 {
		t.Fatalf("popcount after Clear = %d, want 0", b.popcount())
	}
}

// bruteForceFreeInc/Dec mirror the bitmap scans with a trivial linear walk,
// used as the oracle for the randomized scan test below.
func bruteForceFreeInc(occupied []bool, i int) int {
	for ; i < len(occupied); i++ {
		if !occupied[i] {
			return i
		}
	}

	return noSlot
}

func bruteForceFreeDec(occupied []bool, i int) int {
	for ; i >= 0; i-- {
		if !occupied[i] {
			return i
		}
	}

	return noSlot
}

func randomBitmap(rnd *rand.Rand, n int, fillProb float64) (bitmap, []bool) {
	b := newBitmap(n)
	occupied := make([]bool, n)

	for i := 0; i < n; i++ {
		if rnd.Float64() < fillProb {
			b.set(i)
			occupied[i] = true
		}
	}

	return b, occupied
}

func TestBitmapFreeScansAgainstBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rnd.Intn(400)
		b, occupied := randomBitmap(rnd, n, rnd.Float64())

		for probe := 0; probe < 20; probe++ {
			i := rnd.Intn(n)

			wantInc := bruteForceFreeInc(occupied, i)
			gotInc := b.searchFreeInc(i)

			if wantInc != gotInc {
				t.Fatalf("trial %d n=%d i=%d: searchFreeInc = %d, want %d", trial, n, i, gotInc, wantInc)
			}

			wantDec := bruteForceFreeDec(occupied, i)
			gotDec := b.searchFreeDec(i)

			if wantDec != gotDec {
				t.Fatalf("trial %d n=%d i=%d: searchFreeDec = %d, want %d", trial, n, i, gotDec, wantDec)
			}

			bidirV0 := b.searchFreeBidirV0(i)
			if bidirV0 != noSlot && occupied[bidirV0] {
				t.Fatalf("trial %d n=%d i=%d: searchFreeBidirV0 returned occupied slot %d", trial, n, i, bidirV0)
			}

			if (wantInc == noSlot && wantDec == noSlot) != (bidirV0 == noSlot) {
				t.Fatalf("trial %d n=%d i=%d: searchFreeBidirV0 disagreed with inc/dec on emptiness", trial, n, i)
			}

			bidir := b.searchFreeBidir(i)
			if bidir != noSlot && occupied[bidir] {
				t.Fatalf("trial %d n=%d i=%d: searchFreeBidir returned occupied slot %d", trial, n, i, bidir)
			}

			if (bidirV0 == noSlot) != (bidir == noSlot) {
				t.Fatalf("trial %d n=%d i=%d: searchFreeBidir disagreed with searchFreeBidirV0 on emptiness", trial, n, i)
			}
		}
	}
}

func FuzzBitmapNextPrevOccupied(f *testing.F) {
	f.Add(uint64(0), 10, 3)
	f.Add(uint64(0xFFFFFFFFFFFFFFFF), 128, 64)

	f.Fuzz(func(t *testing.T, seed uint64, n int, start int) {
		if n <= 0 || n > 2000 {
			t.Skip()
		}

		rnd := rand.New(rand.NewSource(int64(seed)))
		b, occupied := randomBitmap(rnd, n, 0.3)

		start = ((start % n) + n) % n

		gotNext := b.nextOccupied(start)
		wantNext := n

		for i := start; i < n; i++ {
			if occupied[i] {
				wantNext = i
				break
			}
		}

		if gotNext != wantNext {
			t.Fatalf("nextOccupied(%d) = %d, want %d", start, gotNext, wantNext)
		}

		gotPrev := b.prevOccupied(start)
		wantPrev := -1

		for i := start; i >= 0; i-- {
			if occupied[i] {
				wantPrev = i
				break
			}
		}

		if gotPrev != wantPrev {
			t.Fatalf("prevOccupied(%d) = %d, want %d", start, gotPrev, wantPrev)
		}
	})
}
