// patchbench is a flag-driven micro-benchmark for pkg/patchmap: it times
// bulk insert, random get, and bulk delete over a configurable range of
// table sizes and prints a small results table (or JSON, with --json).
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/whashgo/patchmap/pkg/patchmap"
)

// Config holds the benchmark's command-line configuration.
type Config struct {
	Sizes   []int
	Seed    int64
	AsJSON  bool
	Initial int
}

// Result holds the timing for one operation over one table size.
type Result struct {
	Op      string        `json:"op"`
	N       int           `json:"n"`
	Elapsed time.Duration `json:"elapsed_ns"`
	PerOp   float64       `json:"ns_per_op"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	sizesFlag := flag.String("sizes", "1000,10000,100000", "comma-separated table sizes to benchmark")
	seed := flag.Int64("seed", 1, "PRNG seed")
	asJSON := flag.Bool("json", false, "print results as JSON instead of a table")
	initial := flag.Int("initial-capacity", 0, "initial capacity passed to patchmap.New")

	flag.Parse()

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		return err
	}

	cfg := Config{Sizes: sizes, Seed: *seed, AsJSON: *asJSON, Initial: *initial}

	results := benchAll(cfg)

	if cfg.AsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printTable(results)

	return nil
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", p, err)
		}

		sizes = append(sizes, n)
	}

	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}

	return sizes, nil
}

func benchAll(cfg Config) []Result {
	var results []Result

	for _, n := range cfg.Sizes {
		results = append(results, benchOne(cfg, n)...)
	}

	return results
}

func benchOne(cfg Config, n int) []Result {
	rnd := rand.New(rand.NewSource(cfg.Seed))
	keys := make([]int, n)

	for i := range keys {
		keys[i] = rnd.Int()
	}

	m, err := patchmap.New[int, int](patchmap.WithInitialCapacity[int, int](cfg.Initial))
	if err != nil {
		panic(err) // only fails on a non-injective custom hash, which this benchmark never configures
	}

	insertElapsed := timeIt(func() {
		for i, k := range keys {
			m.Set(k, i)
		}
	})

	order := rnd.Perm(n)
	getElapsed := timeIt(func() {
		for _, idx := range order {
			m.Get(keys[idx])
		}
	})

	deleteElapsed := timeIt(func() {
		for _, k := range keys {
			m.Delete(k)
		}
	})

	return []Result{
		newResult("insert", n, insertElapsed),
		newResult("get", n, getElapsed),
		newResult("delete", n, deleteElapsed),
	}
}

func newResult(op string, n int, elapsed time.Duration) Result {
	perOp := float64(elapsed.Nanoseconds())
	if n > 0 {
		perOp /= float64(n)
	}

	return Result{Op: op, N: n, Elapsed: elapsed, PerOp: perOp}
}

func timeIt(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

func printTable(results []Result) {
	fmt.Printf("%-8s %10s %14s %12s\n", "op", "n", "elapsed", "ns/op")

	for _, r := range results {
		fmt.Printf("%-8s %10d %14s %12.1f\n", r.Op, r.N, r.Elapsed, r.PerOp)
	}
}
