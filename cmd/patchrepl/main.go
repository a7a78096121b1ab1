// patchrepl is an interactive CLI for poking at a live patchmap.Map.
//
// Usage:
//
//	patchrepl [--capacity N] [--config path]
//
// Commands (in REPL):
//
//	put <key> <value>       Insert or update an entry
//	get <key>                Retrieve an entry by key
//	del <key>                Delete an entry
//	scan [limit]             List entries in ascending rank order
//	rscan [limit]            List entries in descending rank order
//	len                      Count live entries
//	stats                    Show capacity, load factor, size
//	bulk <count>             Insert N sequential generated entries
//	reserve <n>              Reserve room for n entries in total
//	rehash <n>               Resize to at least n slots
//	clear                    Remove all entries
//	export <file>            Atomically dump all entries as JSON
//	help                     Show this help
//	exit / quit / q          Exit
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/whashgo/patchmap/pkg/patchmap"
)

// replConfig is the set of knobs patchrepl reads from a JSONC config file
// before CLI flags override them, mirroring the precedence chain the
// teacher's root config.go uses (defaults -> file -> flags).
type replConfig struct {
	InitialCapacity int    `json:"initial_capacity"`
	LoadFactorNum   uint64 `json:"load_factor_num"`
	LoadFactorDen   uint64 `json:"load_factor_den"`
}

func defaultReplConfig() replConfig {
	return replConfig{LoadFactorNum: 7, LoadFactorDen: 8}
}

// loadConfigFile reads and JSONC-standardizes a config file, merging it
// over the defaults. A missing file is not an error -- it just means
// "use the defaults".
func loadConfigFile(path string) (replConfig, error) {
	cfg := defaultReplConfig()

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("reading config: %w", err)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", defaultConfigPath(), "path to a JSONC config file")
		capacity   = flag.Int("capacity", 0, "initial bucket capacity (0 = let the config/defaults decide)")
		ldNum      = flag.Uint64("load-factor-num", 0, "load factor numerator override")
		ldDen      = flag.Uint64("load-factor-den", 0, "load factor denominator override")
	)

	flag.Parse()

	cfg, err := loadConfigFile(*configPath)
	if err != nil {
		return err
	}

	if *capacity != 0 {
		cfg.InitialCapacity = *capacity
	}

	if *ldNum != 0 {
		cfg.LoadFactorNum = *ldNum
	}

	if *ldDen != 0 {
		cfg.LoadFactorDen = *ldDen
	}

	m, err := patchmap.New[string, string](
		patchmap.WithInitialCapacity[string, string](cfg.InitialCapacity),
		patchmap.WithLoadFactor[string, string](cfg.LoadFactorNum, cfg.LoadFactorDen),
	)
	if err != nil {
		return fmt.Errorf("configuring map: %w", err)
	}

	repl := &REPL{m: m}

	return repl.Run()
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".patchrepl.json")
}

// REPL is the interactive command loop.
type REPL struct {
	m     *patchmap.Map[string, string]
	liner *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".patchrepl_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Println("patchrepl - patchmap CLI")
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("patchrepl> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "put", "set":
			r.cmdPut(args)

		case "get":
			r.cmdGet(args)

		case "del", "delete":
			r.cmdDelete(args)

		case "scan", "ls", "list":
			r.cmdScan(args, false)

		case "rscan":
			r.cmdScan(args, true)

		case "len", "count":
			fmt.Println(r.m.Len())

		case "stats":
			r.cmdStats()

		case "bulk":
			r.cmdBulk(args)

		case "reserve":
			r.cmdReserve(args)

		case "rehash":
			r.cmdRehash(args)

		case "clear", "cls":
			r.m.Clear()
			fmt.Println("cleared")

		case "export":
			r.cmdExport(args)

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *REPL) completer(line string) []string {
	commands := []string{
		"put", "set", "get", "del", "delete",
		"scan", "rscan", "ls", "list",
		"len", "count", "stats", "bulk",
		"reserve", "rehash", "clear", "cls",
		"export", "help", "exit", "quit", "q",
	}

	var matches []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}

	return matches
}

func (r *REPL) printHelp() {
	fmt.Println(`Commands:
  put <key> <value>   Insert or update an entry
  get <key>           Retrieve an entry by key
  del <key>           Delete an entry
  scan [limit]        List entries in ascending rank order
  rscan [limit]        List entries in descending rank order
  len                 Count live entries
  stats               Show capacity, load factor, size
  bulk <count>        Insert N sequential generated entries
  reserve <n>         Reserve room for n entries in total
  rehash <n>          Resize to at least n slots
  clear               Remove all entries
  export <file>       Atomically dump all entries as JSON
  help                Show this help
  exit / quit / q     Exit`)
}

func (r *REPL) cmdPut(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: put <key> <value>")
		return
	}

	existed := r.m.Set(args[0], strings.Join(args[1:], " "))
	if existed {
		fmt.Println("updated")
	} else {
		fmt.Println("inserted")
	}
}

func (r *REPL) cmdGet(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: get <key>")
		return
	}

	v, ok := r.m.Get(args[0])
	if !ok {
		fmt.Println("(not found)")
		return
	}

	fmt.Println(v)
}

func (r *REPL) cmdDelete(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: del <key>")
		return
	}

	if r.m.Delete(args[0]) {
		fmt.Println("deleted")
	} else {
		fmt.Println("(not found)")
	}
}

func (r *REPL) cmdScan(args []string, reverse bool) {
	limit := -1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: scan [limit]")
			return
		}

		limit = n
	}

	count := 0
	seq := r.m.All()
	if reverse {
		seq = r.m.Backward()
	}

	for k, v := range seq {
		if limit >= 0 && count >= limit {
			break
		}

		fmt.Printf("%s = %s\n", k, v)
		count++
	}

	fmt.Printf("(%d entries shown)\n", count)
}

func (r *REPL) cmdStats() {
	fmt.Printf("size:         %d\n", r.m.Len())
	fmt.Printf("bucket count: %d\n", r.m.BucketCount())
	fmt.Printf("load factor:  %.4f\n", r.m.LoadFactor())
	fmt.Printf("max load:     %.4f\n", r.m.MaxLoadFactor())
}

func (r *REPL) cmdBulk(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: bulk <count>")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Println("count must be a non-negative integer")
		return
	}

	base := r.m.Len()
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("bulk-%d", base+i)
		r.m.Set(key, strconv.Itoa(base+i))
	}

	fmt.Printf("inserted %d entries\n", n)
}

func (r *REPL) cmdReserve(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: reserve <n>")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("n must be an integer")
		return
	}

	r.m.Reserve(n)
	fmt.Printf("bucket count now %d\n", r.m.BucketCount())
}

func (r *REPL) cmdRehash(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: rehash <n>")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("n must be an integer")
		return
	}

	r.m.Rehash(n)
	fmt.Printf("bucket count now %d\n", r.m.BucketCount())
}

// cmdExport writes every entry to a JSON file atomically. This is a
// debugging dump of the current REPL session, not a persistence feature of
// the map itself -- patchmap holds everything in memory only.
func (r *REPL) cmdExport(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: export <file>")
		return
	}

	entries := make(map[string]string, r.m.Len())
	for k, v := range r.m.All() {
		entries[k] = v
	}

	buf, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Printf("export failed: %v\n", err)
		return
	}

	if err := atomic.WriteFile(args[0], strings.NewReader(string(buf))); err != nil {
		fmt.Printf("export failed: %v\n", err)
		return
	}

	fmt.Printf("exported %d entries to %s\n", len(entries), args[0])
}
