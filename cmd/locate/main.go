package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locate"
	"github.com/fwojciec/locate/build"
	"github.com/fwojciec/locate/flock"
	"github.com/fwojciec/locate/fs"
	"github.com/fwojciec/locate/lru"
	"github.com/fwojciec/locate/query"
	locslog "github.com/fwojciec/locate/slog"
	"github.com/fwojciec/locate/sqlite"
	"github.com/fwojciec/locate/unix"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overridden by --db or LOCATE_DB.
	DBPath string

	// SQLite database used by the index service.
	DB *sqlite.DB

	// Compiler is shared by every query this program runs.
	Compiler *lru.PatternCompiler

	// Host integration, replaceable for end-to-end testing.
	MountService locate.MountService
	Walker       locate.Walker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		Compiler: lru.NewPatternCompiler(lru.DefaultCacheSize),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("locate"),
		kong.Description("Find files by name using a prebuilt index of the local filesystems"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if !cli.Update && len(cli.Locate) == 0 {
		return fmt.Errorf("nothing to do: use --update and/or --locate TEXT")
	}
	if len(cli.Locate) == 0 && (cli.Count || cli.Regex) {
		return fmt.Errorf("--count and --regex require --locate TEXT")
	}

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LOCATE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	// Wire services
	var index locate.IndexService = sqlite.NewIndexService(m.DB)
	mounts := m.MountService
	if mounts == nil {
		mounts = unix.NewMountService("")
	}
	walker := m.Walker
	if walker == nil {
		walker = fs.NewWalker()
	}
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		index = locslog.NewLoggingIndexService(index, logger)
		mounts = locslog.NewLoggingMountService(mounts, logger)
		walker = locslog.NewLoggingWalker(walker, logger)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	if cli.Update {
		deps.Builder = &build.Builder{
			Mounts:      mounts,
			Walker:      walker,
			Index:       index,
			Concurrency: cli.Concurrency,
		}
		if !m.DB.InMemory() {
			deps.Builder.Lock = flock.NewUpdateLock(m.DB.Path())
		}
		if err := (&UpdateCmd{}).Run(deps); err != nil {
			return err
		}
	}

	if len(cli.Locate) > 0 {
		if m.Compiler == nil {
			m.Compiler = lru.NewPatternCompiler(lru.DefaultCacheSize)
		}
		deps.Engine = query.NewEngine(index, m.Compiler)
		cmd := &LocateCmd{
			Texts:   cli.Locate,
			Regex:   cli.Regex,
			Count:   cli.Count,
			Verbose: cli.Verbose,
		}
		return cmd.Run(deps)
	}

	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "locate.db"
	}
	return filepath.Join(home, ".locate", "locate.db")
}
