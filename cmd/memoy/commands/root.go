package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/memoy/tui-go/internal/config"
	"github.com/memoy/tui-go/internal/gamelog"
	"github.com/memoy/tui-go/internal/ledger"
	"github.com/memoy/tui-go/internal/tui"
)

var (
	configDir  string
	ledgerPath string
	capacity   int
	seed       uint64
	debug      bool

	gridSize  int
	timed     bool
	timeLimit int
	name      string
	noSave    bool

	// Wired in PersistentPreRunE
	cfg        *config.Config
	book       *ledger.Ledger
	ledgerWarn string
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "memoy",
		Short:         "Terminal memory-matching game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg = c
			book, ledgerWarn, err = openLedger(cfg, noSave)
			return err
		},
		RunE: runGame,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", "", "read config.yaml from this directory (default .memoy, then ~/.memoy)")
	pf.StringVar(&ledgerPath, "ledger", "", "high-score file path")
	pf.IntVar(&capacity, "capacity", 0, "number of high scores kept")
	pf.Uint64Var(&seed, "seed", 0, "shuffle seed for reproducible boards (0 uses the clock)")
	pf.BoolVar(&debug, "debug", false, "show the engine event panel")

	f := root.Flags()
	f.IntVar(&gridSize, "grid", 0, "grid size for a quick game (even number)")
	f.BoolVar(&timed, "timed", false, "play against the clock")
	f.IntVar(&timeLimit, "time-limit", 0, "time limit in seconds for timed games")
	f.StringVarP(&name, "name", "n", "", "player name for a quick game")
	f.BoolVar(&noSave, "no-save", false, "do not write the high-score file")

	root.AddCommand(scoresCmd())
	return root
}

// loadConfig reads the config files and environment, then applies flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		c   *config.Config
		err error
	)
	if configDir != "" {
		c, err = config.LoadFrom(filepath.Join(configDir, "config.yaml"))
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("ledger") {
		c.LedgerPath = ledgerPath
	}
	if flags.Changed("capacity") {
		c.LedgerCapacity = capacity
	}
	if flags.Changed("seed") {
		c.Seed = seed
	}
	if flags.Changed("debug") {
		c.Debug = debug
	}
	if flags.Changed("grid") {
		c.GridSize = gridSize
	}
	if flags.Changed("timed") {
		c.Timed = timed
	}
	if flags.Changed("time-limit") {
		c.TimeLimitSeconds = timeLimit
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return c, nil
}

// openLedger loads the high-score file. A read failure still yields an empty,
// usable ledger plus a warning for the menu. With noSave the file is read but
// never written.
func openLedger(c *config.Config, noSave bool) (*ledger.Ledger, string, error) {
	fs := ledger.NewFileStore(c.LedgerPath)

	var store ledger.Store = fs
	if noSave {
		entries, _ := fs.Load()
		store = ledger.NewMemoryStore(entries...)
	} else if err := os.MkdirAll(filepath.Dir(c.LedgerPath), 0o755); err != nil {
		return nil, "", fmt.Errorf("create ledger directory: %w", err)
	}

	l, err := ledger.Load(store, c.LedgerCapacity)
	if err != nil {
		return l, fmt.Sprintf("High scores unavailable: %v", err), nil
	}
	return l, "", nil
}

func runGame(cmd *cobra.Command, args []string) error {
	logger, err := gamelog.New(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		logger = gamelog.Nop()
	}
	defer logger.Close()

	if ledgerWarn != "" {
		logger.Warn().Str("path", cfg.LedgerPath).Msg(ledgerWarn)
	}

	flags := cmd.Flags()
	quick := flags.Changed("grid") || flags.Changed("timed") ||
		flags.Changed("time-limit") || flags.Changed("name")

	m := tui.NewRootModel(cfg, book, logger, tui.Options{
		SkipTitle:     quick,
		QuickPlay:     quick,
		PlayerName:    name,
		LedgerWarning: ledgerWarn,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
