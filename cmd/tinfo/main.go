package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tinfo/config"
	"github.com/lixenwraith/tinfo/terminfo"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code
func run(args []string) int {
	root := buildRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tinfo:", err)
		return 1
	}
	return 0
}

// globals holds the persistent flags and what PersistentPreRunE derives from them
type globals struct {
	configPath string
	logLevel   string
	term       string
	file       string
	builtin    bool

	cfg config.Config
	log *slog.Logger
}

func buildRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "tinfo",
		Short: "Inspect terminfo descriptions and terminal input",
		Long: `tinfo - terminfo decoder and terminal input viewer

  tinfo dump [name]          Print a decoded description
  tinfo eval cup 4 10        Expand a string capability
  tinfo input                Show decoded key and mouse events`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default ~/.config/tinfo/config.toml)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVarP(&g.term, "term", "t", "", "terminal name (default $TERM)")
	flags.StringVarP(&g.file, "file", "f", "", "read a compiled description from a file instead of the database")
	flags.BoolVar(&g.builtin, "builtin", false, "fall back to the built-in descriptions")

	root.AddCommand(buildDumpCommand(g))
	root.AddCommand(buildEvalCommand(g))
	root.AddCommand(buildInputCommand(g))
	return root
}

func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.term != "" {
		cfg.Term = g.term
	}
	if cmd.Flags().Changed("builtin") {
		cfg.BuiltinFallback = g.builtin
	}
	if g.logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(g.logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	g.cfg = cfg
	g.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	return nil
}

// table loads the description selected by --file, or by name through the
// configured locator
func (g *globals) table(name string) (*terminfo.Table, error) {
	if g.file != "" {
		data, err := os.ReadFile(g.file)
		if err != nil {
			return nil, err
		}
		t, err := terminfo.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.file, err)
		}
		return t, nil
	}
	if name == "" {
		name = g.cfg.Term
	}
	return g.cfg.Locator(g.log).Load(name)
}
