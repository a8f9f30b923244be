package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// CLI wires the cobra command tree to a viper configuration
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger   *slog.Logger
	closeLog func()

	// Overridable in tests
	now         func() time.Time
	ids         ids.Generator
	interactive func() bool
}

// NewCLI creates the command tree reading from in and writing to out and errOut
func NewCLI(in io.Reader, out, errOut io.Writer) *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		in:        in,
		out:       out,
		errOut:    errOut,
		logger:    slog.Default(),
		closeLog:  func() {},
		now:       time.Now,
		ids:       ids.UUID{},
	}
	cli.interactive = func() bool { return isTerminal(cli.in) && isTerminal(cli.out) }

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the command line given in args
func (cli *CLI) Execute(args []string) error {
	defer func() { cli.closeLog() }()

	cli.rootCmd.SetArgs(args)
	cli.rootCmd.SetIn(cli.in)
	cli.rootCmd.SetOut(cli.out)
	cli.rootCmd.SetErr(cli.errOut)
	return cli.rootCmd.Execute()
}

// setupViperConfig configures Viper with environment variables and config file discovery
func (cli *CLI) setupViperConfig() {
	v := cli.viperInst

	// RECIPES_CONFIG points at an explicit config file
	if configFile := os.Getenv("RECIPES_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nanorecipes")
		v.AddConfigPath(".")
		v.AddConfigPath(getXDGDir("XDG_CONFIG_HOME", filepath.Join("Library", "Application Support"), ".config"))
		v.AddConfigPath("$HOME/.nanorecipes")
	}

	v.SetEnvPrefix("RECIPES")
	// Replace dash with underscore in env vars (e.g., --data-dir -> RECIPES_DATA_DIR)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", "file")
	v.SetDefault("key", storage.DefaultKey)
	v.SetDefault("log-level", "warn")
	v.SetDefault("data-dir", getXDGDir("XDG_DATA_HOME", filepath.Join("Library", "Application Support"), filepath.Join(".local", "share")))
}

func (cli *CLI) readConfig() error {
	err := cli.viperInst.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) {
		return nil
	}
	return NewConfigError("load configuration", err.Error(), CommonSuggestions.CheckConfig)
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanorecipes",
		Short: "A small local recipe manager",
		Long: `Nanorecipes keeps your recipes in a local file and lets you browse,
search and edit them from a terminal UI or with plain commands.

Run without a command in a terminal to open the UI.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (RECIPES_*)
3. Configuration file (RECIPES_CONFIG, or nanorecipes.yaml|json|toml in
   ., $XDG_CONFIG_HOME/nanorecipes, ~/.nanorecipes)
4. Defaults

Examples:
  nanorecipes list --category Soups
  nanorecipes add --title "Lemonade" --category Drinks --ingredient "4 lemons"
  nanorecipes show 1
  RECIPES_BACKEND=sqlite nanorecipes tui --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.readConfig(); err != nil {
				return err
			}

			logger, closeLog, err := initLogging(cli.viperInst.GetString("log-level"), cli.viperInst.GetBool("verbose"), cli.errOut)
			if err != nil {
				// Logging is not worth refusing to run over
				fmt.Fprintf(cli.errOut, "Warning: %v\n", err)
				return nil
			}
			cli.logger, cli.closeLog = logger, closeLog
			cli.logger.Debug("command started", "command", cmd.Name(), "args", args)
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.interactive() {
				return cli.runTUI(cli.viperInst.GetBool("watch"))
			}
			return cli.runList(listOptions{format: "table"})
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.String("data-dir", "", "Directory holding the recipe data")
	flags.String("backend", "", "Storage backend (file|sqlite|memory)")
	flags.String("key", "", "Slot name the collection is stored under")
	flags.Bool("ephemeral", false, "Keep recipes in memory only for this run")
	flags.String("log-level", "", "Log level for the log file (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also write logs to stderr")

	for _, flag := range []string{"data-dir", "backend", "key", "ephemeral", "log-level", "verbose"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

// addCommands adds every verb
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newListCommand(),
		cli.newShowCommand(),
		cli.newAddCommand(),
		cli.newEditCommand(),
		cli.newDeleteCommand(),
		cli.newExportCommand(),
		cli.newImportCommand(),
		cli.newCategoriesCommand(),
		cli.newTUICommand(),
		cli.newConfigCommand(),
	)
}

// isTerminal reports whether rw is a file attached to a terminal
func isTerminal(rw interface{}) bool {
	f, ok := rw.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
