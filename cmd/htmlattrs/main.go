package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlattrs/internal/config"
	"github.com/vango-dev/htmlattrs/internal/errors"
	"github.com/vango-dev/htmlattrs/pkg/charset"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by all subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath  string
	charsetName string
	verbose     bool

	cfg     *config.Config
	charset *charset.Charset
	logger  *slog.Logger
}

func main() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		errors.SetColor(false)
	}

	rootCmd := newRootCmd(&app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "htmlattrs",
		Short: "Parse, edit and format HTML attribute strings",
		Long: `htmlattrs normalizes markup attribute specifications.

It reads attribute strings such as 'class="card" disabled', lowercases
names, applies edits and writes them back with values escaped for the
configured charset.

Settings are read from the nearest htmlattrs.json; flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to htmlattrs.json")
	rootCmd.PersistentFlags().StringVar(&a.charsetName, "charset", "", "Output charset (default from config, then ISO-8859-1)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log skipped fragments and other debug output")

	rootCmd.AddCommand(
		parseCmd(a),
		formatCmd(a),
		getCmd(a),
		extractCmd(a),
		serveCmd(a),
		versionCmd(a),
	)

	return rootCmd
}

// init loads configuration, installs the charset and builds the logger.
func (a *app) init() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	if a.charsetName != "" {
		a.cfg.Charset = a.charsetName
	}
	if a.verbose {
		a.cfg.Log.Level = "debug"
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	if err := charset.SetDefault(a.cfg.Charset); err != nil {
		return err
	}
	a.charset = charset.Default()

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: a.cfg.LogLevel()}))
	return nil
}

// readInput returns the first argument, or stdin when there is none or it is "-".
func (a *app) readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", errors.New("E132").Wrap(err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// success prints a success message.
func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
