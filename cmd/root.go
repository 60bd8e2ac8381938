package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nrgonzalez/depot/depot"
	"github.com/nrgonzalez/depot/logger"
	"github.com/nrgonzalez/depot/node"
)

// Exit codes for startup-fatal conditions.
const (
	exitUsage         = 1
	exitInvalidName   = 2
	exitInvalidAmount = 3
)

var rootCmd = &cobra.Command{
	Use:   "depot <name> [<good> <qty>]...",
	Short: "Run a distributed depot node",
	Long: `Start a depot: a peer-to-peer inventory holder that exchanges goods
over a line-oriented TCP text protocol.

The depot binds an ephemeral listening port, prints it on stdout, and
runs until killed. Trailing <good> <qty> pairs seed the starting
inventory.

Examples:
  # Start a depot named "Warehouse1" with no starting inventory
  depot Warehouse1

  # Start a depot seeded with two goods
  depot Warehouse1 Nuts 100 Bolts 50`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: false,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runServe,
}

// Execute adds all child commands to the root command and runs it.
// Startup-fatal conditions print a diagnostic to stderr and exit with
// the code the condition mandates; every other error exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if ec, ok := err.(exitCoder); ok {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitCoder lets a startup error carry the specific exit code its
// condition mandates, without runServe calling os.Exit directly
// (which would make it untestable).
type exitCoder interface {
	error
	ExitCode() int
}

type startupError struct {
	code int
	msg  string
}

func (e *startupError) Error() string { return e.msg }
func (e *startupError) ExitCode() int { return e.code }

func usageErrorf(format string, args ...interface{}) error {
	return &startupError{code: exitUsage, msg: fmt.Sprintf(format, args...)}
}

func nameErrorf(format string, args ...interface{}) error {
	return &startupError{code: exitInvalidName, msg: fmt.Sprintf(format, args...)}
}

func amountErrorf(format string, args ...interface{}) error {
	return &startupError{code: exitInvalidAmount, msg: fmt.Sprintf(format, args...)}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger.Init(cfg.Name, false)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return node.StartAndBlock(cfg, cmd.OutOrStdout(), sigCh)
}

// parseArgs validates depot <name> [<good> <qty>]...,
// mapping each failure to the exit code its condition mandates.
func parseArgs(args []string) (depot.Config, error) {
	if len(args) == 0 || args[0] == "" {
		return depot.Config{}, usageErrorf("usage: depot <name> [<good> <qty>]...")
	}
	name := args[0]
	rest := args[1:]
	if len(rest)%2 != 0 {
		return depot.Config{}, usageErrorf("usage: depot <name> [<good> <qty>]... (goods must come in <name> <qty> pairs)")
	}
	if !depot.ValidName(name) {
		return depot.Config{}, nameErrorf("invalid depot name: %q", name)
	}

	seeds := make([]depot.Good, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		goodName, qtyStr := rest[i], rest[i+1]
		if !depot.ValidName(goodName) {
			return depot.Config{}, nameErrorf("invalid good name: %q", goodName)
		}
		qty, ok := depot.ParseNonNegativeInt32(qtyStr)
		if !ok {
			return depot.Config{}, amountErrorf("invalid quantity for %q: %q", goodName, qtyStr)
		}
		seeds = append(seeds, depot.Good{Name: goodName, Qty: int64(qty)})
	}

	cfg := depot.Config{Name: name, Seeds: seeds}
	if err := cfg.Validate(); err != nil {
		return depot.Config{}, nameErrorf("%v", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
