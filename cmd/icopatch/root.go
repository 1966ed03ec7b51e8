package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/icopatch/internal/logger"
	"github.com/joshuapare/icopatch/pkg/exeicon"
	"github.com/joshuapare/icopatch/rsrc"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	logDir      string
	langID      uint16
	backendName string
	ceiling     int
)

// newStore returns the persistence used by every command. Tests swap it.
var newStore = func() rsrc.Store { return rsrc.ExeStore{} }

var rootCmd = &cobra.Command{
	Use:   "icopatch",
	Short: "Set, add and remove icons in Windows executables",
	Long: `icopatch rewrites the icon resources of an already built Windows
executable. It can replace the primary icon, append extra icon groups,
strip every icon, and build .ico files from ordinary images.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
	rootCmd.PersistentFlags().
		Uint16Var(&langID, "lang", rsrc.DefaultOptions().Lang, "Language id for written resources (e.g. 0x0409, 0 for neutral)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "portable", "Resource backend (portable, native)")
	rootCmd.PersistentFlags().
		IntVar(&ceiling, "ceiling", rsrc.DefaultScanCeiling, "Exclusive upper bound of resource id scans")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func initLogging() error {
	opts := logger.Options{Enabled: logDir != "", LogDir: logDir}
	if verbose && !quiet {
		opts.Level = slog.LevelDebug
		opts.Stderr = os.Stderr
	}
	return logger.Init(opts)
}

// operationOptions builds exeicon options from the global flags.
func operationOptions(backup, dryRun bool) (*exeicon.Options, error) {
	backend, ok := rsrc.ParseBackend(backendName)
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (want portable or native)", backendName)
	}
	opts := exeicon.DefaultOptions()
	opts.Lang = langID
	opts.NeutralLang = langID == 0
	opts.ScanCeiling = ceiling
	opts.Backend = backend
	opts.Store = newStore()
	opts.CreateBackup = backup
	opts.DryRun = dryRun
	return &opts, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
