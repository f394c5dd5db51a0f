// Package cmd implements the command line interface of the compiler.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-lang/kestrel/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config

	// flag overrides applied on top of the loaded configuration
	silentMode   bool
	debugMode    bool
	tracePasses  bool
	listBytecode bool
)

var rootCmd = &cobra.Command{
	Use:   "kestrelc",
	Short: "Compiler for the kestrel combinator language.",
	Long: `kestrelc compiles kestrel modules into bytecode for the register
graph-reduction machine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			loaded, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			cfg = loaded
			applyFlagOverrides(cfg, cmd)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// applyFlagOverrides overrides config values with flags the user set
// explicitly.
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("silent") {
		cfg.Silent = silentMode
	}
	if cmd.Flags().Changed("debug") {
		cfg.DebugMode = debugMode
	}
	if cmd.Flags().Changed("trace-passes") {
		cfg.Trace.Passes = tracePasses
	}
	if cmd.Flags().Changed("listing") {
		cfg.Output.Listing = listBytecode
	}
}

// Execute runs the root command; called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./kestrel.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&silentMode, "silent", "s", false, "Suppress informational output (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable verbose debug output (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&tracePasses, "trace-passes", false, "Print the tree after every pass (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&listBytecode, "listing", false, "Disassemble the emitted bytecode (overrides config)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
}
