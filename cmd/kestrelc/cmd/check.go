package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kestrel-lang/kestrel/internal/compiler"
	"github.com/kestrel-lang/kestrel/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the front end without emitting code, reporting errors only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := compiler.NewContext(cfg)
		if _, err := compiler.FrontFile(args[0], config.StageLift, ctx); err != nil {
			return err
		}
		if !cfg.Silent {
			config.PrintInfo("Info: %s checks\n", args[0])
		}
		return nil
	},
}
