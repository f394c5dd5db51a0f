package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-lang/kestrel/internal/ast"
	"github.com/kestrel-lang/kestrel/internal/compiler"
	"github.com/kestrel-lang/kestrel/internal/config"
)

var dumpStage string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the tree after a named stage (parse, identify, desugar, lift)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.ValidDumpStage(dumpStage) {
			return fmt.Errorf("unknown stage %q", dumpStage)
		}
		ctx := compiler.NewContext(cfg)
		tree, err := compiler.FrontFile(args[0], dumpStage, ctx)
		if err != nil {
			return err
		}
		fmt.Println(ast.Text(tree))
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpStage, "stage", config.StageLift, "stage to dump after")
}
