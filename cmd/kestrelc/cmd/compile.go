package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-lang/kestrel/internal/compiler"
	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/vm"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a module and report the registered bytecode objects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := compiler.NewContext(cfg)
		objects, err := compiler.ProcessFile(args[0], ctx)
		if err != nil {
			return err
		}
		if !cfg.Silent {
			config.PrintInfo("Info: compiled %s, %d objects registered\n", args[0], len(objects))
		}
		if cfg.Output.Listing {
			for _, o := range objects {
				if b, ok := o.(*vm.Bytecode); ok {
					fmt.Print(b.String())
				}
			}
		}
		return nil
	},
}
