package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tamasfe/opgen/cmd/opgen/config"
	"github.com/tamasfe/opgen/cmd/opgen/generate"
	"github.com/tamasfe/opgen/pkg/util/cli"
)

func init() {
	genOpts := &config.GenerateOptions{}

	var success bool

	generateCmd := &cobra.Command{
		Use:          "generate [flags] [schema files]",
		Short:        "Generate the operator definitions",
		Aliases:      []string{"gen"},
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if success {
				cli.Successln("All done!")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := generate.LoadOptions(genOpts, os.Stdin, args)
			if err != nil {
				return err
			}

			res, err := generate.Generate(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			cli.Infof("Generated %v operators.\n", len(res.Symbols))

			success = true
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&genOpts.ConfigPath, "config", "c", "", "path to the configuration file or - for stdin")
	generateCmd.Flags().StringVarP(&genOpts.Namespaces, "namespaces", "n", "", "comma separated namespaces of the generated code, outermost first")
	generateCmd.Flags().StringVarP(&genOpts.Dialect, "dialect", "d", "", "name of the dialect")
	generateCmd.Flags().StringVarP(&genOpts.HeaderFile, "header", "H", "", "path of the generated header")
	generateCmd.Flags().StringVarP(&genOpts.SourceFile, "source", "S", "", "path of the generated source")

	rootCmd.AddCommand(generateCmd)
}
