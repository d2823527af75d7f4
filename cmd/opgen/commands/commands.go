package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tamasfe/opgen/pkg/util/cli"
)

var verbose bool
var silent bool
var noColors bool

var version string = "not versioned"

var rootCmd = &cobra.Command{
	Use:           "opgen",
	Short:         "OpGen generates dialect operator definitions from operator schemas",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.Verbose = verbose
		cli.Silent = silent

		color.NoColor = noColors || !isTerminal(os.Stdout.Fd())
	},
}

var versionCmd = &cobra.Command{
	Use:           "version",
	Short:         "Version of OpGen",
	Aliases:       []string{"v"},
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print verbose messages")
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "only print error messages, overwrites verbose")
	rootCmd.PersistentFlags().BoolVarP(&noColors, "no-colors", "", false, "disable colors in the output messages")

	rootCmd.AddCommand(versionCmd)
}

// Execute executes the commands.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.Failureln(err)
		os.Exit(1)
	}
}
