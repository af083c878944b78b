package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/snapdriver/snapreq/packages/define"
)

var validateNoColorFlag bool

var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml> [file.yaml...]",
	Short: "Check definition files against the request schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateNoColorFlag, "no-color", false, "Disable colored output")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateNoColorFlag {
		color.NoColor = true
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	failed := 0
	for _, path := range args {
		defs, err := define.Load(path)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n    %v\n", red("✗"), path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d requests)\n", green("✓"), path, len(defs))
	}

	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
