package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "snapreq",
	Short: "Synthesize HTTP requests for handler tests",
	Long: `snapreq builds in-memory HTTP requests from YAML definitions:
method, URI, parameters, file uploads, headers, and body resolve into a
fully encoded request without touching the network. Use it to inspect the
exact bytes your handler tests will see.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
