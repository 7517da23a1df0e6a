package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mkarvon/sleuthline/cmd/cli/cases"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(cases.Group)
	rootCmd.AddCommand(cases.Validate)
	rootCmd.AddCommand(cases.Load)
}

var rootCmd = &cobra.Command{
	Use:  "sleuthline-cli",
	Long: `Command line utilities for Sleuthline https://github.com/mkarvon/sleuthline`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
