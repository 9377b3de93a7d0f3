// Package cli implements the NutriQuest command-line interface using Cobra.
// Each subcommand maps to one session operation (log, status, quest, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nutriquest",
	Short: "NutriQuest — turn your food diary into a battle log",
	Long: `NutriQuest is a gamified calorie tracker.
Every meal you log strikes the day's monster, every workout heals your hero,
and staying inside your energy target clears the stage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
