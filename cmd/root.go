package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cineca-helper",
	Short: "A CLI and TUI for Cineca university course catalogues",
	Long: `cineca-helper is an application for students of universities hosted on
coursecatalogue.cineca.it (unitn and friends) to export the courses of a
degree program to a spreadsheet, grouped by year and study plan slot.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
