package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ardubev16/cineca-choice-helper/pkg/catalogue"
	"github.com/ardubev16/cineca-choice-helper/pkg/config"
	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
	"github.com/ardubev16/cineca-choice-helper/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cineca-helper configuration",
	Long:  "View or edit your local configuration settings (university subdomain, catalogue language, accent color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setUniversity, _ := cmd.Flags().GetString("set-university")
		setLang, _ := cmd.Flags().GetString("set-lang")

		changed := false

		if setUniversity != "" {
			fmt.Printf("Checking %s.coursecatalogue.cineca.it...\n", setUniversity)

			// Verify against the catalogue API so typos never end up in the config
			client := catalogue.NewClient(setUniversity)
			groups, err := client.DegreeGroups(cmd.Context(), time.Now().Year())
			if err != nil {
				return fmt.Errorf("could not reach a catalogue for %q: %w", setUniversity, err)
			}

			cfg.University = client.University()
			changed = true
			fmt.Printf("✅ University successfully saved as: %s (%d degree types published)\n", cfg.University, len(groups))
		}

		if setLang != "" {
			if _, ok := courses.ParseLang(setLang); !ok {
				return fmt.Errorf("unsupported language %q (want it or en)", setLang)
			}

			cfg.Lang = setLang
			changed = true
			fmt.Printf("✅ Catalogue language successfully saved as: %s\n", setLang)
		}

		if changed {
			return config.Save(cfg)
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-university", "s", "", "Set your university's catalogue subdomain (e.g. unitn)")
	configCmd.Flags().String("set-lang", "", "Set the default catalogue language: it or en")
}
