package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardubev16/cineca-choice-helper/pkg/catalogue"
	"github.com/ardubev16/cineca-choice-helper/pkg/config"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set University", "university"),
						huh.NewOption("Set Catalogue Language", "language"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		if action == "back" {
			return nil
		}

		if action == "theme" {
			err = runSetThemeTUI(cfg)
		} else if action == "university" {
			err = runSetUniversityTUI(cfg)
		} else if action == "language" {
			err = runSetLanguageTUI(cfg)
		} else if action == "view" {
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.cineca-helper.json) ---"))
			fmt.Printf("University: %s\n", cfg.University)
			fmt.Printf("Catalogue Language: %s\n", cfg.Lang)

			if cfg.LastProgram == "" {
				fmt.Println("Last Exported Program: None yet")
			} else {
				fmt.Printf("Last Exported Program: %s\n", cfg.LastProgram)
			}

			if cfg.LastPath != "" {
				fmt.Printf("Last Study Path: %s\n", cfg.LastPath)
			}

			fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func runSetUniversityTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your university's catalogue subdomain").
				Description("The {name} part of {name}.coursecatalogue.cineca.it.").
				Placeholder("e.g. unitn or unimi...").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		fmt.Println("Operation cancelled: No university provided.")
		return nil
	}

	client := catalogue.NewClient(input)
	var groups []catalogue.DegreeGroup
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Checking %s.coursecatalogue.cineca.it...", input)).
		Action(func() {
			groups, fetchErr = client.DegreeGroups(context.Background(), time.Now().Year())
		}).
		Run()

	if fetchErr != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("❌ Could not reach a catalogue for '%s': %v", input, fetchErr)))
		return nil
	}

	cfg.University = client.University()
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Successfully saved university: %s (%d degree types published)\n", cfg.University, len(groups))))
	return nil
}

func runSetLanguageTUI(cfg *config.AppConfig) error {
	selected := cfg.Lang

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select the default catalogue language").
				Options(
					huh.NewOption("Italiano", "it"),
					huh.NewOption("English", "en"),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Lang = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default catalogue language changed to: %s\n", selected)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for cineca-helper").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Cineca Blue", colorBlock("39")), "39"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Espresso Orange", colorBlock("214")), "214"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Beautiful! The theme color is now saved.\n"))
	return nil
}
