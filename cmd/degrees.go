package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ardubev16/cineca-choice-helper/pkg/catalogue"
	"github.com/ardubev16/cineca-choice-helper/pkg/config"
	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

var degreesCmd = &cobra.Command{
	Use:   "degrees",
	Short: "List the degree programs published by a university",
	Long: `Fetch and display the degree program tree of a university as a table,
including the program codes accepted by 'cineca-helper export --degree'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		university, _ := cmd.Flags().GetString("university")
		year, _ := cmd.Flags().GetInt("year")
		langFlag, _ := cmd.Flags().GetString("lang")

		cfg, err := config.Load()
		if err != nil || cfg == nil {
			cfg = &config.AppConfig{}
		}

		if university == "" {
			university = cfg.University
		}
		if university == "" {
			return fmt.Errorf("no university configured, pass --university or run 'cineca-helper config'")
		}

		if langFlag == "" {
			langFlag = cfg.Lang
		}
		if langFlag == "" {
			langFlag = "it"
		}
		lang, ok := courses.ParseLang(langFlag)
		if !ok {
			return fmt.Errorf("unsupported language %q (want it or en)", langFlag)
		}

		if year == 0 {
			year = time.Now().Year()
		}

		client := catalogue.NewClient(university)
		var groups []catalogue.DegreeGroup
		var fetchErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Fetching degree programs from %s...", university)).
			Action(func() {
				groups, fetchErr = client.DegreeGroups(cmd.Context(), year)
			}).
			Run()

		if fetchErr != nil {
			return fmt.Errorf("failed to fetch degree programs: %w", fetchErr)
		}

		if len(groups) == 0 {
			fmt.Printf("No degree programs published by %s for %d.\n", university, year)
			return nil
		}

		// The portal shouts group and department names in all caps
		caser := cases.Title(language.Italian)
		if lang == courses.LangEN {
			caser = cases.Title(language.English)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Degree Type", "Department", "Degree Program", "Code"})

		count := 0
		for _, group := range groups {
			typeLabel := caser.String(strings.ToLower(group.Label(lang)))
			for _, dept := range group.Subgroups {
				deptLabel := caser.String(strings.ToLower(dept.Label(lang)))
				for _, prog := range dept.Programs {
					code := prog.Code()
					if code == "" {
						code = "-"
					} else {
						count++
					}

					t.AppendRow(table.Row{typeLabel, deptLabel, prog.Label(lang), code})

					// Only label the first row of each block
					typeLabel = ""
					deptLabel = ""
				}
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Printf("\n%d exportable degree programs. Use a code with 'cineca-helper export -d CODE'.\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(degreesCmd)

	degreesCmd.Flags().StringP("university", "u", "", "University subdomain on coursecatalogue.cineca.it (default from config)")
	degreesCmd.Flags().IntP("year", "y", 0, "Academic year, e.g. 2025 for 2025/2026 (defaults to the current year)")
	degreesCmd.Flags().StringP("lang", "l", "", "Catalogue language: it or en (default from config)")
}
