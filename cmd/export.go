package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/ardubev16/cineca-choice-helper/pkg/catalogue"
	"github.com/ardubev16/cineca-choice-helper/pkg/config"
	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
	"github.com/ardubev16/cineca-choice-helper/pkg/exporter"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export a course catalogue to a spreadsheet",
	Long: `Export the catalogue of a degree program to an .xlsx or .csv file without
using the interactive TUI. Degree program codes can be found with
'cineca-helper degrees'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		university, _ := cmd.Flags().GetString("university")
		degree, _ := cmd.Flags().GetString("degree")
		year, _ := cmd.Flags().GetInt("year")
		langFlag, _ := cmd.Flags().GetString("lang")
		pathFilter, _ := cmd.Flags().GetString("path")
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		onDuplicate, _ := cmd.Flags().GetString("on-duplicate")
		inputs, _ := cmd.Flags().GetStringArray("input")

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

		merge, err := courses.ParseMergeStrategy(onDuplicate)
		if err != nil {
			return err
		}

		if format != "auto" && format != "xlsx" && format != "csv" {
			return fmt.Errorf("unknown format %q (want xlsx, csv or auto)", format)
		}

		if degree == "" && len(inputs) == 0 {
			return fmt.Errorf("must specify a degree program using --degree, or saved pages using --input")
		}

		client := catalogue.NewClient(university)
		university = client.University()

		var pages []catalogue.Page

		// Local pages first: a dead network should not stop an --input run.
		for _, path := range inputs {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Printf("⚠ Skipping %s: %v\n", path, err)
				continue
			}
			pages = append(pages, catalogue.Page{Source: path, Content: data})
		}

		if degree != "" {
			var page catalogue.Page
			var fetchErr error

			_ = spinner.New().
				Title(fmt.Sprintf("Fetching the %s catalogue for %d...", degree, year)).
				Action(func() {
					page, fetchErr = client.Catalogue(cmd.Context(), year, degree)
				}).
				Run()

			if fetchErr != nil {
				if len(pages) == 0 {
					return fmt.Errorf("failed to fetch the catalogue: %w", fetchErr)
				}
				fmt.Printf("⚠ Skipping the network catalogue: %v\n", fetchErr)
			} else {
				pages = append(pages, page)
			}
		}

		if len(pages) == 0 {
			return fmt.Errorf("no catalogue pages could be loaded")
		}

		extraction, warnings := catalogue.ExtractAll(pages, catalogue.Options{
			University: university,
			Lang:       lang,
			Path:       pathFilter,
		})
		for _, warn := range warnings {
			fmt.Printf("⚠ %v\n", warn)
		}

		cat, err := courses.Normalize(extraction.Entries, courses.Options{
			University:   university,
			Degree:       degree,
			AcademicYear: year,
			Merge:        merge,
		})
		if err != nil {
			return fmt.Errorf("no usable course data: %w", err)
		}

		if cat.Dropped > 0 {
			fmt.Printf("⚠ Dropped %d incomplete course entries\n", cat.Dropped)
		}

		if format == "auto" {
			if strings.HasSuffix(output, ".csv") {
				format = "csv"
			} else {
				format = "xlsx"
			}
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if format == "csv" {
			err = exporter.GenerateCSV(cat, lang, file)
		} else {
			err = exporter.GenerateXLSX(cat, lang, file)
		}
		if err != nil {
			return fmt.Errorf("failed to generate the spreadsheet: %w", err)
		}

		fmt.Printf("Successfully exported %d courses to %s\n", len(cat.Records), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("university", "u", "", "University subdomain on coursecatalogue.cineca.it (default from config)")
	exportCmd.Flags().StringP("degree", "d", "", "Degree program code to export (e.g. 0514G)")
	exportCmd.Flags().IntP("year", "y", 0, "Academic year, e.g. 2025 for 2025/2026 (defaults to the current year)")
	exportCmd.Flags().StringP("lang", "l", "", "Catalogue language: it or en (default from config)")
	exportCmd.Flags().StringP("path", "p", "", "Study path id or name, exports every path when empty")
	exportCmd.Flags().StringP("output", "o", "courses.xlsx", "Output file path")
	exportCmd.Flags().String("format", "auto", "Output format: xlsx, csv or auto (by extension)")
	exportCmd.Flags().String("on-duplicate", "complete", "Which duplicate course entry wins: complete, first or last")
	exportCmd.Flags().StringArray("input", nil, "Extract from a saved catalogue page (JSON or HTML) instead of the network; repeatable")
}
