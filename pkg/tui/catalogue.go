package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/ardubev16/cineca-choice-helper/pkg/catalogue"
	"github.com/ardubev16/cineca-choice-helper/pkg/config"
	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
	"github.com/ardubev16/cineca-choice-helper/pkg/exporter"
)

// labelled is satisfied by every level of the degree tree, so a single
// select form can walk groups, departments and programs.
type labelled interface {
	Label(lang courses.Lang) string
}

func selectOne[T labelled](title string, items []T, lang courses.Lang, initial int) (T, error) {
	if initial < 0 || initial >= len(items) {
		initial = 0
	}
	idx := initial

	options := make([]huh.Option[int], 0, len(items))
	for i, item := range items {
		options = append(options, huh.NewOption(item.Label(lang), i))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(&idx),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		var zero T
		return zero, err
	}

	return items[idx], nil
}

// programIndex locates the program carrying the given code, so the select can
// start from the pick of the previous run. Unknown codes land on the first entry.
func programIndex(programs []catalogue.DegreeProgram, code string) int {
	if code == "" {
		return 0
	}
	for i, p := range programs {
		if p.Code() == code {
			return i
		}
	}
	return 0
}

// RunCatalogueTUI walks the user from university down to a single degree
// program and exports its catalogue to a spreadsheet.
func RunCatalogueTUI() error {
	fmt.Println(accentStyle.Render("Welcome to the Cineca course catalogue exporter!"))
	fmt.Println("Pick a degree program and I will build a spreadsheet of its courses, grouped by year.")

	cfg, err := config.Load()
	if err != nil || cfg == nil {
		cfg = &config.AppConfig{}
	}

	university := cfg.University
	yearStr := strconv.Itoa(time.Now().Year())
	langStr := cfg.Lang
	if langStr == "" {
		langStr = "it"
	}

	setupForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("University subdomain").
				Description("The {name} part of {name}.coursecatalogue.cineca.it").
				Value(&university).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("university cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Title("Academic year").
				Description("The year the academic year starts in, e.g. 2025 for 2025/2026").
				Value(&yearStr).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("year must be a number")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Catalogue language").
				Options(
					huh.NewOption("Italiano", "it"),
					huh.NewOption("English", "en"),
				).
				Value(&langStr),
		),
	).WithTheme(GetTheme())

	if err := setupForm.Run(); err != nil {
		return err
	}

	year, _ := strconv.Atoi(strings.TrimSpace(yearStr))
	lang, _ := courses.ParseLang(langStr)

	client := catalogue.NewClient(university)
	university = client.University()
	ctx := context.Background()

	var groups []catalogue.DegreeGroup

	_ = spinner.New().
		Title(fmt.Sprintf("Fetching degree programs from %s...", university)).
		Action(func() {
			groups, err = client.DegreeGroups(ctx, year)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("failed to fetch degree programs: %w", err)
	}

	if len(groups) == 0 {
		fmt.Println(errorStyle.Render("❌ No degree programs published for this year!"))
		return nil
	}

	group, err := selectOne("Select the degree type", groups, lang, 0)
	if err != nil {
		return err
	}

	if len(group.Subgroups) == 0 {
		fmt.Println(errorStyle.Render("❌ This degree type has no departments!"))
		return nil
	}

	department, err := selectOne("Select the department", group.Subgroups, lang, 0)
	if err != nil {
		return err
	}

	// Programs without a published code cannot be looked up, so hide them.
	programs := make([]catalogue.DegreeProgram, 0, len(department.Programs))
	for _, p := range department.Programs {
		if p.Code() != "" {
			programs = append(programs, p)
		}
	}

	if len(programs) == 0 {
		fmt.Println(errorStyle.Render("❌ This department has no selectable degree programs!"))
		return nil
	}

	// Start from the program exported last time, when it is still offered here.
	program, err := selectOne("Select the degree program", programs, lang, programIndex(programs, cfg.LastProgram))
	if err != nil {
		return err
	}

	programCod := program.Code()

	var page catalogue.Page

	_ = spinner.New().
		Title("Fetching the course catalogue...").
		Action(func() {
			page, err = client.Catalogue(ctx, year, programCod)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("failed to fetch the catalogue: %w", err)
	}

	paths, err := catalogue.StudyPaths(page)
	if err != nil {
		return err
	}

	pathChoice := ""
	if len(paths) > 1 {
		// Preselect the path picked last time, if it still exists.
		for _, p := range paths {
			if p.ID.String() != "" && p.ID.String() == cfg.LastPath {
				pathChoice = cfg.LastPath
			}
		}

		options := []huh.Option[string]{huh.NewOption("All study paths", "")}
		for _, p := range paths {
			options = append(options, huh.NewOption(p.Label(lang), p.ID.String()))
		}

		pathForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Select the study path").
					Options(options...).
					Value(&pathChoice),
			),
		).WithTheme(GetTheme())

		if err := pathForm.Run(); err != nil {
			return err
		}
	}

	outputFile := "courses.xlsx"

	outputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter output filename").
				Description("Use a .csv extension for a flat CSV instead of a workbook").
				Value(&outputFile).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("filename cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := outputForm.Run(); err != nil {
		return err
	}

	outputFile = strings.TrimSpace(outputFile)
	if !strings.HasSuffix(outputFile, ".xlsx") && !strings.HasSuffix(outputFile, ".csv") {
		outputFile += ".xlsx"
	}

	extraction, err := catalogue.Extract(page, catalogue.Options{
		University: university,
		Lang:       lang,
		Path:       pathChoice,
	})
	if err != nil {
		return fmt.Errorf("failed to read the catalogue: %w", err)
	}

	if extraction.Skipped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Skipped %d unreadable rows in %s", extraction.Skipped, extraction.Source)))
	}

	cat, err := courses.Normalize(extraction.Entries, courses.Options{
		University:   university,
		Degree:       programCod,
		AcademicYear: year,
	})
	if err != nil {
		if errors.Is(err, courses.ErrNoCourses) {
			fmt.Println(errorStyle.Render("❌ No courses found for this selection!"))
			return nil
		}
		return err
	}

	if cat.Dropped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Dropped %d incomplete course entries", cat.Dropped)))
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(outputFile, ".csv") {
		err = exporter.GenerateCSV(cat, lang, file)
	} else {
		err = exporter.GenerateXLSX(cat, lang, file)
	}
	if err != nil {
		return fmt.Errorf("failed to generate the spreadsheet: %w", err)
	}

	// Remember the selections so the next run starts from them.
	cfg.University = university
	cfg.Lang = string(lang)
	cfg.LastProgram = programCod
	cfg.LastPath = pathChoice
	if err := config.Save(cfg); err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Could not save settings: %v", err)))
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Exported %d courses across %d years to %s", len(cat.Records), len(cat.Years()), outputFile)))
	fmt.Println("Open the file in your spreadsheet editor and start planning!")

	return nil
}
