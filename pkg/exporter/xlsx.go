package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

// headers returns the column headers in the export language. The year is not
// a column in the workbook since every sheet holds a single course year.
func headers(lang courses.Lang) []string {
	if lang == courses.LangEN {
		return []string{"Teaching", "Name", "Semester", "CFU", "Lecturer", "Link"}
	}
	return []string{"Insegnamento", "Nome", "Semestre", "CFU", "Docente", "Link"}
}

func sheetName(lang courses.Lang, year int) string {
	if lang == courses.LangEN {
		return fmt.Sprintf("Year %d", year)
	}
	return fmt.Sprintf("Anno %d", year)
}

func displayCredits(r courses.Record) string {
	if r.Credits == nil {
		return ""
	}
	return strconv.FormatFloat(*r.Credits, 'f', -1, 64)
}

func displayInstructor(r courses.Record) string {
	if r.Instructor == nil {
		return ""
	}
	return *r.Instructor
}

// isHyperlink reports whether the record can be rendered as a clickable
// formula showing its course code
func isHyperlink(r courses.Record) bool {
	return r.Code != "" && strings.HasPrefix(r.Link, "http")
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// GenerateXLSX writes the catalogue as a workbook with one sheet per course
// year to the provided writer
func GenerateXLSX(cat courses.Catalogue, lang courses.Lang, w io.Writer) error {
	if len(cat.Records) == 0 {
		return courses.ErrNoCourses
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("could not create header style: %w", err)
	}

	cols := headers(lang)

	for i, year := range cat.Years() {
		sheet := sheetName(lang, year)
		if i == 0 {
			// Rename the default sheet instead of leaving it empty
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}

		widths := make([]int, len(cols))
		for c, h := range cols {
			if err := f.SetCellValue(sheet, cellName(c+1, 1), h); err != nil {
				return err
			}
			widths[c] = len(h)
		}
		if err := f.SetCellStyle(sheet, "A1", cellName(len(cols), 1), bold); err != nil {
			return err
		}

		for r, rec := range cat.RecordsForYear(year) {
			row := r + 2
			values := []string{
				rec.Teaching,
				rec.Name,
				rec.Semester.Label(lang),
				displayCredits(rec),
				displayInstructor(rec),
			}
			for c, v := range values {
				if err := f.SetCellValue(sheet, cellName(c+1, row), v); err != nil {
					return err
				}
				if len(v) > widths[c] {
					widths[c] = len(v)
				}
			}

			linkCol := len(values)
			display := rec.Link
			if isHyperlink(rec) {
				formula := fmt.Sprintf(`HYPERLINK("%s","%s")`, rec.Link, rec.Code)
				if err := f.SetCellFormula(sheet, cellName(linkCol+1, row), formula); err != nil {
					return err
				}
				display = rec.Code
			} else if rec.Link != "" {
				if err := f.SetCellValue(sheet, cellName(linkCol+1, row), rec.Link); err != nil {
					return err
				}
			}
			if len(display) > widths[linkCol] {
				widths[linkCol] = len(display)
			}
		}

		// Fit each column to its longest visible value, header included
		for c, width := range widths {
			name, _ := excelize.ColumnNumberToName(c + 1)
			if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}

	return nil
}
