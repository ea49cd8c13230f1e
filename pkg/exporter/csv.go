package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

// utf8BOM keeps Excel from mangling accented course names when it sniffs the
// file encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// GenerateCSV writes the catalogue as a flat CSV to the provided writer. The
// course year becomes an explicit first column since CSV has no sheets.
func GenerateCSV(cat courses.Catalogue, lang courses.Lang, w io.Writer) error {
	if len(cat.Records) == 0 {
		return courses.ErrNoCourses
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("could not write BOM: %w", err)
	}

	cw := csv.NewWriter(w)

	yearHeader := "Anno"
	if lang == courses.LangEN {
		yearHeader = "Year"
	}
	if err := cw.Write(append([]string{yearHeader}, headers(lang)...)); err != nil {
		return err
	}

	for _, rec := range cat.Records {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.Teaching,
			rec.Name,
			rec.Semester.Label(lang),
			displayCredits(rec),
			displayInstructor(rec),
			rec.Link,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
