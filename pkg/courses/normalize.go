package courses

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrNoCourses is returned when normalization finishes with zero usable
// records, meaning the whole run found nothing worth writing.
var ErrNoCourses = errors.New("no valid course records found")

// MergeStrategy decides which entry survives when two raw entries describe
// the same (year, teaching, semester, name) course.
type MergeStrategy int

const (
	// PreferComplete keeps the entry with more populated optional fields
	// (credits, instructor) and falls back to the first one seen on ties.
	PreferComplete MergeStrategy = iota
	// PreferFirst always keeps the first entry encountered.
	PreferFirst
	// PreferLast always keeps the last entry encountered.
	PreferLast
)

// ParseMergeStrategy maps the --on-duplicate flag values to a strategy
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch s {
	case "complete", "":
		return PreferComplete, nil
	case "first":
		return PreferFirst, nil
	case "last":
		return PreferLast, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q (want complete, first or last)", s)
}

// Options identifies the run a Catalogue is being built for. University,
// Degree and AcademicYear are stamped onto the result untouched.
type Options struct {
	University   string
	Degree       string
	AcademicYear int
	Merge        MergeStrategy
}

// semesterLabels is the fixed mapping from catalogue period labels to the
// closed semester set. Keys are casefolded with whitespace collapsed; any
// label not listed here normalizes to SemesterUnknown.
var semesterLabels = map[string]Semester{
	"primo semestre":      SemesterFirst,
	"1 semestre":          SemesterFirst,
	"i semestre":          SemesterFirst,
	"i sem":               SemesterFirst,
	"first semester":      SemesterFirst,
	"1st semester":        SemesterFirst,
	"semester 1":          SemesterFirst,
	"secondo semestre":    SemesterSecond,
	"2 semestre":          SemesterSecond,
	"ii semestre":         SemesterSecond,
	"ii sem":              SemesterSecond,
	"second semester":     SemesterSecond,
	"2nd semester":        SemesterSecond,
	"semester 2":          SemesterSecond,
	"annuale":             SemesterAnnual,
	"ciclo annuale unico": SemesterAnnual,
	"anno unico":          SemesterAnnual,
	"annual":              SemesterAnnual,
	"full year":           SemesterAnnual,
}

// foldCase casefolds a string for comparisons. A fresh Caser each time: they
// are stateful and must not be shared.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// collapse trims an entry field and squeezes internal whitespace runs down to
// single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseSemester maps a free-text period label onto the closed semester set
func ParseSemester(label string) Semester {
	key := foldCase(collapse(label))
	// Degree signs and trailing dots show up inconsistently across
	// universities ("1° Semestre", "I sem.")
	key = strings.Map(func(r rune) rune {
		if r == '°' || r == '.' {
			return -1
		}
		return r
	}, key)
	key = collapse(key)
	if sem, ok := semesterLabels[key]; ok {
		return sem
	}
	return SemesterUnknown
}

// parseYearLabel pulls the course year out of labels like "2", "Anno 2" or
// "Year 2". Only positive years are usable.
func parseYearLabel(label string) (int, bool) {
	start := -1
	for i, r := range label {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	year, err := strconv.Atoi(label[start:end])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// parseCredits accepts both dot and comma decimal separators. Negative or
// unparseable values count as absent.
func parseCredits(label string) *float64 {
	label = strings.ReplaceAll(collapse(label), ",", ".")
	if label == "" {
		return nil
	}
	v, err := strconv.ParseFloat(label, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// completeness counts the populated optional fields used to pick a winner
// among duplicate entries.
func completeness(r Record) int {
	n := 0
	if r.Credits != nil {
		n++
	}
	if r.Instructor != nil {
		n++
	}
	return n
}

// dedupeKey identifies a record regardless of casing differences between the
// listings it appeared in.
func dedupeKey(r Record) string {
	return fmt.Sprintf("%d|%s|%d|%s", r.Year, foldCase(r.Teaching), r.Semester, foldCase(r.Name))
}

// Normalize turns the raw entries collected from every page of a run into the
// canonical catalogue: fields trimmed, semesters mapped onto the closed set,
// numbers coerced, duplicates collapsed and the result sorted by year,
// teaching, semester and name. Entries without a usable name or year are
// dropped and counted. It returns ErrNoCourses when nothing survives.
func Normalize(entries []RawEntry, opts Options) (Catalogue, error) {
	cat := Catalogue{
		University:   opts.University,
		Degree:       opts.Degree,
		AcademicYear: opts.AcademicYear,
	}

	index := make(map[string]int)
	for _, e := range entries {
		name := collapse(e.Name)
		if name == "" {
			cat.Dropped++
			continue
		}
		year, ok := parseYearLabel(e.YearLabel)
		if !ok {
			cat.Dropped++
			continue
		}

		teaching := collapse(e.Teaching)
		if teaching == "" {
			// A course listed outside any grouping is its own teaching
			teaching = name
		}

		rec := Record{
			Year:     year,
			Teaching: teaching,
			Semester: ParseSemester(e.SemesterLabel),
			Name:     name,
			Credits:  parseCredits(e.CreditsLabel),
			Code:     collapse(e.Code),
			Link:     strings.TrimSpace(e.Link),
		}
		if instructor := collapse(e.Instructor); instructor != "" {
			rec.Instructor = &instructor
		}

		key := dedupeKey(rec)
		prev, seen := index[key]
		if !seen {
			index[key] = len(cat.Records)
			cat.Records = append(cat.Records, rec)
			continue
		}

		switch opts.Merge {
		case PreferFirst:
			// keep what we have
		case PreferLast:
			cat.Records[prev] = rec
		default:
			if completeness(rec) > completeness(cat.Records[prev]) {
				cat.Records[prev] = rec
			}
		}
	}

	if len(cat.Records) == 0 {
		return cat, ErrNoCourses
	}

	sort.SliceStable(cat.Records, func(i, j int) bool {
		a, b := cat.Records[i], cat.Records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if at, bt := foldCase(a.Teaching), foldCase(b.Teaching); at != bt {
			return at < bt
		}
		if a.Semester != b.Semester {
			return a.Semester < b.Semester
		}
		return foldCase(a.Name) < foldCase(b.Name)
	})

	return cat, nil
}
