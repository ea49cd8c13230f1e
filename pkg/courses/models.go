package courses

// Lang selects which localized variant of the catalogue's bilingual fields to use
type Lang string

const (
	LangIT Lang = "it"
	LangEN Lang = "en"
)

// ParseLang validates a user-supplied language code
func ParseLang(s string) (Lang, bool) {
	switch Lang(s) {
	case LangIT, LangEN:
		return Lang(s), true
	}
	return "", false
}

// Semester is the academic period a course runs in
type Semester int

const (
	SemesterFirst Semester = iota
	SemesterSecond
	SemesterAnnual
	SemesterUnknown
)

// Label returns the display name of the semester in the given language.
// Unknown semesters render as an empty cell, like the source catalogue does.
func (s Semester) Label(lang Lang) string {
	if lang == LangEN {
		switch s {
		case SemesterFirst:
			return "First semester"
		case SemesterSecond:
			return "Second semester"
		case SemesterAnnual:
			return "Annual"
		}
		return ""
	}

	switch s {
	case SemesterFirst:
		return "Primo semestre"
	case SemesterSecond:
		return "Secondo semestre"
	case SemesterAnnual:
		return "Annuale"
	}
	return ""
}

// RawEntry is a single course fragment as scraped from one catalogue page.
// Everything is free text and any field may be empty; nothing is validated
// until Normalize runs.
type RawEntry struct {
	YearLabel     string // "1", "Anno 2", "Year 3"
	Teaching      string // subject grouping, e.g. "Matematica di base"
	Name          string // course/activity name
	SemesterLabel string // "Primo Semestre", "Second semester", "I sem", ...
	CreditsLabel  string // "6", "6.5", "6,5"
	Instructor    string
	Code          string // catalogue activity code, e.g. "145860"
	Link          string // course detail URL, or "N/A" for placeholder rows
	Source        string // page/percorso the fragment came from, for warnings
}

// Record is a validated catalogue entry. Credits and Instructor are nil when
// the source page did not carry them; no value is ever guessed.
type Record struct {
	Year       int
	Teaching   string
	Semester   Semester
	Name       string
	Credits    *float64
	Instructor *string
	Code       string
	Link       string
}

// Catalogue is the canonical course list for one degree program and academic
// year, sorted by year, teaching, semester and name. It is built once per run
// and handed straight to an exporter.
type Catalogue struct {
	University   string
	Degree       string
	AcademicYear int
	Records      []Record
	// Dropped counts raw entries discarded during normalization because they
	// were missing a usable name or year.
	Dropped int
}

// Years lists the distinct course years in ascending order, one per
// spreadsheet sheet.
func (c Catalogue) Years() []int {
	var years []int
	seen := make(map[int]bool)
	for _, r := range c.Records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	// Records are already sorted by year first
	return years
}

// RecordsForYear returns the records of one course year, preserving the
// catalogue ordering.
func (c Catalogue) RecordsForYear(year int) []Record {
	var out []Record
	for _, r := range c.Records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}
