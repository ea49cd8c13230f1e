package catalogue

import (
	"encoding/json"
	"strings"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

// Text is a JSON scalar that the catalogue API emits inconsistently: the same
// field can arrive as a string or as a bare number depending on the endpoint.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	// Numbers keep their literal form so codes like 2025 round-trip unchanged
	*t = Text(data)
	return nil
}

func (t Text) String() string {
	return string(t)
}

// pick chooses the label matching the requested language, falling back to the
// other one when the portal left it empty.
func pick(lang courses.Lang, it, en string) string {
	if lang == courses.LangEN && en != "" {
		return en
	}
	if it == "" {
		return en
	}
	return it
}

// DegreeGroup is a top level entry of the degree tree ("Corsi di Laurea",
// "Corsi di Laurea Magistrale", ...).
type DegreeGroup struct {
	DesIT     string       `json:"des_it"`
	DesEN     string       `json:"des_en"`
	Subgroups []Department `json:"subgroups"`
}

func (g DegreeGroup) Label(lang courses.Lang) string {
	return pick(lang, g.DesIT, g.DesEN)
}

// Department groups the degree programs offered by a single department
type Department struct {
	DesIT    string          `json:"des_it"`
	DesEN    string          `json:"des_en"`
	Programs []DegreeProgram `json:"cds"`
}

func (d Department) Label(lang courses.Lang) string {
	return pick(lang, d.DesIT, d.DesEN)
}

// DegreeProgram is a single degree program. The portal nests the actual
// program code one level deeper, inside its cdsSub variants.
type DegreeProgram struct {
	DesIT    string           `json:"des_it"`
	DesEN    string           `json:"des_en"`
	Variants []ProgramVariant `json:"cdsSub"`
}

func (p DegreeProgram) Label(lang courses.Lang) string {
	return pick(lang, p.DesIT, p.DesEN)
}

// Code returns the program code used by the catalogue endpoint, taken from
// the first variant. Programs without variants have no usable code.
func (p DegreeProgram) Code() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].Cod.String()
}

type ProgramVariant struct {
	Cod Text `json:"cod"`
}

// StudyPath is one "percorso" of a degree program, holding the study plan
// split by course year.
type StudyPath struct {
	ID    Text        `json:"id"`
	DesIT string      `json:"des_it"`
	DesEN string      `json:"des_en"`
	Years []YearBlock `json:"anni"`
}

func (p StudyPath) Label(lang courses.Lang) string {
	return pick(lang, p.DesIT, p.DesEN)
}

type YearBlock struct {
	Year      Text       `json:"anno"`
	Teachings []Teaching `json:"insegnamenti"`
}

// Teaching is a study plan slot. Its activities are the concrete courses a
// student can pick to fill it; some slots are published with none.
type Teaching struct {
	LabelIT    string     `json:"label_it"`
	LabelEN    string     `json:"label_en"`
	Activities []Activity `json:"attivita"`
}

func (t Teaching) Label(lang courses.Lang) string {
	return pick(lang, t.LabelIT, t.LabelEN)
}

// Activity is a concrete course offering. It carries every path segment
// needed to rebuild its public catalogue URL.
type Activity struct {
	DesIT    string `json:"des_it"`
	DesEN    string `json:"des_en"`
	PeriodIT string `json:"periodo_didattico_it"`
	PeriodEN string `json:"periodo_didattico_en"`
	Credits  Text   `json:"crediti"`

	Cod           Text `json:"cod"`
	AA            Text `json:"aa"`
	OrdinamentoAA Text `json:"ordinamento_aa"`
	PathID        Text `json:"corso_percorso_id"`
	CourseCod     Text `json:"corso_cod"`

	Lecturers []Lecturer `json:"docenti"`
}

func (a Activity) Name(lang courses.Lang) string {
	return pick(lang, a.DesIT, a.DesEN)
}

func (a Activity) Period(lang courses.Lang) string {
	return pick(lang, a.PeriodIT, a.PeriodEN)
}

type Lecturer struct {
	Surname string `json:"cognome"`
	Name    string `json:"nome"`
}

// LecturerNames joins the lecturers of an activity into a single display
// string, skipping entries the portal left blank.
func (a Activity) LecturerNames() string {
	var names []string
	for _, l := range a.Lecturers {
		full := strings.TrimSpace(l.Name + " " + l.Surname)
		if full != "" {
			names = append(names, full)
		}
	}
	return strings.Join(names, ", ")
}

// Page is a fetched catalogue document before extraction. Source records
// where it came from (URL or file path) for error reporting.
type Page struct {
	Source  string
	Content []byte
}
