package catalogue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

func TestTextUnmarshal(t *testing.T) {
	var doc struct {
		Str   Text `json:"str"`
		Int   Text `json:"int"`
		Float Text `json:"float"`
		Null  Text `json:"null"`
	}

	err := json.Unmarshal([]byte(`{"str": "0514G", "int": 2025, "float": 6.5, "null": null}`), &doc)
	require.NoError(t, err)
	require.Equal(t, "0514G", doc.Str.String())
	require.Equal(t, "2025", doc.Int.String())
	require.Equal(t, "6.5", doc.Float.String())
	require.Empty(t, doc.Null.String())
}

func TestLabelFallback(t *testing.T) {
	group := DegreeGroup{DesIT: "Corsi di Laurea", DesEN: "Bachelor Programmes"}
	require.Equal(t, "Corsi di Laurea", group.Label(courses.LangIT))
	require.Equal(t, "Bachelor Programmes", group.Label(courses.LangEN))

	// Missing translations fall back to whichever label exists
	onlyIT := Department{DesIT: "Dipartimento di Matematica"}
	require.Equal(t, "Dipartimento di Matematica", onlyIT.Label(courses.LangEN))

	onlyEN := Department{DesEN: "Department of Physics"}
	require.Equal(t, "Department of Physics", onlyEN.Label(courses.LangIT))
}

func TestDegreeProgramCode(t *testing.T) {
	program := DegreeProgram{Variants: []ProgramVariant{{Cod: "0514G"}, {Cod: "0514G-2"}}}
	require.Equal(t, "0514G", program.Code())

	require.Empty(t, DegreeProgram{}.Code())
}

func TestLecturerNames(t *testing.T) {
	act := Activity{Lecturers: []Lecturer{
		{Surname: "ROSSI", Name: "MARIO"},
		{},
		{Surname: "BIANCHI"},
	}}

	require.Equal(t, "MARIO ROSSI, BIANCHI", act.LecturerNames())
	require.Empty(t, Activity{}.LecturerNames())
}
