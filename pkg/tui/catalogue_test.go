package tui

import (
	"testing"

	"github.com/ardubev16/cineca-choice-helper/pkg/catalogue"
)

func TestProgramIndexRemembersLastExport(t *testing.T) {
	programs := []catalogue.DegreeProgram{
		{DesIT: "FISICA", Variants: []catalogue.ProgramVariant{{Cod: "0512G"}}},
		{DesIT: "INFORMATICA", Variants: []catalogue.ProgramVariant{{Cod: "0514G"}}},
		{DesIT: "MATEMATICA"},
	}

	if got := programIndex(programs, "0514G"); got != 1 {
		t.Errorf("expected the remembered program at index 1, got %d", got)
	}
	if got := programIndex(programs, ""); got != 0 {
		t.Errorf("expected no remembered program to fall back to index 0, got %d", got)
	}
	if got := programIndex(programs, "9999X"); got != 0 {
		t.Errorf("expected an unknown code to fall back to index 0, got %d", got)
	}
}
