package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"reflect"
	"testing"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

func TestGenerateCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCSV(testCatalogue(), courses.LangIT, &buf); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	data := buf.Bytes()
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatalf("expected output to start with a UTF-8 BOM")
	}

	rows, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	if err != nil {
		t.Fatalf("could not parse generated CSV: %v", err)
	}

	if len(rows) != 4 { // header + 3 records
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	wantHeader := []string{"Anno", "Insegnamento", "Nome", "Semestre", "CFU", "Docente", "Link"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("unexpected header row.\nGot: %v\nExpected: %v", rows[0], wantHeader)
	}

	first := rows[1]
	if first[0] != "1" {
		t.Errorf("expected year '1', got '%s'", first[0])
	}
	if first[2] != "Analisi matematica 1" {
		t.Errorf("expected course name, got '%s'", first[2])
	}
	if first[3] != "Primo semestre" {
		t.Errorf("expected semester label, got '%s'", first[3])
	}
	if first[4] != "12" {
		t.Errorf("expected credits '12', got '%s'", first[4])
	}
	if first[6] == "" {
		t.Errorf("expected a link in the last column")
	}

	// Placeholder row keeps its N/A link and empty optional fields
	placeholder := rows[2]
	if placeholder[6] != "N/A" {
		t.Errorf("expected placeholder link 'N/A', got '%s'", placeholder[6])
	}
	if placeholder[4] != "" || placeholder[5] != "" {
		t.Errorf("expected empty credits and instructor for placeholder, got '%s' and '%s'", placeholder[4], placeholder[5])
	}
}

func TestGenerateCSVEnglishHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCSV(testCatalogue(), courses.LangEN, &buf); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	if err != nil {
		t.Fatalf("could not parse generated CSV: %v", err)
	}

	wantHeader := []string{"Year", "Teaching", "Name", "Semester", "CFU", "Lecturer", "Link"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("unexpected header row.\nGot: %v\nExpected: %v", rows[0], wantHeader)
	}
}

func TestGenerateCSVEmptyCatalogue(t *testing.T) {
	var buf bytes.Buffer

	err := GenerateCSV(courses.Catalogue{}, courses.LangIT, &buf)
	if !errors.Is(err, courses.ErrNoCourses) {
		t.Fatalf("expected ErrNoCourses for an empty catalogue, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no bytes written for an empty catalogue, got %d", buf.Len())
	}
}
