package catalogue

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

func loadPage(t *testing.T, path string) Page {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return Page{Source: path, Content: data}
}

func TestExtractJSONCatalogue(t *testing.T) {
	page := loadPage(t, "testdata/catalogue.json")

	ext, err := Extract(page, Options{University: "unitn", Lang: courses.LangIT})
	require.NoError(t, err)
	require.Equal(t, page.Source, ext.Source)
	require.Len(t, ext.Entries, 5)
	require.Equal(t, 1, ext.Skipped)

	first := ext.Entries[0]
	require.Equal(t, "1", first.YearLabel)
	require.Equal(t, "Primo anno - attività obbligatorie", first.Teaching)
	require.Equal(t, "ANALISI MATEMATICA 1", first.Name)
	require.Equal(t, "Primo Semestre", first.SemesterLabel)
	require.Equal(t, "12", first.CreditsLabel)
	require.Equal(t, "MARIO ROSSI", first.Instructor)
	require.Equal(t, "145001", first.Code)
	require.Equal(t, "https://unitn.coursecatalogue.cineca.it/insegnamenti/2025/145001/2021/9999/0514G", first.Link)

	// Same link shape regardless of whether the portal sent the path
	// segments as numbers or strings
	require.Equal(t, "https://unitn.coursecatalogue.cineca.it/insegnamenti/2025/145002/2021/9999/0514G", ext.Entries[1].Link)
}

func TestExtractKeepsEmptyTeachingsVisible(t *testing.T) {
	page := loadPage(t, "testdata/catalogue.json")

	ext, err := Extract(page, Options{University: "unitn"})
	require.NoError(t, err)

	var placeholder *courses.RawEntry
	for i := range ext.Entries {
		if ext.Entries[i].Teaching == "Competenze linguistiche" {
			placeholder = &ext.Entries[i]
		}
	}

	require.NotNil(t, placeholder, "teaching without activities should produce a placeholder entry")
	require.Equal(t, "N/A", placeholder.Name)
	require.Equal(t, "N/A", placeholder.Link)
	require.Empty(t, placeholder.SemesterLabel)
	require.Empty(t, placeholder.CreditsLabel)
}

func TestExtractEnglishLabels(t *testing.T) {
	page := loadPage(t, "testdata/catalogue.json")

	ext, err := Extract(page, Options{University: "unitn", Lang: courses.LangEN})
	require.NoError(t, err)

	first := ext.Entries[0]
	require.Equal(t, "First year - compulsory activities", first.Teaching)
	require.Equal(t, "MATHEMATICAL ANALYSIS 1", first.Name)
	require.Equal(t, "First semester", first.SemesterLabel)
}

func TestExtractStudyPathFilter(t *testing.T) {
	page := loadPage(t, "testdata/catalogue.json")

	byID, err := Extract(page, Options{University: "unitn", Path: "9999"})
	require.NoError(t, err)
	require.Len(t, byID.Entries, 4)

	byLabel, err := Extract(page, Options{University: "unitn", Lang: courses.LangEN, Path: "Professional path"})
	require.NoError(t, err)
	require.Len(t, byLabel.Entries, 1)
	require.Equal(t, "INTERNSHIP", byLabel.Entries[0].Name)
	require.Empty(t, byLabel.Entries[0].SemesterLabel)

	_, err = Extract(page, Options{University: "unitn", Path: "Percorso inesistente"})
	require.ErrorContains(t, err, "not found")
}

func TestExtractHTMLListing(t *testing.T) {
	page := loadPage(t, "testdata/listing.html")

	ext, err := Extract(page, Options{University: "unitn"})
	require.NoError(t, err)
	require.Equal(t, page.Source, ext.Source)
	require.Len(t, ext.Entries, 2)
	require.Equal(t, 1, ext.Skipped)

	first := ext.Entries[0]
	require.Equal(t, "1", first.YearLabel)
	require.Equal(t, "Attività obbligatorie", first.Teaching)
	require.Equal(t, "Analisi matematica 1", first.Name)
	require.Equal(t, "Primo Semestre", first.SemesterLabel)
	require.Equal(t, "12", first.CreditsLabel)
	require.Equal(t, "Mario Rossi", first.Instructor)
	require.Equal(t, "145001", first.Code)
	require.Equal(t, "https://unitn.coursecatalogue.cineca.it/insegnamenti/2025/145001/2021/9999/0514G", first.Link)

	require.Empty(t, ext.Entries[1].Instructor)
	require.Empty(t, ext.Entries[1].Link)
}

func TestExtractHTMLEnglishHeaders(t *testing.T) {
	html := `<html><body><table>
		<thead><tr><th>Year</th><th>Teaching</th><th>Name</th><th>Semester</th><th>Credits</th></tr></thead>
		<tbody><tr><td>2</td><td>Electives</td><td>Distributed Systems</td><td>Second semester</td><td>6</td></tr></tbody>
	</table></body></html>`

	ext, err := Extract(Page{Source: "inline", Content: []byte(html)}, Options{University: "unitn"})
	require.NoError(t, err)
	require.Len(t, ext.Entries, 1)

	entry := ext.Entries[0]
	require.Equal(t, "2", entry.YearLabel)
	require.Equal(t, "Electives", entry.Teaching)
	require.Equal(t, "Distributed Systems", entry.Name)
	require.Equal(t, "Second semester", entry.SemesterLabel)
	require.Equal(t, "6", entry.CreditsLabel)
	require.Empty(t, entry.Code)
}

func TestExtractAllSkipsBrokenPages(t *testing.T) {
	pages := []Page{
		loadPage(t, "testdata/catalogue.json"),
		{Source: "broken", Content: []byte("Service temporarily unavailable")},
	}

	ext, warnings := ExtractAll(pages, Options{University: "unitn"})
	require.Len(t, ext.Entries, 5, "the parseable page should still be used")
	require.Equal(t, 1, ext.Skipped)
	require.Len(t, warnings, 2)
	require.ErrorContains(t, warnings[0], "skipped 1 unreadable rows in testdata/catalogue.json")
	require.ErrorIs(t, warnings[1], ErrUnrecognizedLayout)

	// Every page broken leaves nothing but warnings
	ext, warnings = ExtractAll(pages[1:], Options{University: "unitn"})
	require.Empty(t, ext.Entries)
	require.Len(t, warnings, 1)
}

func TestExtractUnrecognizedLayout(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty page", ""},
		{"plain text", "Service temporarily unavailable"},
		{"json without study paths", `{"maintenance": true}`},
		{"html without course table", "<html><body><p>Welcome</p></body></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(Page{Source: tt.name, Content: []byte(tt.content)}, Options{University: "unitn"})
			require.ErrorIs(t, err, ErrUnrecognizedLayout)
		})
	}
}

func TestStudyPaths(t *testing.T) {
	page := loadPage(t, "testdata/catalogue.json")

	paths, err := StudyPaths(page)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.Equal(t, "9999", paths[0].ID.String())
	require.Equal(t, "Percorso standard", paths[0].Label(courses.LangIT))
	require.Equal(t, "Professional path", paths[1].Label(courses.LangEN))

	_, err = StudyPaths(Page{Source: "x", Content: []byte("<html></html>")})
	require.ErrorIs(t, err, ErrUnrecognizedLayout)
}
