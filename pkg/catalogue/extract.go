package catalogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ardubev16/cineca-choice-helper/pkg/courses"
)

// ErrUnrecognizedLayout reports a page in none of the known catalogue formats
var ErrUnrecognizedLayout = errors.New("unrecognized catalogue layout")

// Options select what Extract pulls out of a page
type Options struct {
	University string       // subdomain used to rebuild course links
	Lang       courses.Lang // which localized labels to keep
	Path       string       // study path id or label, empty takes every path
}

// Extraction is the outcome of pulling raw entries out of a single page.
// Source records where the page came from so warnings can point at it;
// Skipped counts fragments that were present but too broken to use.
type Extraction struct {
	Source  string
	Entries []courses.RawEntry
	Skipped int
}

// Extract pulls raw course entries out of a catalogue page. The API serves
// JSON study plans, but saved pages and older portals surface the same data
// as an HTML listing table, so both layouts are recognized.
func Extract(page Page, opts Options) (Extraction, error) {
	if opts.Lang == "" {
		opts.Lang = courses.LangIT
	}

	content := bytes.TrimSpace(page.Content)
	if len(content) == 0 {
		return Extraction{}, fmt.Errorf("%s: empty page: %w", page.Source, ErrUnrecognizedLayout)
	}

	if content[0] == '{' || content[0] == '[' {
		return extractJSON(page.Source, content, opts)
	}

	return extractHTML(page.Source, content, opts)
}

// ExtractAll runs Extract over every page of a run, concatenating entries in
// page order so duplicate tie-breaking stays reproducible. Pages that fail
// extraction, and rows skipped inside a page, come back as warnings instead
// of aborting the run; whether an empty result is fatal is the caller's call.
func ExtractAll(pages []Page, opts Options) (Extraction, []error) {
	var ext Extraction
	var warnings []error

	for _, page := range pages {
		one, err := Extract(page, opts)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		if one.Skipped > 0 {
			warnings = append(warnings, fmt.Errorf("skipped %d unreadable rows in %s", one.Skipped, one.Source))
		}
		ext.Entries = append(ext.Entries, one.Entries...)
		ext.Skipped += one.Skipped
	}

	return ext, warnings
}

// StudyPaths lists the study paths of a JSON catalogue page without
// flattening them, for interactive selection before a full extraction.
func StudyPaths(page Page) ([]StudyPath, error) {
	return decodePaths(page.Source, bytes.TrimSpace(page.Content))
}

func decodePaths(source string, content []byte) ([]StudyPath, error) {
	var payload struct {
		Paths json.RawMessage `json:"percorsi"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", source, ErrUnrecognizedLayout)
	}
	if len(payload.Paths) == 0 {
		return nil, fmt.Errorf("%s: no study paths: %w", source, ErrUnrecognizedLayout)
	}

	var paths []StudyPath
	if err := json.Unmarshal(payload.Paths, &paths); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", source, ErrUnrecognizedLayout, err)
	}

	return paths, nil
}

func extractJSON(source string, content []byte, opts Options) (Extraction, error) {
	paths, err := decodePaths(source, content)
	if err != nil {
		return Extraction{}, err
	}

	ext := Extraction{Source: source}
	matched := false

	for _, path := range paths {
		if opts.Path != "" && !pathMatches(path, opts.Path) {
			continue
		}
		matched = true

		for _, year := range path.Years {
			for _, teaching := range year.Teachings {
				label := teaching.Label(opts.Lang)

				if len(teaching.Activities) == 0 {
					// The slot exists in the study plan but nothing is
					// offered for it yet. Keep it visible as a placeholder.
					ext.Entries = append(ext.Entries, courses.RawEntry{
						YearLabel: year.Year.String(),
						Teaching:  label,
						Name:      "N/A",
						Link:      "N/A",
						Source:    source,
					})
					continue
				}

				for _, act := range teaching.Activities {
					name := act.Name(opts.Lang)
					if name == "" {
						ext.Skipped++
						continue
					}

					ext.Entries = append(ext.Entries, courses.RawEntry{
						YearLabel:     year.Year.String(),
						Teaching:      label,
						Name:          name,
						SemesterLabel: act.Period(opts.Lang),
						CreditsLabel:  act.Credits.String(),
						Instructor:    act.LecturerNames(),
						Code:          act.Cod.String(),
						Link:          courseLink(opts.University, act),
						Source:        source,
					})
				}
			}
		}
	}

	if opts.Path != "" && !matched {
		return Extraction{}, fmt.Errorf("study path %q not found in %s", opts.Path, source)
	}

	return ext, nil
}

func pathMatches(p StudyPath, want string) bool {
	return strings.EqualFold(p.ID.String(), want) ||
		strings.EqualFold(p.DesIT, want) ||
		strings.EqualFold(p.DesEN, want)
}

// courseLink rebuilds the public catalogue URL of an activity from the path
// segments it carries
func courseLink(university string, a Activity) string {
	host := fmt.Sprintf(hostTemplate, university)
	return fmt.Sprintf("%s/insegnamenti/%s/%s/%s/%s/%s",
		host, a.AA, a.Cod, a.OrdinamentoAA, a.PathID, a.CourseCod)
}

// listingHeaders maps the column headers of an HTML listing table, in both
// portal languages, onto entry fields
var listingHeaders = map[string]string{
	"anno":              "year",
	"year":              "year",
	"insegnamento":      "teaching",
	"teaching":          "teaching",
	"attività":          "name",
	"attivita":          "name",
	"activity":          "name",
	"name":              "name",
	"periodo":           "semester",
	"periodo didattico": "semester",
	"semestre":          "semester",
	"semester":          "semester",
	"period":            "semester",
	"cfu":               "credits",
	"crediti":           "credits",
	"credits":           "credits",
	"docente":           "instructor",
	"docenti":           "instructor",
	"lecturer":          "instructor",
	"instructor":        "instructor",
	"codice":            "code",
	"code":              "code",
}

func extractHTML(source string, content []byte, opts Options) (Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return Extraction{}, fmt.Errorf("%s: %w", source, ErrUnrecognizedLayout)
	}

	ext := Extraction{Source: source}
	found := false

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		cols := make(map[string]int)
		table.Find("thead th").Each(func(j int, th *goquery.Selection) {
			key := strings.ToLower(strings.TrimSpace(th.Text()))
			if field, ok := listingHeaders[key]; ok {
				if _, taken := cols[field]; !taken {
					cols[field] = j
				}
			}
		})

		// A listing table must at least name its courses and their year
		if _, ok := cols["name"]; !ok {
			return true
		}
		if _, ok := cols["year"]; !ok {
			return true
		}
		found = true

		table.Find("tbody tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td")
			get := func(field string) string {
				idx, ok := cols[field]
				if !ok || idx >= cells.Length() {
					return ""
				}
				return strings.TrimSpace(cells.Eq(idx).Text())
			}

			name := get("name")
			if name == "" {
				ext.Skipped++
				return
			}

			var link string
			if href, ok := cells.Eq(cols["name"]).Find("a").Attr("href"); ok {
				link = href
				if strings.HasPrefix(link, "/") {
					link = fmt.Sprintf(hostTemplate, opts.University) + link
				}
			}

			ext.Entries = append(ext.Entries, courses.RawEntry{
				YearLabel:     get("year"),
				Teaching:      get("teaching"),
				Name:          name,
				SemesterLabel: get("semester"),
				CreditsLabel:  get("credits"),
				Instructor:    get("instructor"),
				Code:          get("code"),
				Link:          link,
				Source:        source,
			})
		})

		// First recognizable table wins
		return false
	})

	if !found {
		return Extraction{}, fmt.Errorf("%s: no course table: %w", source, ErrUnrecognizedLayout)
	}

	return ext, nil
}
