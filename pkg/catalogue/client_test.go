package catalogue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const mockDegreeTree = `[
	{
		"des_it": "Corsi di Laurea",
		"des_en": "Bachelor Programmes",
		"subgroups": [
			{
				"des_it": "Dipartimento di Informatica",
				"des_en": "Department of Computer Science",
				"cds": [
					{
						"des_it": "INFORMATICA",
						"des_en": "COMPUTER SCIENCE",
						"cdsSub": [{"cod": "0514G"}]
					}
				]
			}
		]
	}
]`

func TestClient_DegreeGroups(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		// Verify query parameters
		if r.URL.Query().Get("anno") != "2025" {
			t.Errorf("expected 'anno' parameter 2025, got %s", r.URL.Query().Get("anno"))
		}
		if r.URL.Query().Get("minimal") != "true" {
			t.Errorf("expected 'minimal' parameter true, got %s", r.URL.Query().Get("minimal"))
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockDegreeTree))
	}))
	defer server.Close()

	client := NewClient("unitn")
	client.http.SetBaseURL(server.URL)

	groups, err := client.DegreeGroups(context.Background(), 2025)
	if err != nil {
		t.Fatalf("unexpected error fetching mocked degree groups: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("expected 1 degree group, got %d", len(groups))
	}
	if groups[0].DesIT != "Corsi di Laurea" {
		t.Errorf("expected group 'Corsi di Laurea', got '%s'", groups[0].DesIT)
	}

	program := groups[0].Subgroups[0].Programs[0]
	if program.Code() != "0514G" {
		t.Errorf("expected program code '0514G', got '%s'", program.Code())
	}

	// A second call must be served from the on-disk cache, not the network
	groups, err = client.DegreeGroups(context.Background(), 2025)
	if err != nil {
		t.Fatalf("unexpected error on cached fetch: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 cached degree group, got %d", len(groups))
	}
	if requests != 1 {
		t.Errorf("expected exactly 1 network request, got %d", requests)
	}
}

func TestClient_DegreeGroupsRetries(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			// Simulate a flaky gateway twice
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("unitn")
	client.http.SetBaseURL(server.URL)

	_, err := client.DegreeGroups(context.Background(), 2025)
	if err != nil {
		t.Fatalf("expected retries to succeed on 3rd attempt, got error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}

// failingTransport fails every round trip before a response exists, the way a
// refused or reset connection does.
type failingTransport struct {
	attempts int
}

func (ft *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ft.attempts++
	return nil, errors.New("connection reset by peer")
}

func TestClient_RetriesTransportErrors(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	transport := &failingTransport{}
	client := NewClient("unitn")
	client.http.SetTransport(transport)
	client.http.SetRetryWaitTime(time.Millisecond)
	client.http.SetRetryMaxWaitTime(2 * time.Millisecond)

	_, err := client.DegreeGroups(context.Background(), 2025)
	if err == nil {
		t.Fatal("expected an error once every attempt failed, got nil")
	}
	if transport.attempts != 3 {
		t.Errorf("expected 3 attempts for a transport error, got %d", transport.attempts)
	}
}

func TestClient_CanonicalUniversity(t *testing.T) {
	client := NewClient(" UniTN ")

	if got := client.University(); got != "unitn" {
		t.Errorf("expected canonical subdomain 'unitn', got %q", got)
	}
	if client.http.BaseURL != "https://unitn.coursecatalogue.cineca.it" {
		t.Errorf("unexpected base URL %s", client.http.BaseURL)
	}
}

func TestClient_Catalogue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/corso/2025/0514G" {
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"percorsi": []}`))
	}))
	defer server.Close()

	client := NewClient("unitn")
	client.http.SetBaseURL(server.URL)

	page, err := client.Catalogue(context.Background(), 2025, "0514G")
	if err != nil {
		t.Fatalf("unexpected error fetching mocked catalogue: %v", err)
	}

	if string(page.Content) != `{"percorsi": []}` {
		t.Errorf("unexpected page content: %s", page.Content)
	}
	if page.Source == "" {
		t.Errorf("expected page source to record the request URL")
	}
}

func TestClient_CatalogueNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("unitn")
	client.http.SetBaseURL(server.URL)

	_, err := client.Catalogue(context.Background(), 2025, "XXXXX")
	if err == nil {
		t.Fatalf("expected an error for a missing catalogue, got nil")
	}
}
