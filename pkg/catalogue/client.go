package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const hostTemplate = "https://%s.coursecatalogue.cineca.it"

// Client handles HTTP requests to the Cineca course catalogue API
type Client struct {
	http       *resty.Client
	university string
}

// NewClient creates an API client for the given university subdomain
// (e.g. "unitn" for unitn.coursecatalogue.cineca.it).
func NewClient(university string) *Client {
	// Hostnames are case insensitive, keep the subdomain canonical.
	university = strings.ToLower(strings.TrimSpace(university))

	client := resty.New()
	client.SetBaseURL(fmt.Sprintf(hostTemplate, university))
	client.SetHeader("User-Agent", "cineca-helper/1.0")
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(2)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		// resty hands the condition a response wrapper even when the
		// round trip itself failed, so transport errors surface as err.
		if err != nil {
			return true
		}
		code := res.StatusCode()
		return code == http.StatusBadGateway ||
			code == http.StatusServiceUnavailable ||
			code == http.StatusGatewayTimeout
	})

	return &Client{
		http:       client,
		university: university,
	}
}

// University returns the canonical subdomain this client talks to
func (c *Client) University() string {
	return c.university
}

// DegreeGroups retrieves the degree tree for an academic year. Results are
// cached on disk because the tree barely changes within a day.
func (c *Client) DegreeGroups(ctx context.Context, year int) ([]DegreeGroup, error) {
	if groups, ok := readDegreeCache(c.university, year); ok {
		return groups, nil
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("anno", strconv.Itoa(year)).
		SetQueryParam("minimal", "true").
		Get("/api/v1/corsi")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch degree groups: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode())
	}

	var groups []DegreeGroup
	if err := json.Unmarshal(res.Body(), &groups); err != nil {
		return nil, fmt.Errorf("failed to decode JSON response: %w", err)
	}

	writeDegreeCache(c.university, year, groups)

	return groups, nil
}

// Catalogue fetches the raw study plan document for a degree program
func (c *Client) Catalogue(ctx context.Context, year int, programCod string) (Page, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/v1/corso/%d/%s", year, programCod))
	if err != nil {
		return Page{}, fmt.Errorf("failed to fetch catalogue: %w", err)
	}

	if res.StatusCode() == http.StatusNotFound {
		return Page{}, fmt.Errorf("no catalogue published for program %s in %d", programCod, year)
	} else if res.StatusCode() != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status code: %d", res.StatusCode())
	}

	return Page{
		Source:  res.Request.URL,
		Content: res.Body(),
	}, nil
}
