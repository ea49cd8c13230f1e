package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheDuration determines how long the degree tree is kept before refreshing
const cacheDuration = 12 * time.Hour

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Groups    []DegreeGroup `json:"groups"`
}

func getCachePath(university string, year int) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".cineca-helper_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	name := fmt.Sprintf("degrees_%s_%d.json", university, year)
	return filepath.Join(cacheDir, name), nil
}

// readDegreeCache checks if a valid, unexpired degree tree exists on disk
func readDegreeCache(university string, year int) ([]DegreeGroup, bool) {
	path, err := getCachePath(university, year)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false // File doesn't exist or can't be read
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Check expiration
	if time.Since(entry.Timestamp) > cacheDuration {
		return nil, false // Expired
	}

	return entry.Groups, true
}

// writeDegreeCache saves the degree tree to disk
func writeDegreeCache(university string, year int, groups []DegreeGroup) {
	path, err := getCachePath(university, year)
	if err != nil {
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		Groups:    groups,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
