package store

import (
	"encoding/json"
	"os"

	"mblythe/rentwatcher/logger"
	apperr "mblythe/rentwatcher/pkg/errors"
)

// FileStore implements Store as a JSON array of links in a flat file
type FileStore struct {
	path string
}

// NewFileStore creates a new file-backed store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted link set. A missing, empty or malformed file
// yields an empty set.
func (s *FileStore) Load() map[string]bool {
	links := make(map[string]bool)

	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		return links
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		logger.ForStore().Debug().
			Err(err).
			Str("path", s.path).
			Msg("State file is not valid JSON; starting from an empty set")
		return links
	}

	for _, link := range list {
		links[link] = true
	}
	return links
}

// Save overwrites the state file with the given link set
func (s *FileStore) Save(links map[string]bool) error {
	list := make([]string, 0, len(links))
	for link := range links {
		list = append(list, link)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return apperr.NewState("failed to encode state", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperr.NewState("failed to write state file", err)
	}
	return nil
}
