package checker

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
)

// NotifiedSet holds every show key that has already triggered a
// notification. It only ever grows; date-qualified keys age out of
// relevance on their own and the cardinality stays tiny.
type NotifiedSet map[string]struct{}

type notifiedFileFormat struct {
	Notified []string `json:"notified"`
}

// LoadNotified reads the persisted key set. A missing or malformed
// file yields an empty set, losing dedup state must never fail a run.
func LoadNotified(path string) NotifiedSet {
	set := NotifiedSet{}

	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read notified shows, starting empty", "path", path, "err", err)
		}
		return set
	}

	var stored notifiedFileFormat
	err = json.Unmarshal(contents, &stored)
	if err != nil {
		slog.Warn("malformed notified shows file, starting empty", "path", path, "err", err)
		return set
	}

	for _, key := range stored.Notified {
		set[key] = struct{}{}
	}
	return set
}

func (s NotifiedSet) Save(path string) error {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	contents, err := json.MarshalIndent(notifiedFileFormat{Notified: keys}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}

func (s NotifiedSet) Contains(show Show) bool {
	_, ok := s[show.Key()]
	return ok
}

// Diff returns the shows never notified before, in their input order.
func (s NotifiedSet) Diff(shows []Show) []Show {
	var fresh []Show
	for _, show := range shows {
		if !s.Contains(show) {
			fresh = append(fresh, show)
		}
	}
	return fresh
}

// Commit marks shows as notified. Deliberately called whether or not
// the dispatch succeeded: a flaky SMTP server must not produce the
// same digest every run (at-most-once, not at-least-once).
func (s NotifiedSet) Commit(shows []Show) {
	for _, show := range shows {
		s[show.Key()] = struct{}{}
	}
}
