package checker

import (
	"encoding/json"
	"log/slog"
	"os"
	"slices"
	"time"

	"showscout/lib/timezone"
)

const (
	// a show with fewer than rareThresholdCount appearances in the
	// last rareWindowDays is classified as rare
	rareWindowDays     = 30
	rareThresholdCount = 3
	// appearance days older than this are pruned at the end of a run
	historyRetentionDays = 90
)

// HistoryEntry records the distinct calendar days a name+source
// combination was observed on, across runs.
type HistoryEntry struct {
	Name        string   `json:"name"`
	Source      Source   `json:"source"`
	Appearances []string `json:"appearances"`
}

// ShowHistory maps NameKey -> appearance history. ISO day strings
// compare lexicographically in chronological order, which the window
// checks below rely on.
type ShowHistory map[string]*HistoryEntry

type historyFileFormat struct {
	Shows map[string]*HistoryEntry `json:"shows"`
}

func LoadHistory(path string) ShowHistory {
	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read show history, starting empty", "path", path, "err", err)
		}
		return ShowHistory{}
	}

	var stored historyFileFormat
	err = json.Unmarshal(contents, &stored)
	if err != nil || stored.Shows == nil {
		slog.Warn("malformed show history file, starting empty", "path", path, "err", err)
		return ShowHistory{}
	}
	return stored.Shows
}

func (h ShowHistory) Save(path string) error {
	contents, err := json.MarshalIndent(historyFileFormat{Shows: h}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}

// Update appends today's calendar day to each show's history.
// Idempotent within a day: a second run on the same date is a no-op.
func (h ShowHistory) Update(shows []Show, now time.Time) {
	today := timezone.Day(now)
	for _, show := range shows {
		key := show.NameKey()
		entry, ok := h[key]
		if !ok {
			entry = &HistoryEntry{Name: show.Name, Source: show.Source}
			h[key] = entry
		}
		if !slices.Contains(entry.Appearances, today) {
			entry.Appearances = append(entry.Appearances, today)
		}
	}
}

// IsRare reports whether a show has been seen on fewer than
// rareThresholdCount days within the trailing window. Never-seen
// shows are always rare.
func (h ShowHistory) IsRare(show Show, now time.Time) bool {
	entry, ok := h[show.NameKey()]
	if !ok {
		return true
	}

	windowStart := timezone.Day(now.AddDate(0, 0, -rareWindowDays))
	recent := 0
	for _, day := range entry.Appearances {
		if day >= windowStart {
			recent++
		}
	}
	return recent < rareThresholdCount
}

// Prune drops appearance days older than the retention window and
// deletes entries left with no appearances at all.
func (h ShowHistory) Prune(now time.Time) {
	cutoff := timezone.Day(now.AddDate(0, 0, -historyRetentionDays))
	for key, entry := range h {
		kept := entry.Appearances[:0]
		for _, day := range entry.Appearances {
			if day >= cutoff {
				kept = append(kept, day)
			}
		}
		entry.Appearances = kept
		if len(kept) == 0 {
			delete(h, key)
		}
	}
}
