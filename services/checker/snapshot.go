package checker

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"showscout/lib/timezone"
)

// Snapshot is the persisted set of currently available shows across
// all sources, published for external consumption.
type Snapshot struct {
	LastUpdated         string            `json:"last_updated"`
	LastUpdatedBySource map[Source]string `json:"last_updated_by_source"`
	Count               int               `json:"count"`
	Shows               []Show            `json:"shows"`
}

// LoadSnapshot reads the prior snapshot; missing or unparsable files
// degrade to an empty one so a corrupted output never fails a run.
func LoadSnapshot(path string) Snapshot {
	empty := Snapshot{LastUpdatedBySource: map[Source]string{}}

	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read prior snapshot, starting empty", "path", path, "err", err)
		}
		return empty
	}

	var snapshot Snapshot
	err = json.Unmarshal(contents, &snapshot)
	if err != nil {
		slog.Warn("malformed prior snapshot, starting empty", "path", path, "err", err)
		return empty
	}
	if snapshot.LastUpdatedBySource == nil {
		snapshot.LastUpdatedBySource = map[Source]string{}
	}
	return snapshot
}

// MergeSnapshot partitions by source: a checked source's shows are
// fully replaced by this run's fetch and its timestamp restamped, an
// unchecked source (login failed, flag-skipped) carries its prior
// shows and timestamp forward verbatim.
func MergeSnapshot(prior Snapshot, fresh []Show, checked []Source, now time.Time) Snapshot {
	checkedSet := map[Source]bool{}
	for _, source := range checked {
		checkedSet[source] = true
	}

	var shows []Show
	for _, show := range prior.Shows {
		if !checkedSet[show.Source] {
			shows = append(shows, show)
		}
	}
	shows = append(shows, fresh...)

	stamp := timezone.Stamp(now)
	timestamps := map[Source]string{}
	for source, prev := range prior.LastUpdatedBySource {
		timestamps[source] = prev
	}
	for _, source := range checked {
		timestamps[source] = stamp
	}

	return Snapshot{
		LastUpdated:         stamp,
		LastUpdatedBySource: timestamps,
		Count:               len(shows),
		Shows:               shows,
	}
}

func (s Snapshot) Save(path string) error {
	contents, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}
