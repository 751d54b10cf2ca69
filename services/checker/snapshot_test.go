package checker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"showscout/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMergeCarryForward(t *testing.T) {
	show1 := mustShow(t, SourceHouseSeats, "Cirque", "2026-02-01")
	show1v2 := mustShow(t, SourceHouseSeats, "Cirque", "2026-02-03")
	show2 := mustShow(t, SourceFirstTix, "Jersey Boys", "2026-02-02")

	prior := Snapshot{
		LastUpdated: "2026-02-01T08:00:00 PT",
		LastUpdatedBySource: map[Source]string{
			SourceHouseSeats: "2026-02-01T08:00:00 PT",
			SourceFirstTix:   "2026-01-31T08:00:00 PT",
		},
		Count: 2,
		Shows: []Show{show1, show2},
	}

	now := time.Date(2026, 2, 2, 9, 30, 0, 0, timezone.Location)
	merged := MergeSnapshot(prior, []Show{show1v2}, []Source{SourceHouseSeats}, now)

	// 1stTix was not checked: its show and timestamp carry forward,
	// HouseSeats is fully replaced and restamped
	want := Snapshot{
		LastUpdated: "2026-02-02T09:30:00 PT",
		LastUpdatedBySource: map[Source]string{
			SourceHouseSeats: "2026-02-02T09:30:00 PT",
			SourceFirstTix:   "2026-01-31T08:00:00 PT",
		},
		Count: 2,
		Shows: []Show{show2, show1v2},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("unexpected merge result (-want +got):\n%s", diff)
	}
}

func TestMergeCheckedSourceWithNoShows(t *testing.T) {
	show1 := mustShow(t, SourceHouseSeats, "Cirque", "2026-02-01")

	prior := Snapshot{
		LastUpdatedBySource: map[Source]string{SourceHouseSeats: "old"},
		Count:               1,
		Shows:               []Show{show1},
	}

	now := time.Date(2026, 2, 2, 9, 30, 0, 0, timezone.Location)
	merged := MergeSnapshot(prior, nil, []Source{SourceHouseSeats}, now)

	// a checked source that returned nothing really has nothing
	require.Empty(t, merged.Shows)
	require.Zero(t, merged.Count)
	require.Equal(t, timezone.Stamp(now), merged.LastUpdatedBySource[SourceHouseSeats])
}

func TestSnapshotPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "available_shows.json")

	// missing and malformed files degrade to an empty snapshot
	empty := LoadSnapshot(path)
	require.Empty(t, empty.Shows)
	require.NotNil(t, empty.LastUpdatedBySource)

	require.NoError(t, os.WriteFile(path, []byte("]["), 0644))
	require.Empty(t, LoadSnapshot(path).Shows)

	now := time.Date(2026, 2, 2, 9, 30, 0, 0, timezone.Location)
	snapshot := MergeSnapshot(empty,
		[]Show{mustShow(t, SourceHouseSeats, "Cirque", "2026-02-01")},
		[]Source{SourceHouseSeats}, now,
	)
	require.NoError(t, snapshot.Save(path))

	reloaded := LoadSnapshot(path)
	if diff := cmp.Diff(snapshot, reloaded); diff != "" {
		t.Fatalf("snapshot did not roundtrip (-want +got):\n%s", diff)
	}
}
