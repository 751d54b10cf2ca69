package checker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"showscout/lib/telemetry"
	"showscout/lib/timezone"

	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	source   Source
	shows    []Show
	loginErr error
	fetchErr error
}

func (c fakeConnector) Source() Source { return c.source }

func (c fakeConnector) Login(context.Context) error { return c.loginErr }

func (c fakeConnector) FetchShows(context.Context) ([]Show, error) {
	return c.shows, c.fetchErr
}

func testService(t *testing.T, dataDir string, connectors ...Connector) Service {
	t.Helper()
	return NewService(Options{
		Config:     Config{DataDir: dataDir},
		Connectors: connectors,
		Fast:       true,
		Push:       false,
		Now: func() time.Time {
			return time.Date(2026, 2, 1, 10, 0, 0, 0, timezone.Location)
		},
	})
}

func TestRunEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:checker")
	defer cleanup()

	dir := t.TempDir()
	cirque := mustShow(t, SourceHouseSeats, "Cirque", "2026-02-01")
	connector := fakeConnector{source: SourceHouseSeats, shows: []Show{cirque}}

	result := testService(t, dir, connector).Run(context.Background())
	require.Len(t, result.New, 1)
	require.Equal(t, "Cirque", result.New[0].Name)
	// first sighting ever: rare
	require.True(t, result.New[0].Rare)

	notified := LoadNotified(dir + "/notified_shows.json")
	require.Contains(t, notified, "HouseSeats|Cirque|2026-02-01")

	snapshot := LoadSnapshot(dir + "/available_shows.json")
	require.Equal(t, 1, snapshot.Count)
	require.Equal(t, "2026-02-01T10:00:00 PT", snapshot.LastUpdatedBySource[SourceHouseSeats])

	// an identical second run surfaces nothing new
	result = testService(t, dir, connector).Run(context.Background())
	require.Len(t, result.Fresh, 1)
	require.Empty(t, result.New)
}

func TestRunCarriesForwardFailedSource(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:checker")
	defer cleanup()

	dir := t.TempDir()
	hsShow := mustShow(t, SourceHouseSeats, "Cirque", "2026-02-01")
	ftShow := mustShow(t, SourceFirstTix, "Jersey Boys", "2026-02-04")

	result := testService(t, dir,
		fakeConnector{source: SourceHouseSeats, shows: []Show{hsShow}},
		fakeConnector{source: SourceFirstTix, shows: []Show{ftShow}},
	).Run(context.Background())
	require.Len(t, result.New, 2)

	firstStamp := LoadSnapshot(dir + "/available_shows.json").LastUpdatedBySource[SourceFirstTix]
	require.NotEmpty(t, firstStamp)

	// second run a day later: 1stTix login fails, its prior data and
	// timestamp must survive while HouseSeats is replaced
	hsReplacement := mustShow(t, SourceHouseSeats, "Absinthe", "2026-02-02")
	result = NewService(Options{
		Config: Config{DataDir: dir},
		Connectors: []Connector{
			fakeConnector{source: SourceHouseSeats, shows: []Show{hsReplacement}},
			fakeConnector{source: SourceFirstTix, loginErr: fmt.Errorf("bad credentials")},
		},
		Fast: true,
		Now: func() time.Time {
			return time.Date(2026, 2, 2, 10, 0, 0, 0, timezone.Location)
		},
	}).Run(context.Background())

	snapshot := LoadSnapshot(dir + "/available_shows.json")
	require.Equal(t, 2, snapshot.Count)

	var names []string
	for _, show := range snapshot.Shows {
		names = append(names, show.Name)
	}
	require.Equal(t, []string{"Jersey Boys", "Absinthe"}, names)
	require.Equal(t, firstStamp, snapshot.LastUpdatedBySource[SourceFirstTix])
	require.Equal(t, "2026-02-02T10:00:00 PT", snapshot.LastUpdatedBySource[SourceHouseSeats])

	// the carried-forward show was already notified, only the
	// replacement is new
	require.Len(t, result.New, 1)
	require.Equal(t, "Absinthe", result.New[0].Name)
}

func TestRunFetchFailureExcludesSource(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:checker")
	defer cleanup()

	dir := t.TempDir()
	hsShow := mustShow(t, SourceHouseSeats, "Cirque", "2026-02-01")

	testService(t, dir,
		fakeConnector{source: SourceHouseSeats, shows: []Show{hsShow}},
	).Run(context.Background())

	testService(t, dir,
		fakeConnector{source: SourceHouseSeats, fetchErr: fmt.Errorf("http 500")},
	).Run(context.Background())

	// the fetch failure must not wipe the source's prior shows
	snapshot := LoadSnapshot(dir + "/available_shows.json")
	require.Equal(t, 1, snapshot.Count)
	require.Equal(t, "Cirque", snapshot.Shows[0].Name)
}
