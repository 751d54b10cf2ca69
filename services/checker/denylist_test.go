package checker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"showscout/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestParseDenylist(t *testing.T) {
	entries := parseDenylist(`# shows nobody wants
Masked Singer

  tribute
#another comment
`)
	require.Equal(t, []string{"masked singer", "tribute"}, entries)
}

func TestFilterDenied(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:checker")
	defer cleanup()

	masked := mustShow(t, SourceHouseSeats, "The Masked Singer Live", "2026-02-01")
	cirque := mustShow(t, SourceHouseSeats, "Cirque du Soleil", "2026-02-01")

	kept := filterDenied(context.Background(), []Show{masked, cirque}, []string{"masked singer"})
	require.Equal(t, []Show{cirque}, kept)

	// unrelated entries filter nothing
	kept = filterDenied(context.Background(), []Show{masked, cirque}, []string{"opera"})
	require.Equal(t, []Show{masked, cirque}, kept)

	// no denylist, no filtering
	kept = filterDenied(context.Background(), []Show{masked}, nil)
	require.Equal(t, []Show{masked}, kept)
}

type failingDenylistSource struct{}

func (failingDenylistSource) Name() string { return "failing" }
func (failingDenylistSource) Load(context.Context) ([]string, error) {
	return nil, fmt.Errorf("network is down")
}

func TestDenylistFallbackChain(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:checker")
	defer cleanup()

	path := filepath.Join(t.TempDir(), "denylist.txt")
	require.NoError(t, os.WriteFile(path, []byte("magic mike\n"), 0644))

	// first source fails, the local file takes over
	entries := LoadDenylist(context.Background(),
		failingDenylistSource{},
		NewFileDenylistSource(path),
	)
	require.Equal(t, []string{"magic mike"}, entries)

	// everything fails: empty denylist, run continues
	entries = LoadDenylist(context.Background(),
		failingDenylistSource{},
		NewFileDenylistSource(filepath.Join(t.TempDir(), "missing.txt")),
	)
	require.Empty(t, entries)
}
