package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	// 6am UTC on Feb 2nd is still Feb 1st in Los Angeles
	utc := time.Date(2026, 2, 2, 6, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-02-01", Day(utc))
}

func TestStamp(t *testing.T) {
	utc := time.Date(2026, 7, 1, 2, 30, 45, 0, time.UTC)
	// PDT is UTC-7 in July
	require.Equal(t, "2026-06-30T19:30:45 PT", Stamp(utc))

	utc = time.Date(2026, 1, 15, 2, 30, 45, 0, time.UTC)
	// PST is UTC-8 in January
	require.Equal(t, "2026-01-14T18:30:45 PT", Stamp(utc))
}
