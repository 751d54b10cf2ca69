package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbsoluteUrl(t *testing.T) {
	base := "https://lv.houseseats.com/member"

	require.Equal(t,
		"https://lv.houseseats.com/member/tickets/view/?showid=42",
		AbsoluteUrl(base, "./tickets/view/?showid=42"),
	)
	require.Equal(t,
		"https://lv.houseseats.com/member/resources/media/42.jpg",
		AbsoluteUrl(base, "/resources/media/42.jpg"),
	)
	require.Equal(t,
		"https://example.com/x",
		AbsoluteUrl(base, "https://example.com/x"),
	)
	require.Equal(t, "", AbsoluteUrl(base, ""))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Cirque du Soleil", CleanText("  Cirque \n\t du    Soleil "))
}
