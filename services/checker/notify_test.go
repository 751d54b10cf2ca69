package checker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotifierEnabled(t *testing.T) {
	n := NewNotifier(Config{
		Smtp:              SmtpConfig{Password: "app-password"},
		NotificationEmail: "someone@example.com",
	})
	require.True(t, n.Enabled())

	require.False(t, NewNotifier(Config{
		NotificationEmail: "someone@example.com",
	}).Enabled())
	require.False(t, NewNotifier(Config{
		Smtp: SmtpConfig{Password: "app-password"},
	}).Enabled())
}

func TestChatPromptLink(t *testing.T) {
	show := mustShow(t, SourceHouseSeats, "Cirque du Soleil", "Sun, Feb 1")
	link := chatPromptLink(show)

	require.Contains(t, link, "https://chat.openai.com/?q=")
	require.Contains(t, link, "Cirque+du+Soleil")
	require.Contains(t, link, "Feb+1")
}

func TestDigestBodies(t *testing.T) {
	rare := mustShow(t, SourceFirstTix, "Jersey Boys", "Wed, 4 Feb '26 7:30 PM")
	rare.Rare = true
	common := mustShow(t, SourceHouseSeats, "Absinthe", "Mon, Feb 2")

	n := NewNotifier(Config{
		ShowsPageUrl: "https://example.github.io/shows/",
		Denylist:     DenylistConfig{GistEditUrl: "https://gist.github.com/x/edit"},
	})

	text := n.textBody([]Show{rare, common})
	require.Contains(t, text, "[1stTix] Jersey Boys - Wed, 4 Feb '26 7:30 PM (rare)")
	require.Contains(t, text, "[HouseSeats] Absinthe - Mon, Feb 2\n")
	require.Contains(t, text, "View All Shows: https://example.github.io/shows/")

	html := n.htmlBody([]Show{rare, common})
	require.Contains(t, html, "<strong>Jersey Boys ⭐</strong>")
	require.Contains(t, html, "<strong>Absinthe</strong>")
	require.Contains(t, html, `href="`+rare.Link+`"`)
	require.Contains(t, html, "https://gist.github.com/x/edit")
}
