package houseseats

import (
	"strings"
	"testing"

	"showscout/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const upcomingShowsFixture = `
<div class="container">
  <div class="panel panel-default">
    <div class="panel-heading">
      <a href="./tickets/view/?showid=42">Cirque du Soleil</a>
    </div>
    <div class="panel-body">
      <img class="img-responsive" src="/resources/media/42.jpg">
      <div class="grid-cal-date">Sun, Feb 1</div>
    </div>
  </div>
  <div class="panel panel-default">
    <div class="panel-heading">
      <a href="https://lv.houseseats.com/member/tickets/view/?showid=77">Absinthe</a>
    </div>
    <div class="panel-body">
      <div class="grid-cal-date">Mon, Feb 2</div>
    </div>
  </div>
  <div class="panel panel-default">
    <div class="panel-heading"></div>
    <div class="panel-body">
      <div class="grid-cal-date">a panel with no show name</div>
    </div>
  </div>
</div>`

func TestParseShows(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:houseseats")
	defer cleanup()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(upcomingShowsFixture))
	require.NoError(t, err)

	shows := client.parseShows(doc)
	require.Len(t, shows, 2)

	require.Equal(t, Show{
		Name:  "Cirque du Soleil",
		Date:  "Sun, Feb 1",
		Link:  "https://lv.houseseats.com/member/tickets/view/?showid=42",
		Image: "https://lv.houseseats.com/resources/media/42.jpg",
	}, shows[0])

	require.Equal(t, "Absinthe", shows[1].Name)
	require.Equal(t, "https://lv.houseseats.com/member/tickets/view/?showid=77", shows[1].Link)
	require.Empty(t, shows[1].Image)
}
