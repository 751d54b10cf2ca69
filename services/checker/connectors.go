package checker

import (
	"context"
	"log/slog"

	"showscout/lib/restyutil"
	"showscout/lib/scrapers/firsttix"
	"showscout/lib/scrapers/houseseats"
)

// Connector is one site's login+fetch surface. Implementations return
// canonical shows, already normalized; records missing a name, date or
// link never leave the connector.
type Connector interface {
	Source() Source
	Login(ctx context.Context) error
	FetchShows(ctx context.Context) ([]Show, error)
}

type houseSeatsConnector struct {
	client *houseseats.Client
}

func NewHouseSeatsConnector(cfg SiteConfig, output restyutil.InstrumentOutput) (Connector, error) {
	client, err := houseseats.NewClient(houseseats.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Email:            cfg.Email,
		Password:         cfg.Password,
		InstrumentOutput: output,
	})
	if err != nil {
		return nil, err
	}
	return houseSeatsConnector{client: client}, nil
}

func (c houseSeatsConnector) Source() Source { return SourceHouseSeats }

func (c houseSeatsConnector) Login(ctx context.Context) error {
	return c.client.Login(ctx)
}

func (c houseSeatsConnector) FetchShows(ctx context.Context) ([]Show, error) {
	scraped, err := c.client.FetchShows(ctx)
	if err != nil {
		return nil, err
	}

	var shows []Show
	for _, raw := range scraped {
		show, ok := NewShow(SourceHouseSeats, raw.Name, raw.Date, raw.Link, raw.Image)
		if !ok {
			slog.DebugContext(ctx, "discarding incomplete listing",
				"source", SourceHouseSeats, "name", raw.Name)
			continue
		}
		shows = append(shows, show)
	}
	return shows, nil
}

type firstTixConnector struct {
	client *firsttix.Client
}

func NewFirstTixConnector(cfg SiteConfig, output restyutil.InstrumentOutput) (Connector, error) {
	client, err := firsttix.NewClient(firsttix.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Email:            cfg.Email,
		Password:         cfg.Password,
		InstrumentOutput: output,
	})
	if err != nil {
		return nil, err
	}
	return firstTixConnector{client: client}, nil
}

func (c firstTixConnector) Source() Source { return SourceFirstTix }

func (c firstTixConnector) Login(ctx context.Context) error {
	return c.client.Login(ctx)
}

func (c firstTixConnector) FetchShows(ctx context.Context) ([]Show, error) {
	scraped, skipped, err := c.client.FetchShows(ctx)
	if err != nil {
		return nil, err
	}
	for _, skip := range skipped {
		slog.InfoContext(ctx, "skipping non-event listing",
			"source", SourceFirstTix, "name", skip.Name, "reason", skip.Reason)
	}

	var shows []Show
	for _, raw := range scraped {
		show, ok := NewShow(SourceFirstTix, raw.Name, raw.Date, raw.Link, raw.Image)
		if !ok {
			continue
		}
		shows = append(shows, show)
	}
	return shows, nil
}
