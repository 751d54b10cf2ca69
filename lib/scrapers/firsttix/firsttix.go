// Package firsttix scrapes the member events page of 1sttix.org.
//
// Same caveats as the houseseats package: selectors chase whatever the
// site renders today. The events page mixes real events with sponsor
// tiles, the parse step weeds those out heuristically.
package firsttix

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"showscout/lib/htmlutil"
	"showscout/lib/restyutil"
	"showscout/lib/textutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/firsttix")

var LoginFailed = fmt.Errorf("failed to login to 1sttix")

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// tiles whose name matches any of these are sponsors or promos, not
// bookable events
var sponsorPatterns = []string{
	"tactical",
	"coursera",
	"courses",
	"certs",
	"degrees",
	"sponsor",
	"donate",
	"discount",
	"coupon",
	"hotel",
	"free courses",
	"cooperator",
	"5.11",
}

var dateRegex = regexp.MustCompile(`(\w{3},\s*\d+\s+\w+\s+'\d+)`)
var timeRegex = regexp.MustCompile(`(\d{1,2}:\d{2}\s*[AP]M)`)

type Show struct {
	Name  string
	Date  string
	Link  string
	Image string
}

// Skipped describes a tile the parser rejected, surfaced so the run
// log can record what was dropped and why.
type Skipped struct {
	Name   string
	Reason string
}

type Client struct {
	baseUrl  string
	email    string
	password string
	http     *resty.Client
}

type ClientOptions struct {
	BaseUrl  string
	Email    string
	Password string
	// optional, dumps http exchanges for scraper debugging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://www.1sttix.org"
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.5")
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		baseUrl:  strings.TrimSuffix(opts.BaseUrl, "/"),
		email:    opts.Email,
		password: opts.Password,
		http:     client,
	}, nil
}

func (c *Client) Login(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	// fetch the login page first for session cookies
	_, err := c.http.R().
		SetContext(ctx).
		Get("/login")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"email":    c.email,
			"password": c.password,
		}).
		Post("/login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	body := strings.ToLower(res.String())
	finalUrl := strings.ToLower(res.RawResponse.Request.URL.String())
	if strings.Contains(body, "logout") ||
		strings.Contains(body, "my account") ||
		strings.Contains(finalUrl, "welcome") {
		return nil
	}

	span.SetStatus(codes.Error, LoginFailed.Error())
	return LoginFailed
}

func (c *Client) FetchShows(ctx context.Context) ([]Show, []Skipped, error) {
	ctx, span := tracer.Start(ctx, "client:FetchShows")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get("/tixer/get-tickets/events")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch events")
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse events html")
		return nil, nil, err
	}

	shows, skipped := parseShows(doc)
	return shows, skipped, nil
}

func parseShows(doc *goquery.Document) ([]Show, []Skipped) {
	var shows []Show
	var skipped []Skipped

	doc.Find("div.event").Each(func(_ int, event *goquery.Selection) {
		var show Show

		img := event.Find("img").First()
		show.Name = htmlutil.CleanText(img.AttrOr("alt", ""))
		if show.Name == "" {
			show.Name = htmlutil.CleanText(event.Find("div.entry-title").First().Text())
		}
		if show.Name == "" {
			return
		}

		meta := htmlutil.CleanText(event.Find("div.entry-meta").First().Text())
		if date := dateRegex.FindString(meta); date != "" {
			show.Date = date
			if t := timeRegex.FindString(meta); t != "" {
				show.Date += " " + t
			}
		}

		show.Link = event.Find(`a[href*="get-tickets/event"]`).First().AttrOr("href", "")
		show.Image = img.AttrOr("src", "")

		if textutil.ContainsAny(show.Name, sponsorPatterns) {
			skipped = append(skipped, Skipped{Name: show.Name, Reason: "sponsor/ad"})
			return
		}
		if show.Link == "" || show.Date == "" {
			skipped = append(skipped, Skipped{Name: show.Name, Reason: "no link/date"})
			return
		}

		shows = append(shows, show)
	})

	return shows, skipped
}
