// Package houseseats scrapes the members area of lv.houseseats.com.
//
// The markup is not an API, selectors here follow whatever the site
// currently renders and are expected to rot. Parsing is split from
// fetching so it can be exercised against saved pages.
package houseseats

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"showscout/lib/htmlutil"
	"showscout/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/houseseats")

var LoginFailed = fmt.Errorf("failed to login to houseseats")

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Show struct {
	Name  string
	Date  string
	Link  string
	Image string
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
		opts.BaseUrl = "https://lv.houseseats.com"
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

	c := &Client{
		baseUrl:  strings.TrimSuffix(opts.BaseUrl, "/"),
		email:    opts.Email,
		password: opts.Password,
		http:     client,
	}
	return c, nil
}

// Login submits the member login form. The site does not return a
// clean status, success is probed through markers in the response body.
func (c *Client) Login(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	// hit the homepage first to pick up session cookies
	_, err := c.http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch homepage")
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"submit":    "login",
			"lastplace": "",
			"email":     c.email,
			"password":  c.password,
		}).
		Post("/member/index.bv")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	body := strings.ToLower(res.String())
	if strings.Contains(body, "logout") || strings.Contains(body, "welcome") {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err == nil {
		errMsg := htmlutil.CleanText(doc.Find(".error, .alert, .alert-danger").First().Text())
		if errMsg != "" {
			span.SetStatus(codes.Error, errMsg)
		}
	}
	if strings.Contains(body, "member login") {
		// still on the login page, credentials are likely wrong
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}

	// no explicit marker either way, assume we got in
	return nil
}

func (c *Client) FetchShows(ctx context.Context) ([]Show, error) {
	ctx, span := tracer.Start(ctx, "client:FetchShows")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		Get("/member/ajax/upcoming-shows.bv")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch upcoming shows")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse upcoming shows html")
		return nil, err
	}

	return c.parseShows(doc), nil
}

// each show is rendered as a bootstrap panel: the heading anchor holds
// name and ticket link, a grid-cal-date div holds the date blurb
func (c *Client) parseShows(doc *goquery.Document) []Show {
	var shows []Show

	doc.Find("div.panel-default").Each(func(_ int, panel *goquery.Selection) {
		var show Show

		heading := panel.Find("div.panel-heading a").First()
		show.Name = htmlutil.CleanText(heading.Text())
		href := heading.AttrOr("href", "")
		if strings.HasPrefix(href, "./") {
			// hrefs in the members area are relative to /member/
			show.Link = htmlutil.AbsoluteUrl(c.baseUrl+"/member", href)
		} else {
			show.Link = htmlutil.AbsoluteUrl(c.baseUrl, href)
		}

		show.Date = htmlutil.CleanText(panel.Find("div.grid-cal-date").First().Text())

		src := panel.Find("img.img-responsive").First().AttrOr("src", "")
		show.Image = htmlutil.AbsoluteUrl(c.baseUrl, src)

		if show.Name == "" {
			return
		}
		shows = append(shows, show)
	})

	return shows
}
