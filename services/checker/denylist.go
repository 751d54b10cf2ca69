package checker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"showscout/lib/textutil"

	"github.com/go-resty/resty/v2"
)

// DenylistSource supplies lowercase substrings; shows whose name
// contains any of them are excluded. Sources are tried in order until
// one succeeds, an exhausted chain degrades to an empty denylist.
type DenylistSource interface {
	Name() string
	Load(ctx context.Context) ([]string, error)
}

func LoadDenylist(ctx context.Context, sources ...DenylistSource) []string {
	for _, src := range sources {
		entries, err := src.Load(ctx)
		if err != nil {
			slog.WarnContext(ctx, "denylist source failed", "source", src.Name(), "err", err)
			continue
		}
		slog.InfoContext(ctx, "loaded denylist", "source", src.Name(), "entries", len(entries))
		return entries
	}
	slog.WarnContext(ctx, "all denylist sources failed, continuing without one")
	return nil
}

// one substring per line, '#' comments and blank lines ignored
func parseDenylist(text string) []string {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

type GistDenylistSource struct {
	http *resty.Client
	url  string
}

func NewGistDenylistSource(rawUrl string) GistDenylistSource {
	client := resty.New()
	client.SetTimeout(time.Second * 10)
	return GistDenylistSource{http: client, url: rawUrl}
}

func (s GistDenylistSource) Name() string { return "gist" }

func (s GistDenylistSource) Load(ctx context.Context) ([]string, error) {
	if s.url == "" {
		return nil, os.ErrNotExist
	}
	res, err := s.http.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("gist returned status %d", res.StatusCode())
	}
	return parseDenylist(res.String()), nil
}

type FileDenylistSource struct {
	path string
}

func NewFileDenylistSource(path string) FileDenylistSource {
	return FileDenylistSource{path: path}
}

func (s FileDenylistSource) Name() string { return "local file" }

func (s FileDenylistSource) Load(ctx context.Context) ([]string, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return parseDenylist(string(contents)), nil
}

// filterDenied drops shows whose lowercased name contains any denylist
// entry. Near misses (within 2 edits of an entry but not matching) are
// logged to help catch denylist typos.
func filterDenied(ctx context.Context, shows []Show, denylist []string) []Show {
	if len(denylist) == 0 {
		return shows
	}

	var kept []Show
	for _, show := range shows {
		if textutil.ContainsAny(show.Name, denylist) {
			slog.InfoContext(ctx, "filtered out denied show", "name", show.Name)
			continue
		}
		if entry, dist := textutil.NearestMatch(show.Name, denylist); dist > 0 && dist <= 2 {
			slog.DebugContext(ctx, "show name nearly matches denylist entry",
				"name", show.Name, "entry", entry, "distance", dist)
		}
		kept = append(kept, show)
	}
	return kept
}
