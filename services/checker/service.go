package checker

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"showscout/lib/timezone"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("showscout.services.checker")

type Options struct {
	Config     Config
	Connectors []Connector
	Denylist   []DenylistSource
	// skip the randomized anti-bot pauses (test mode)
	Fast bool
	// push the snapshot to the git remote after writing it
	Push bool
	// overridable for tests, defaults to timezone.Now
	Now func() time.Time
}

// Service runs one full check: scrape, filter, track, merge, publish,
// notify. One run, one process, strictly sequential.
type Service struct {
	config     Config
	connectors []Connector
	denylist   []DenylistSource
	notifier   Notifier
	publisher  Publisher
	fast       bool
	push       bool
	now        func() time.Time
}

func NewService(opts Options) Service {
	now := opts.Now
	if now == nil {
		now = timezone.Now
	}
	return Service{
		config:     opts.Config,
		connectors: opts.Connectors,
		denylist:   opts.Denylist,
		notifier:   NewNotifier(opts.Config),
		publisher:  NewPublisher(opts.Config.DataDir),
		fast:       opts.Fast,
		push:       opts.Push,
		now:        now,
	}
}

// RunResult feeds the console summary; Fresh holds this run's shows in
// scrape order, New the subset never notified before.
type RunResult struct {
	Fresh []Show
	New   []Show
}

func (s Service) statePath(name string) string {
	return filepath.Join(s.config.DataDir, name)
}

// a courtesy pause between network calls, uniformly random within the
// given bounds. not a correctness mechanism
func (s Service) pause(ctx context.Context, minSeconds, maxSeconds int) {
	if s.fast {
		return
	}
	ms, err := random.IntRange(minSeconds*1000, maxSeconds*1000)
	if err != nil {
		ms = minSeconds * 1000
	}
	slog.DebugContext(ctx, "waiting between requests", "seconds", float64(ms)/1000)
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
	case <-ctx.Done():
	}
}

func (s Service) Run(ctx context.Context) RunResult {
	ctx, span := tracer.Start(ctx, "service:Run")
	defer span.End()

	now := s.now()

	runlog := OpenRunLog(s.statePath(runLogFile))
	defer runlog.Close()
	runlog.Logf("==================================================")
	runlog.Logf("Starting ShowScout (HouseSeats + 1stTix)")

	denylist := LoadDenylist(ctx, s.denylist...)

	notified := LoadNotified(s.statePath(notifiedFile))
	runlog.Logf("Loaded %d previously notified show+date combinations", len(notified))

	history := LoadHistory(s.statePath(historyFile))

	var fresh []Show
	var checked []Source

	s.pause(ctx, 1, 5)
	for i, conn := range s.connectors {
		if i > 0 {
			s.pause(ctx, 3, 10)
		}

		runlog.Logf("--- Checking %s ---", conn.Source())
		err := conn.Login(ctx)
		if err != nil {
			runlog.Logf("[%s] Failed to login, skipping: %v", conn.Source(), err)
			continue
		}
		runlog.Logf("[%s] Successfully logged in", conn.Source())

		s.pause(ctx, 2, 6)
		shows, err := conn.FetchShows(ctx)
		if err != nil {
			// excluded from this run entirely, the merger carries the
			// source's prior shows and timestamp forward
			runlog.Logf("[%s] Failed to fetch shows: %v", conn.Source(), err)
			continue
		}
		runlog.Logf("[%s] Found %d shows", conn.Source(), len(shows))

		fresh = append(fresh, shows...)
		checked = append(checked, conn.Source())
	}
	runlog.Logf("Total shows from all sources: %d", len(fresh))

	filtered := filterDenied(ctx, fresh, denylist)
	runlog.Logf("%d shows after filtering", len(filtered))

	// classify against the history as persisted by previous runs,
	// then record today's appearances
	for i := range filtered {
		filtered[i].Rare = history.IsRare(filtered[i], now)
	}
	history.Update(filtered, now)
	history.Prune(now)

	prior := LoadSnapshot(s.statePath(snapshotFile))
	snapshot := MergeSnapshot(prior, filtered, checked, now)
	if err := snapshot.Save(s.statePath(snapshotFile)); err != nil {
		runlog.Logf("Failed to save snapshot: %v", err)
	} else {
		runlog.Logf("Saved %d shows to %s", snapshot.Count, snapshotFile)
	}

	if s.push {
		if err := s.publisher.Push(ctx, now); err != nil {
			runlog.Logf("[git] Failed to push snapshot: %v", err)
		}
	}

	newShows := notified.Diff(filtered)
	runlog.Logf("%d new shows to notify about", len(newShows))

	if len(newShows) > 0 {
		if s.notifier.Enabled() {
			err := s.notifier.SendEmail(ctx, newShows)
			if err != nil {
				runlog.Logf("Failed to send email: %v", err)
			} else {
				runlog.Logf("Email sent successfully to %s", s.config.NotificationEmail)
			}
		} else {
			runlog.Logf("SMTP password not set - skipping email notification")
		}

		s.notifier.DesktopAlert(ctx, newShows)

		// not conditioned on dispatch success, see NotifiedSet.Commit
		notified.Commit(newShows)
		if err := notified.Save(s.statePath(notifiedFile)); err != nil {
			runlog.Logf("Failed to save notified shows: %v", err)
		}
		runlog.Logf("Marked %d shows as notified", len(newShows))
	} else {
		runlog.Logf("No new shows to notify about")
	}

	if err := history.Save(s.statePath(historyFile)); err != nil {
		runlog.Logf("Failed to save show history: %v", err)
	}

	runlog.Logf("Checker completed successfully")
	return RunResult{Fresh: filtered, New: newShows}
}
