package checker

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"showscout/lib/timezone"

	"go.opentelemetry.io/otel/codes"
)

// Publisher pushes the snapshot file to the git remote backing the
// static shows page. The repository and its credentials belong to the
// environment, so this shells out to git rather than embedding one.
type Publisher struct {
	dir string
}

func NewPublisher(dataDir string) Publisher {
	return Publisher{dir: dataDir}
}

func (p Publisher) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Push commits and pushes available_shows.json when it changed.
// Failures are reported but the caller treats them as non-fatal.
func (p Publisher) Push(ctx context.Context, now time.Time) error {
	ctx, span := tracer.Start(ctx, "publisher:Push")
	defer span.End()

	status, err := p.git(ctx, "status", "--porcelain", snapshotFile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "git status failed")
		return err
	}
	if strings.TrimSpace(status) == "" {
		slog.InfoContext(ctx, "snapshot unchanged, skipping push")
		return nil
	}

	if _, err := p.git(ctx, "add", snapshotFile); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "git add failed")
		return err
	}

	message := fmt.Sprintf("Update available shows - %s", now.In(timezone.Location).Format("2006-01-02 15:04"))
	if _, err := p.git(ctx, "commit", "-m", message); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "git commit failed")
		return err
	}

	if _, err := p.git(ctx, "push"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "git push failed")
		return err
	}

	slog.InfoContext(ctx, "pushed updated snapshot")
	return nil
}
