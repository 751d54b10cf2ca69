package checker

import (
	"fmt"
	"log/slog"
	"os"

	"showscout/lib/timezone"
)

// RunLog appends bracket-timestamped lines to houseseats.log. The file
// predates this implementation and is still tailed by the operator's
// cron wrapper, so the format is an external interface. Messages are
// mirrored to slog.
type RunLog struct {
	file *os.File
}

func OpenRunLog(path string) *RunLog {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Warn("failed to open run log, continuing without it", "path", path, "err", err)
		return &RunLog{}
	}
	return &RunLog{file: f}
}

func (l *RunLog) Logf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	slog.Info(message)

	if l.file == nil {
		return
	}
	line := fmt.Sprintf("[%s] %s\n", timezone.Now().Format("2006-01-02 15:04:05"), message)
	_, err := l.file.WriteString(line)
	if err != nil {
		slog.Warn("failed to append to run log", "err", err)
	}
}

func (l *RunLog) Close() {
	if l.file != nil {
		l.file.Close()
	}
}
