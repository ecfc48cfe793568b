// Package logs builds the slog logger the command line tools hand to the
// runtime. Records fan out to a text handler on the given writer and, when
// the process runs as a systemd service, to the journal with journald-safe
// field names.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

// SetDebug lowers the level of every logger built by New to debug.
func SetDebug() {
	level.Set(slog.LevelDebug)
}

// New returns a logger writing text records to w. Under systemd the terminal
// handler is skipped and records go to the journal instead; when the journal
// is unreachable the text handler carries a warning and stays the sole sink.
func New(w io.Writer) *slog.Logger {
	var handlers []slog.Handler

	var terminal slog.Handler
	if !underSystemd() {
		terminal = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
		handlers = append(handlers, terminal)
	}

	journal, err := slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: toJournalKey,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		if terminal != nil {
			rec := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
			rec.Add("error", err)
			_ = terminal.Handle(context.Background(), rec)
		}
	} else {
		handlers = append(handlers, journal)
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// toJournalKey maps an attribute key onto the journald field alphabet,
// uppercase letters, digits and underscore.
func toJournalKey(key string) string {
	key = strings.ToUpper(key)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, key)
}

func underSystemd() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(string(content), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(strings.TrimSpace(parts[2])), ".service")
}
