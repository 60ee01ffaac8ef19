package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/asidecache"
)

func newBuf(level slog.Level) (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
}

func TestRedactsKeysByDefault(t *testing.T) {
	buf, l := newBuf(slog.LevelDebug)
	h := New(l, Options{})

	h.StoreError("get", "user:secret", errors.New("dial tcp: refused"))
	out := buf.String()
	if strings.Contains(out, "user:secret") {
		t.Fatalf("raw key leaked: %s", out)
	}
	if !strings.Contains(out, "asidecache.store_error") || !strings.Contains(out, "op=get") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCustomRedactor(t *testing.T) {
	buf, l := newBuf(slog.LevelDebug)
	h := New(l, Options{Redact: func(k string) string { return "K(" + k + ")" }})

	h.CorruptEntry("aside:ns:k")
	if !strings.Contains(buf.String(), "K(aside:ns:k)") {
		t.Fatalf("custom redactor not used: %s", buf.String())
	}
}

func TestMissSampling(t *testing.T) {
	buf, l := newBuf(slog.LevelDebug)
	h := New(l, Options{MissEvery: 3})

	for i := 0; i < 9; i++ {
		h.Miss("k")
	}
	if n := strings.Count(buf.String(), "asidecache.miss"); n != 3 {
		t.Fatalf("sampled misses: got %d want 3", n)
	}
}

func TestLoadDoneLevels(t *testing.T) {
	buf, l := newBuf(slog.LevelWarn)
	h := New(l, Options{SlowLoad: time.Second})

	h.LoadDone("fast", asidecache.OutcomeValue, time.Millisecond)
	if buf.Len() != 0 {
		t.Fatalf("fast load should log below Warn: %s", buf.String())
	}
	h.LoadDone("slow", asidecache.OutcomeValue, 2*time.Second)
	if !strings.Contains(buf.String(), "asidecache.slow_load") {
		t.Fatalf("slow load not logged: %s", buf.String())
	}
	h.LoadDone("bad", asidecache.OutcomeError, time.Millisecond)
	if !strings.Contains(buf.String(), "asidecache.load_failed") {
		t.Fatalf("failed load not logged: %s", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.Hit("k")
	h.LoadDone("k", asidecache.OutcomeError, 0)
	h.WaitAbandoned("k", errors.New("x"))
}
