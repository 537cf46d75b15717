package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, done := Setup(Options{Level: "warn", Out: &buf})
	defer done()
	log.Info("hidden")
	log.Warn("shown", "stage", "load")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "stage=load") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	log, done := Setup(Options{Format: "json", Out: &buf})
	defer done()
	log.Info("hello", "rows", 3)
	if !strings.Contains(buf.String(), `"rows":3`) {
		t.Fatalf("expected json output, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warning": slog.LevelWarn,
		"error": slog.LevelError, "bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("multi handler should be enabled when any sink is")
	}
	log := slog.New(h).With("run_id", "r1")
	log.Debug("detail")
	if !strings.Contains(a.String(), "run_id=r1") {
		t.Fatalf("debug sink missed record: %q", a.String())
	}
	if b.Len() != 0 {
		t.Fatalf("error sink received a debug record: %q", b.String())
	}
}
