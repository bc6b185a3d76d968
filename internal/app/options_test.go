package app

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestValidMode(t *testing.T) {
	for _, mode := range []string{"all", "api", "worker", " API ", "Worker"} {
		if !ValidMode(mode) {
			t.Fatalf("expected %q to be a valid mode", mode)
		}
	}
	for _, mode := range []string{"", "serve", "api,worker"} {
		if ValidMode(mode) {
			t.Fatalf("expected %q to be rejected", mode)
		}
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{Logger: zap.NewNop().Sugar()})
	if opts.Mode != ModeAll {
		t.Fatalf("expected default mode %q, got %q", ModeAll, opts.Mode)
	}
	if opts.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected default shutdown timeout, got %v", opts.ShutdownTimeout)
	}

	opts = normalizeOptions(Options{Logger: zap.NewNop().Sugar(), Mode: "bogus"})
	if opts.Mode != ModeAll {
		t.Fatalf("expected unknown mode to fall back to %q, got %q", ModeAll, opts.Mode)
	}

	opts = normalizeOptions(Options{Logger: zap.NewNop().Sugar(), Mode: " Worker "})
	if opts.Mode != ModeWorker {
		t.Fatalf("expected trimmed lowercase mode, got %q", opts.Mode)
	}
}
