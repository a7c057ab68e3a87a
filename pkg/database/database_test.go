package database_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/callil/tax-ui/pkg/database"
	"github.com/callil/tax-ui/pkg/lifecycle"
)

func TestNewIsLazy(t *testing.T) {
	cfg := database.Config{Name: "returns", User: "svc", Port: 1}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	sys, err := database.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Connection().Close()

	if got := sys.Connection().Stats().MaxOpenConnections; got != cfg.MaxOpenConns {
		t.Errorf("MaxOpenConnections = %d, want %d", got, cfg.MaxOpenConns)
	}
	if sys.Ready() {
		t.Error("ready before Start")
	}
}

func TestStartUnreachableStaysNotReady(t *testing.T) {
	cfg := database.Config{Name: "returns", User: "svc", Host: "127.0.0.1", Port: 1, ConnTimeout: "200ms"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	sys, err := database.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	if lc.Ready() {
		t.Error("coordinator ready with unreachable database")
	}
	if status := lc.Status(); status["database"] {
		t.Errorf("status = %v", status)
	}

	if err := lc.Shutdown(2e9); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
