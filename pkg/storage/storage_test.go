package storage_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/callil/tax-ui/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFinalize(t *testing.T) {
	var cfg storage.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.ContainerName != "returns" {
		t.Errorf("container_name = %q, want returns", cfg.ContainerName)
	}
	if cfg.Configured() {
		t.Error("empty config reports configured")
	}

	t.Setenv("TEST_STORAGE_URL", "https://acct.blob.core.windows.net/")
	cfg = storage.Config{}
	if err := cfg.Finalize(&storage.Env{AccountURL: "TEST_STORAGE_URL"}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if !cfg.Configured() || cfg.AccountURL != "https://acct.blob.core.windows.net/" {
		t.Errorf("account_url not applied: %+v", cfg)
	}

	bad := storage.Config{AccountURL: "not a url"}
	if err := bad.Finalize(nil); err == nil || !strings.Contains(err.Error(), "account_url") {
		t.Errorf("error = %v, want account_url validation", err)
	}
}

func TestNew(t *testing.T) {
	sys, err := storage.New(&storage.Config{ContainerName: "returns", ConnectionString: azuriteConnString}, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys.Ready() {
		t.Error("ready before Start")
	}

	if _, err := storage.New(&storage.Config{ContainerName: "returns", ConnectionString: "garbage"}, discard()); err == nil {
		t.Error("expected error for invalid connection string")
	}
	if _, err := storage.New(&storage.Config{ContainerName: "returns"}, discard()); err == nil {
		t.Error("expected error without credentials")
	}
}

func TestKeyValidation(t *testing.T) {
	sys, err := storage.New(&storage.Config{ContainerName: "returns", ConnectionString: azuriteConnString}, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := sys.Delete(ctx, ""); !errors.Is(err, storage.ErrEmptyKey) {
		t.Errorf("Delete(\"\") = %v, want ErrEmptyKey", err)
	}
	if _, err := sys.Download(ctx, "returns/../secrets"); !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("Download(traversal) = %v, want ErrInvalidKey", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", storage.ErrEmptyKey), http.StatusBadRequest},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := storage.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
