// Package infrastructure assembles the shared systems every domain module
// needs: lifecycle, logging, database, blob storage, and the inference client.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/callil/tax-ui/internal/config"
	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/pkg/database"
	"github.com/callil/tax-ui/pkg/lifecycle"
	"github.com/callil/tax-ui/pkg/storage"
)

// Infrastructure holds the core systems. Storage is nil when no storage
// credentials are configured; source PDFs are then not archived.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Inference *inference.Anthropic
}

// New initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	var store storage.System
	if cfg.Storage.Configured() {
		store, err = storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
	} else {
		logger.Warn("storage not configured, source PDFs will not be archived")
	}

	client := inference.NewAnthropic(&cfg.Inference, logger)
	if !client.HasKey() {
		logger.Warn("no inference API key configured, requests must supply one")
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Inference: client,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		i.Inference.Close()
	})
	return nil
}
