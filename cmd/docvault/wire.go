package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docvault/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docvault/internal/adapters/driving/cli"
	"github.com/custodia-labs/docvault/internal/connectors/filesystem"
	"github.com/custodia-labs/docvault/internal/core/services"
	"github.com/custodia-labs/docvault/internal/logger"
	"github.com/custodia-labs/docvault/internal/normalisers/pdf"
	"github.com/custodia-labs/docvault/internal/postprocessors"
)

// bootstrap builds the services for one command run. Flags win over the
// config file, which wins over the defaults.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	svc := &cli.Services{Settings: settingsService}
	if opts.SettingsOnly {
		return svc, func() error { return nil }, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	svc.DataDir = firstNonEmpty(opts.DataDir, settings.Storage.DataDir)
	svc.PDFDir = firstNonEmpty(opts.PDFDir, settings.Ingest.PDFDir)

	pipeline, err := postprocessors.NewDefaultRegistry().BuildPipeline(settings.Pipeline)
	if err != nil {
		return nil, nil, fmt.Errorf("building pipeline: %w", err)
	}

	store, err := sqlite.NewStore(svc.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening archive: %w", err)
	}
	logger.Debug("Archive database: %s", store.Path())
	logger.Debug("PDF directory: %s", svc.PDFDir)

	loader := filesystem.NewLoader(pdf.New(), pipeline)
	svc.Archive = services.NewArchiveService(store.ChunkStore(), loader, svc.PDFDir)
	svc.Watch = func(ctx context.Context, handle func(context.Context, string)) error {
		return filesystem.NewWatcher(svc.PDFDir, loader.Matches, handle).Watch(ctx)
	}

	return svc, store.Close, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
