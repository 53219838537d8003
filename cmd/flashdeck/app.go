package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/platform/sqlite"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
)

// gateway is a persistence gateway owning a database connection.
type gateway interface {
	store.Gateway
	Close() error
}

// application holds the shared dependencies and ensures proper cleanup on
// shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	gateway gateway
	library *service.Library
}

// persistenceMonitor logs library persistence events.
type persistenceMonitor struct {
	logger *slog.Logger
}

// HandleEvent implements events.EventHandler.
func (m *persistenceMonitor) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeSaveFailed {
		m.logger.Debug("library event", slog.String("event_type", event.Type))
		return nil
	}
	var payload events.SaveFailedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	m.logger.Warn("library changes are not persisted",
		slog.String("operation", payload.Operation),
		slog.Any("keys", payload.Keys),
		slog.String("error", payload.Error))
	return nil
}

// openGateway connects to the configured storage and applies migrations.
func openGateway(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (gateway, error) {
	switch cfg.Driver {
	case "sqlite":
		s, err := sqlite.Open(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := postgres.Open(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// newApplication opens storage and loads the library.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	gw, err := openGateway(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(&persistenceMonitor{logger: logger.With(slog.String("component", "persistence_monitor"))})

	lib, err := service.NewLibrary(gw, emitter, logger,
		service.WithLearningService(learning.NewServiceWithParams(learning.NewDefaultParams(), cfg.Study.ShuffleTies)))
	if err != nil {
		_ = gw.Close()
		return nil, fmt.Errorf("failed to create library: %w", err)
	}

	report, err := lib.Load(ctx)
	switch {
	case errors.Is(err, service.ErrPersistFailed):
		// The loaded collection is usable; the upgrade is retried on the next save.
		logger.Warn("library loaded but upgrade not saved", slog.String("error", err.Error()))
	case err != nil:
		_ = gw.Close()
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	if len(report.Discarded) > 0 {
		logger.Warn("some records could not be read and were skipped",
			slog.Any("keys", report.Discarded))
	}

	return &application{
		config:  cfg,
		logger:  logger,
		gateway: gw,
		library: lib,
	}, nil
}

// cleanup releases the storage connection.
func (app *application) cleanup() {
	if err := app.gateway.Close(); err != nil {
		app.logger.Error("failed to close storage", slog.String("error", err.Error()))
	}
}

// deckID resolves a deck name given on the command line.
func (app *application) deckID(name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	for _, d := range app.library.Decks() {
		if d.Name == name {
			id := d.ID
			return &id, nil
		}
	}
	return nil, fmt.Errorf("deck %q not found", name)
}

// importFile imports a CSV file and prints a summary to out.
func (app *application) importFile(ctx context.Context, path, deckName string, out io.Writer) error {
	deckID, err := app.deckID(deckName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	result, err := app.library.ImportCSV(ctx, string(data), service.ImportOptions{TargetDeckID: deckID})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(out, "imported %d cards\n", result.Imported)
	if len(result.CreatedDecks) > 0 {
		fmt.Fprintf(out, "created decks: %s\n", strings.Join(result.CreatedDecks, ", "))
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(out, msg)
	}
	return nil
}

// exportFile writes the CSV export to path, or to out when path is "-".
func (app *application) exportFile(path, deckName string, out io.Writer) error {
	deckID, err := app.deckID(deckName)
	if err != nil {
		return err
	}

	text, err := app.library.ExportCSV(deckID)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if path == "-" {
		_, err = io.WriteString(out, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	app.logger.Info("exported cards", slog.String("path", path))
	return nil
}
