package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Word,Meaning,Example,Article,Plural,Past Tense,Past Participle,Decks,Attempts,Successes,Mastery\n" +
	"Hund,dog,,der,Hunde,,,Animals,3,3,100\n" +
	"Maus,mouse,,,,,,,,,\n" +
	",broken,,,,,,,,,\n"

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr string
	}{
		{name: "serve", args: nil, want: options{}},
		{name: "import", args: []string{"-import", "cards.csv", "-deck", "Animals"}, want: options{importPath: "cards.csv", deckName: "Animals"}},
		{name: "export", args: []string{"-export", "-"}, want: options{exportPath: "-"}},
		{name: "both", args: []string{"-import", "a.csv", "-export", "b.csv"}, wantErr: "cannot be combined"},
		{name: "deck alone", args: []string{"-deck", "Animals"}, wantErr: "-deck requires"},
		{name: "stray argument", args: []string{"serve"}, wantErr: "unexpected arguments"},
		{name: "unknown flag", args: []string{"-verbose"}, wantErr: "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Storage: config.StorageConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "flashdeck.db")},
		Study:   config.StudyConfig{ShuffleTies: false},
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	log, _ := logger.NewTestLogger()

	csvPath := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))

	app, err := newApplication(ctx, cfg, log)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, app.importFile(ctx, csvPath, "", &out))
	assert.Equal(t, "imported 2 cards\ncreated decks: Animals\nline 4: missing word or meaning\n", out.String())
	app.cleanup()

	// A fresh process sees the imported cards.
	app, err = newApplication(ctx, cfg, log)
	require.NoError(t, err)
	defer app.cleanup()
	assert.Len(t, app.library.Cards(), 2)

	out.Reset()
	require.NoError(t, app.exportFile("-", "Animals", &out))
	assert.Equal(t,
		"Word,Meaning,Example,Article,Plural,Past Tense,Past Participle,Decks,Attempts,Successes,Mastery\n"+
			"Hund,dog,,der,Hunde,,,Animals,3,3,100\n",
		out.String())

	exportPath := filepath.Join(t.TempDir(), "all.csv")
	require.NoError(t, app.exportFile(exportPath, "", io.Discard))
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))

	assert.EqualError(t, app.exportFile("-", "Birds", io.Discard), `deck "Birds" not found`)
}

func TestImportIntoDeck(t *testing.T) {
	ctx := context.Background()
	log, _ := logger.NewTestLogger()

	app, err := newApplication(ctx, testConfig(t), log)
	require.NoError(t, err)
	defer app.cleanup()

	_, err = app.library.CreateDeck(ctx, "Inbox", nil)
	require.NoError(t, err)

	csvPath := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))
	require.NoError(t, app.importFile(ctx, csvPath, "Inbox", io.Discard))

	id, err := app.deckID("Inbox")
	require.NoError(t, err)
	members, err := app.library.CardsInDeck(*id)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Maus", members[0].Term)

	err = app.importFile(ctx, filepath.Join(t.TempDir(), "missing.csv"), "", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read import file")
}

func TestNewApplication_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "mysql"

	log, _ := logger.NewTestLogger()
	_, err := newApplication(context.Background(), cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported storage driver "mysql"`)
}

func TestPersistenceMonitor(t *testing.T) {
	log, buf := logger.NewTestLogger()
	m := &persistenceMonitor{logger: log}

	event, err := events.NewEvent(events.TypeSaveFailed, events.SaveFailedPayload{
		Operation: "create_card",
		Keys:      []string{"cards", "decks"},
		Error:     "disk full",
	})
	require.NoError(t, err)
	require.NoError(t, m.HandleEvent(context.Background(), event))

	event, err = events.NewEvent(events.TypeSaved, events.SavedPayload{Operation: "create_card"})
	require.NoError(t, err)
	require.NoError(t, m.HandleEvent(context.Background(), event))

	assert.Equal(t, []string{"library changes are not persisted"}, buf.Messages(slog.LevelWarn))
	assert.Equal(t, []string{"library event"}, buf.Messages(slog.LevelDebug))
}
