package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/codec"
	"github.com/phrazzld/flashdeck/internal/collection"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

// emptyStatusMap replaces the legacy card-status table once it has been
// merged into the cards.
var emptyStatusMap = []byte("{}")

// Library is the store façade over one card collection.
type Library struct {
	mu       sync.Mutex
	engine   *collection.Engine
	learning learning.Service
	gateway  store.Gateway
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithLearningService replaces the default learning statistics service,
// e.g. with one built from configured parameters or a seeded random source.
func WithLearningService(svc learning.Service) Option {
	return func(l *Library) {
		if svc != nil {
			l.learning = svc
		}
	}
}

// LoadReport describes what Load found.
type LoadReport struct {
	Cards      int
	Decks      int
	CardSchema int
	DeckSchema int
	// StatusMerged counts cards whose counters came from the legacy status table.
	StatusMerged int
	// Upgraded is true when the records were written back in the current schema.
	Upgraded bool
	// Discarded lists record keys whose payload no schema could decode.
	Discarded []string
}

// NewLibrary creates an empty library holding only the system decks.
// emitter may be nil. If logger is nil, slog.Default() is used.
func NewLibrary(
	gateway store.Gateway,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (*Library, error) {
	if gateway == nil {
		return nil, domain.NewValidationError("gateway", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	l := &Library{
		learning: learning.NewDefaultService(),
		gateway:  gateway,
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "library")),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.engine = collection.NewEngine(l.learning, logger)
	return l, nil
}

// Load replaces the in-memory collection with the persisted one.
//
// Absent records mean a first run. A record no schema can decode is
// discarded with a warning and the library starts without it; such a
// record is never overwritten by the write-through upgrade, so it stays
// available for manual recovery until the next mutation saves over it.
func (l *Library) Load(ctx context.Context) (*LoadReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, l.logger)
	report := &LoadReport{}

	cardsRaw, err := l.read(ctx, store.KeyCards)
	if err != nil {
		return nil, err
	}
	decksRaw, err := l.read(ctx, store.KeyDecks)
	if err != nil {
		return nil, err
	}
	statusRaw, err := l.read(ctx, store.KeyCardStatus)
	if err != nil {
		return nil, err
	}

	legacy := false

	var cards []*domain.Card
	if decoded, err := codec.DecodeCards(cardsRaw); err == nil {
		cards = decoded.Items
		report.CardSchema = decoded.Schema
		legacy = legacy || decoded.Legacy
	} else if !errors.Is(err, codec.ErrNoData) {
		log.Warn("discarding undecodable card record", redact.Attr(err))
		report.Discarded = append(report.Discarded, store.KeyCards)
	}

	var decks []*domain.Deck
	if decoded, err := codec.DecodeDecks(decksRaw); err == nil {
		decks = decoded.Items
		report.DeckSchema = decoded.Schema
		legacy = legacy || decoded.Legacy
	} else if !errors.Is(err, codec.ErrNoData) {
		log.Warn("discarding undecodable deck record", redact.Attr(err))
		report.Discarded = append(report.Discarded, store.KeyDecks)
	}

	if status, err := codec.DecodeStatusMap(statusRaw); err == nil {
		report.StatusMerged = mergeStatus(cards, status)
	} else if !errors.Is(err, codec.ErrNoData) {
		log.Warn("ignoring undecodable card status record", redact.Attr(err))
	}

	reconciled := l.engine.Restore(cards, decks)
	report.Cards = len(l.engine.Cards())
	report.Decks = len(l.engine.Decks())

	var persistErr error
	if (legacy || reconciled || report.StatusMerged > 0) && len(report.Discarded) == 0 {
		var extra []store.Record
		if report.StatusMerged > 0 {
			extra = append(extra, store.Record{Key: store.KeyCardStatus, Payload: emptyStatusMap})
		}
		persistErr = l.persist(ctx, "load", extra...)
		report.Upgraded = persistErr == nil
	}

	log.Info("loaded library",
		slog.Int("card_count", report.Cards),
		slog.Int("deck_count", report.Decks),
		slog.Int("card_schema", report.CardSchema),
		slog.Int("deck_schema", report.DeckSchema),
		slog.Int("status_merged", report.StatusMerged),
		slog.Bool("upgraded", report.Upgraded))
	l.emit(ctx, events.TypeLoaded, events.LoadedPayload{
		Cards:    report.Cards,
		Decks:    report.Decks,
		Upgraded: report.Upgraded,
	})

	return report, persistErr
}

// read loads one record, treating an absent key as no data.
func (l *Library) read(ctx context.Context, key string) ([]byte, error) {
	data, err := l.gateway.Load(ctx, key)
	if err == nil || store.IsNotFoundError(err) {
		return data, nil
	}
	logger.FromContextOrDefault(ctx, l.logger).Error("failed to read record",
		slog.String("key", key),
		redact.Attr(err))
	return nil, NewLibraryError("load", "failed to read "+key, errors.Join(ErrLoadFailed, err))
}

// mergeStatus copies legacy side-table counters into cards that have none
// of their own and returns how many cards took them.
func mergeStatus(cards []*domain.Card, status map[uuid.UUID]codec.StatusEntry) int {
	merged := 0
	for _, c := range cards {
		entry, ok := status[c.ID]
		if !ok || c.Attempts != 0 || entry.TimesShown <= 0 {
			continue
		}
		c.Attempts = entry.TimesShown
		c.Successes = entry.TimesCorrect
		c.NormalizeCounters()
		merged++
	}
	return merged
}

// persist encodes both collections and writes them, plus any extra records,
// in one batch. Callers hold l.mu.
func (l *Library) persist(ctx context.Context, operation string, extra ...store.Record) error {
	log := logger.FromContextOrDefault(ctx, l.logger)

	cardsData, err := codec.EncodeCards(l.engine.Cards())
	if err != nil {
		return l.persistFailed(ctx, operation, nil, err)
	}
	decksData, err := codec.EncodeDecks(l.engine.Decks())
	if err != nil {
		return l.persistFailed(ctx, operation, nil, err)
	}

	records := append([]store.Record{
		{Key: store.KeyCards, Payload: cardsData},
		{Key: store.KeyDecks, Payload: decksData},
	}, extra...)
	keys := recordKeys(records)

	if err := l.gateway.SaveAll(ctx, records...); err != nil {
		return l.persistFailed(ctx, operation, keys, err)
	}

	log.Debug("persisted library",
		slog.String("operation", operation),
		slog.Any("keys", keys))
	l.emit(ctx, events.TypeSaved, events.SavedPayload{Operation: operation, Keys: keys})
	return nil
}

func (l *Library) persistFailed(ctx context.Context, operation string, keys []string, err error) error {
	logger.FromContextOrDefault(ctx, l.logger).Error("failed to persist library",
		slog.String("operation", operation),
		redact.Attr(err))
	l.emit(ctx, events.TypeSaveFailed, events.SaveFailedPayload{
		Operation: operation,
		Keys:      keys,
		Error:     redact.Error(err),
	})
	return NewLibraryError(operation, "failed to persist", errors.Join(ErrPersistFailed, err))
}

// emit publishes an event when an emitter is configured. Emission problems
// are logged and never fail the operation.
func (l *Library) emit(ctx context.Context, eventType string, payload any) {
	if l.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, l.logger)

	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Warn("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := l.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}

func recordKeys(records []store.Record) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return keys
}
