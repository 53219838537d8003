package learning

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Service defines the learning statistics operations that do not touch
// deck membership.
type Service interface {
	// Classify files a card as unattempted, learning or learnt.
	Classify(card *domain.Card) Classification

	// Score returns the study priority of a card. Lower is studied sooner.
	Score(card *domain.Card) int

	// SortForStudy returns the cards ordered by ascending score.
	// The relative order of equal scores is unspecified.
	SortForStudy(cards []*domain.Card) []*domain.Card

	// Summary counts cards per classification.
	Summary(cards []*domain.Card) Summary
}

// Summary is a per-classification card count.
type Summary struct {
	Total       int `json:"total"`
	Unattempted int `json:"unattempted"`
	Learning    int `json:"learning"`
	Learnt      int `json:"learnt"`
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params  *Params
	shuffle bool

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDefaultService creates a service with default parameters that shuffles ties.
func NewDefaultService() Service {
	return NewServiceWithParams(NewDefaultParams(), true)
}

// NewServiceWithParams creates a service with custom parameters.
// When shuffleTies is false, equal scores keep their input order.
func NewServiceWithParams(params *Params, shuffleTies bool) Service {
	seed := uint64(time.Now().UnixNano())
	return NewServiceWithRand(params, rand.New(rand.NewPCG(seed, seed>>1)), shuffleTies)
}

// NewServiceWithRand creates a service with an explicit random source.
func NewServiceWithRand(params *Params, rng *rand.Rand, shuffleTies bool) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params:  params,
		shuffle: shuffleTies,
		rng:     rng,
	}
}

// Classify implements Service.Classify
func (s *defaultService) Classify(card *domain.Card) Classification {
	return classify(card, s.params)
}

// Score implements Service.Score
func (s *defaultService) Score(card *domain.Card) int {
	return score(card, s.params)
}

// SortForStudy implements Service.SortForStudy
func (s *defaultService) SortForStudy(cards []*domain.Card) []*domain.Card {
	out := slices.Clone(cards)

	if s.shuffle && s.rng != nil {
		s.mu.Lock()
		s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		s.mu.Unlock()
	}

	scores := make(map[*domain.Card]int, len(out))
	for _, c := range out {
		scores[c] = score(c, s.params)
	}
	slices.SortStableFunc(out, func(a, b *domain.Card) int {
		return scores[a] - scores[b]
	})
	return out
}

// Summary implements Service.Summary
func (s *defaultService) Summary(cards []*domain.Card) Summary {
	sum := Summary{Total: len(cards)}
	for _, c := range cards {
		switch classify(c, s.params) {
		case Learnt:
			sum.Learnt++
		case Learning:
			sum.Learning++
		default:
			sum.Unattempted++
		}
	}
	return sum
}
