// Package engine implements the monthly state transition of the game and
// the player commands that modify the state between months.
//
// Every operation takes a GameState and returns a new one; the input is
// never modified. Commands whose preconditions fail return the input
// unchanged and report nothing. The engine performs no I/O and never
// blocks; callers that accept commands concurrently must serialize them.
package engine

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/wealth-quest/internal/catalog"
	"github.com/tatianab/wealth-quest/internal/models"
)

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// Labeler renders the human-readable text of log entries.
type Labeler interface {
	Text(key string, params map[string]any) string
	Name(category, id, field, fallback string) string
	Money(amount float64) string
}

// Engine holds the collaborators of the state transition. It keeps no game
// state of its own.
type Engine struct {
	catalog *catalog.Catalog
	rng     Source
	labels  Labeler
	newID   func() string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSource sets the random source used for asset moves and events.
func WithSource(src Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithSeed uses a PCG generator seeded with seed.
func WithSeed(seed uint64) Option {
	return WithSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithIDs sets the generator of log entry ids.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an Engine over a catalog. Log text is rendered by labels.
func New(cat *catalog.Catalog, labels Labeler, opts ...Option) *Engine {
	seed := uint64(time.Now().UnixNano())
	e := &Engine{
		catalog: cat,
		labels:  labels,
		newID:   uuid.NewString,
	}
	WithSeed(seed)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLabeler returns a copy of e that renders text with labels.
func (e *Engine) WithLabeler(labels Labeler) *Engine {
	c := *e
	c.labels = labels
	return &c
}

// Catalog returns the reference data the engine runs on.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// NewGame returns the state of month 0.
func (e *Engine) NewGame() models.GameState {
	return e.catalog.NewGame(e.labels.Text("logs.welcome", nil))
}

// effect sums magnitude×level over the skills with the given effect kind.
func (e *Engine) effect(s models.GameState, kind models.EffectKind) float64 {
	var total float64
	for _, sk := range e.catalog.Skills {
		if sk.Effect.Kind == kind {
			total += sk.Effect.Magnitude * float64(s.SkillLevel(sk.ID))
		}
	}
	return total
}

func (e *Engine) monthlySalary(s models.GameState) float64 {
	return s.Income.Job.BaseSalary * (1 + e.effect(s, models.EffectIncomeBoost)) / 12
}

func (e *Engine) creepFactor(s models.GameState) float64 {
	return max(0, 1-e.effect(s, models.EffectExpenseReduction))
}

func (e *Engine) volatilityFactor(s models.GameState) float64 {
	return max(0, 1-e.effect(s, models.EffectVolatilityReduction))
}

func recomputeNetWorth(s *models.GameState) {
	s.NetWorth = s.ComputeNetWorth()
}
