// Package session holds the current game and serializes every command
// applied to it. It is safe for concurrent use: the TUI, the autoplay
// scheduler and the autopilot all go through the same lock.
package session

import (
	"sync"

	"github.com/tatianab/wealth-quest/internal/engine"
	"github.com/tatianab/wealth-quest/internal/log"
	"github.com/tatianab/wealth-quest/internal/models"
)

// Session guards one game state.
type Session struct {
	mu     sync.Mutex
	eng    *engine.Engine
	state  models.GameState
	logger *log.Logger
}

// New starts a fresh game.
func New(eng *engine.Engine, logger *log.Logger) *Session {
	return Resume(eng, eng.NewGame(), logger)
}

// Resume continues from an existing state.
func Resume(eng *engine.Engine, state models.GameState, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Discard()
	}
	return &Session{
		eng:    eng,
		state:  state.Clone(),
		logger: logger.WithComponent(log.ComponentSession),
	}
}

// State returns a copy of the current state.
func (s *Session) State() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Engine returns the engine commands run on.
func (s *Session) Engine() *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng
}

// SetLabeler switches the language or display currency of future log
// entries. Existing entries keep their text.
func (s *Session) SetLabeler(labels engine.Labeler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng = s.eng.WithLabeler(labels)
}

// Reset starts a new game.
func (s *Session) Reset() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.eng.NewGame()
	s.logger.Info("new game", log.FieldOperation, log.OpReset, log.FieldNetWorth, s.state.NetWorth)
	return s.state.Clone()
}

// Advance simulates one month.
func (s *Session) Advance() (models.GameState, engine.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, r := s.eng.AdvanceMonthReport(s.state)
	s.state = next
	args := []any{
		log.FieldOperation, log.OpAdvance,
		log.FieldMonth, r.Month,
		log.FieldCash, next.Cash,
		log.FieldNetWorth, next.NetWorth,
		"income", r.Income,
		"expenses", r.Expenses,
		"xp", r.XP,
	}
	if r.Event != nil {
		args = append(args, "event", r.Event.ID)
	}
	s.logger.Info("month advanced", args...)
	return next.Clone(), r
}

// Buy invests amt in an asset. It reports whether the purchase happened.
func (s *Session) Buy(assetID string, amt float64) (models.GameState, bool) {
	return s.command(log.OpBuy, func(st models.GameState) models.GameState {
		return s.eng.BuyAsset(st, assetID, amt)
	}, log.FieldAsset, assetID, log.FieldAmount, amt)
}

// Promote switches to the job at jobIndex.
func (s *Session) Promote(jobIndex int) (models.GameState, bool) {
	return s.command(log.OpPromote, func(st models.GameState) models.GameState {
		return s.eng.PromoteJob(st, jobIndex)
	}, log.FieldJob, jobIndex)
}

// Repay makes an extra payment on a debt.
func (s *Session) Repay(debtID string, amt float64) (models.GameState, bool) {
	return s.command(log.OpRepay, func(st models.GameState) models.GameState {
		return s.eng.RepayDebt(st, debtID, amt)
	}, log.FieldDebt, debtID, log.FieldAmount, amt)
}

// Borrow draws on a catalog loan offer.
func (s *Session) Borrow(loanID string, amt float64) (models.GameState, bool) {
	return s.command(log.OpBorrow, func(st models.GameState) models.GameState {
		return s.eng.TakeLoanOffer(st, loanID, amt)
	}, log.FieldDebt, loanID, log.FieldAmount, amt)
}

// Learn buys the next level of a skill.
func (s *Session) Learn(skillID string) (models.GameState, bool) {
	return s.command(log.OpLearn, func(st models.GameState) models.GameState {
		return s.eng.LearnSkill(st, skillID)
	}, log.FieldSkill, skillID)
}

// Apply runs fn on the current state under the session lock and stores
// the result. fn must not call back into the session.
func (s *Session) Apply(fn func(*engine.Engine, models.GameState) models.GameState) models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.eng, s.state)
	return s.state.Clone()
}

func (s *Session) command(op string, fn func(models.GameState) models.GameState, args ...any) (models.GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.state)
	applied := changed(s.state, next)
	s.state = next

	outcome := log.OutcomeRejected
	if applied {
		outcome = log.OutcomeApplied
	}
	s.logger.Debug("command", append([]any{log.FieldOperation, op, log.FieldOutcome, outcome}, args...)...)
	return next.Clone(), applied
}

// changed reports whether a command took effect. Every accepted command
// writes a log entry, so the newest entry identifies the transition.
func changed(prev, next models.GameState) bool {
	if len(next.History.Logs) == 0 {
		return false
	}
	if len(prev.History.Logs) == 0 {
		return true
	}
	return prev.History.Logs[0].ID != next.History.Logs[0].ID
}
