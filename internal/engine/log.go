package engine

import "github.com/tatianab/wealth-quest/internal/models"

// MaxLogs bounds the activity log. The oldest entries are dropped first.
const MaxLogs = 50

// addLog prepends an entry to the activity log of s.
func (e *Engine) addLog(s *models.GameState, msg string, typ models.LogType, month int, amount *float64) {
	entry := models.LogEntry{
		ID:      e.newID(),
		Month:   month,
		Message: msg,
		Type:    typ,
		Amount:  amount,
	}
	logs := make([]models.LogEntry, 0, min(len(s.History.Logs)+1, MaxLogs))
	logs = append(logs, entry)
	for _, l := range s.History.Logs {
		if len(logs) == MaxLogs {
			break
		}
		logs = append(logs, l)
	}
	s.History.Logs = logs
}

// amount boxes a signed log amount.
func amount(v float64) *float64 {
	return &v
}

// recordNetWorth appends a net-worth sample to the history series.
func recordNetWorth(s *models.GameState, month int) {
	s.History.NetWorth = append(s.History.NetWorth, models.NetWorthPoint{Month: month, Value: s.NetWorth})
}
