package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldOutcome   = "outcome"
	FieldMonth     = "month"
	FieldAmount    = "amount"
	FieldAsset     = "asset"
	FieldDebt      = "debt"
	FieldJob       = "job"
	FieldSkill     = "skill"
	FieldNetWorth  = "net_worth"
	FieldCash      = "cash"
	FieldSeed      = "seed"
	FieldSpec      = "spec"
	FieldError     = "error"
)

// Components
const (
	ComponentApp       = "app"
	ComponentSession   = "session"
	ComponentScheduler = "scheduler"
	ComponentAutopilot = "autopilot"
	ComponentSimulate  = "simulate"
	ComponentTUI       = "tui"
)

// Operations
const (
	OpAdvance = "advance"
	OpBuy     = "buy"
	OpPromote = "promote"
	OpRepay   = "repay"
	OpBorrow  = "borrow"
	OpLearn   = "learn"
	OpReset   = "reset"
)

// Command outcomes
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)
