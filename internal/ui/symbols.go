package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Check passed
	SymbolFail    = "✗" // Check failed
	SymbolWarning = "!" // Non-fatal problem
	SymbolPending = "○" // Not read yet
	SymbolFilled  = "●" // Classified value
	SymbolSkipped = "⊘" // Unparsable or missing value
)
