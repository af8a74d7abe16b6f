package domain

// MutationResult is the outcome of a currency mutation. Business-rule
// rejections (unsupported code, guard violations, invalid rates) are not Go
// errors: the admin UI renders Message directly, so every mutating operation
// returns one of these alongside an error that is reserved for storage
// faults.
type MutationResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"` // Per-item failures for bulk operations
}

// Accepted builds a successful result.
func Accepted(message string) MutationResult {
	return MutationResult{Success: true, Message: message}
}

// Rejected builds a failed result carrying the reason for the UI.
func Rejected(message string) MutationResult {
	return MutationResult{Success: false, Message: message}
}
