package models

// ValidationResult captures the outcome of one coverage validation pass.
// It is computed on demand and never persisted; the track itself only
// carries the resulting coverage score.
type ValidationResult struct {
	IsValid         bool     `json:"is_valid"`
	CoverageScore   int      `json:"coverage_score"` // 0-100
	MissingRequired []string `json:"missing_required,omitempty"`
	MissingOptional []string `json:"missing_optional,omitempty"`
	Errors          []string `json:"errors,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// HasErrors returns true if the validation produced at least one hard error
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}
