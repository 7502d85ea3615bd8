package harness

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Lines are the printed output lines. Empty when translation failed.
	Lines []string `json:"lines"`

	// Diagnostics counts the nodes lowering degraded.
	Diagnostics int `json:"diagnostics"`

	// Err holds the translation error message, if any.
	Err string `json:"error,omitempty"`

	// Errors contains failed assertion messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Lines:  []string{},
		Errors: []string{},
	}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
