package building

// Report is the two-severity outcome shared by every validator. Errors block
// the change being validated; warnings are advisory and never affect Valid.
// Both slices are always non-nil so they serialise as [] rather than null.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewReport returns an empty, valid report.
func NewReport() Report {
	return Report{Valid: true, Errors: []string{}, Warnings: []string{}}
}

// AddError appends a blocking finding.
func (r *Report) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning appends an advisory finding.
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Merge appends all findings of other into r.
func (r *Report) Merge(other Report) {
	for _, e := range other.Errors {
		r.AddError(e)
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}
