// =============================================================================
// BigFix Export Cleanup - Batch Helpers
// =============================================================================
//
// Shared plumbing for the per-directory batch operations. Every batch walks
// the matching files in name order, applies one transformation per file,
// and reports how many succeeded.
//
// =============================================================================

package cleanup

// BatchResult summarizes one batch run over a directory.
type BatchResult struct {
	// Succeeded is the number of files transformed without error.
	Succeeded int

	// Total is the number of files the batch attempted.
	Total int

	// Failed lists the base names of the files that failed.
	Failed []string
}

// AllOK reports whether every attempted file succeeded.
func (r BatchResult) AllOK() bool {
	return r.Succeeded == r.Total
}

// ProgressFunc is called once per file with the file's base name and the
// error from its transformation (nil on success). A nil ProgressFunc
// disables progress reporting.
type ProgressFunc func(name string, err error)

func (p ProgressFunc) report(name string, err error) {
	if p != nil {
		p(name, err)
	}
}
