package domain

// ValidationStats counts the entities found in a domain.
type ValidationStats struct {
	Principles int
	Rubrics    int
	Examples   int
}

// ValidationResult reports a domain's structural health.
// Issues block indexing; warnings do not. A well-formed but sparse
// domain validates without error.
type ValidationResult struct {
	Valid    bool
	Issues   []string
	Warnings []string
	Stats    ValidationStats
}

// IndexReport summarises a batch indexing run. Failures are per-file and
// never abort the batch.
type IndexReport struct {
	// Indexed is the number of examples accepted by the store.
	Indexed int

	// Failed maps a source file's relative path to its parse failure.
	Failed map[string]string
}
