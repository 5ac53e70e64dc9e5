package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDomainNotFound indicates a domain's backing directory is missing.
	// Unlike rubric or framework misses, this is a hard failure: repository
	// operations without a domain are meaningless.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrMalformedEntity indicates a document exists but yields no usable
	// entity. Surfaced as a validation warning during batch indexing so one
	// bad file cannot abort the rest.
	ErrMalformedEntity = errors.New("malformed entity")

	// ErrAdapterConfig indicates a backend was constructed without required
	// connection parameters. Raised at construction, never deferred to
	// first use.
	ErrAdapterConfig = errors.New("adapter configuration invalid")

	// ErrBackendUnavailable indicates a transient I/O failure from the
	// vector store or an external capability. The core does not retry;
	// retry policy belongs to the caller.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
