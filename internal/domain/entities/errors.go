package entities

import "fmt"

// Error kinds are the stable machine-readable identifiers carried on
// every error response at the boundary.
const (
	KindValidation  = "validation_error"
	KindNotFound    = "pokemon_not_found"
	KindUpstream    = "upstream_error"
	KindUnavailable = "upstream_unavailable"
	KindIntentParse = "intent_parse_error"
	KindStorage     = "storage_error"
	KindInternal    = "internal_error"
)

// ValidationError rejects malformed caller input before the pipeline runs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Kind returns the stable error kind.
func (e *ValidationError) Kind() string { return KindValidation }

// NotFoundError means the upstream API has no record for the subject.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("pokemon not found: %s", e.Name) }

// Kind returns the stable error kind.
func (e *NotFoundError) Kind() string { return KindNotFound }

// UpstreamError covers failures of any upstream service (data API or
// LLM endpoint). Unavailable marks connection-level failures (the
// caller could retry later); otherwise the upstream answered but unusably.
type UpstreamError struct {
	Detail      string
	Unavailable bool
}

func (e *UpstreamError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("upstream unreachable: %s", e.Detail)
	}
	return fmt.Sprintf("upstream request failed: %s", e.Detail)
}

// Kind returns the stable error kind.
func (e *UpstreamError) Kind() string {
	if e.Unavailable {
		return KindUnavailable
	}
	return KindUpstream
}

// IntentParseError means the model's intent response was not the
// demanded JSON object. Fatal to the request; there is no fallback intent.
type IntentParseError struct {
	Raw string
	Err error
}

func (e *IntentParseError) Error() string {
	return fmt.Sprintf("parsing intent JSON: %v (response: %s)", e.Err, e.Raw)
}

func (e *IntentParseError) Unwrap() error { return e.Err }

// Kind returns the stable error kind.
func (e *IntentParseError) Kind() string { return KindIntentParse }

// StorageError wraps a cache storage failure.
type StorageError struct {
	Detail string
	Err    error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage failure: %s: %v", e.Detail, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Kind returns the stable error kind.
func (e *StorageError) Kind() string { return KindStorage }
