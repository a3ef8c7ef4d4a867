// Package errs defines the closed error model SVVE returns: a single
// tagged Error type plus the sentinel values library consumers match
// against with errors.Is. It is a leaf package so that the adapter,
// vote, prf, and refine packages can construct these errors without
// importing back up to the root orchestrator package.
package errs

import "fmt"

// Kind identifies one of the closed set of failure modes SVVE can return.
// The enumeration is bounded by kindBegin and kindEnd so String can reject
// out-of-range values.
type Kind int

const (
	kindBegin Kind = iota

	// KindInvalidInput covers boundary validation failures: an empty
	// query, or a top_k less than 1.
	KindInvalidInput

	// KindZeroQuery means the query vector has zero L2 norm.
	KindZeroQuery

	// KindAdapterProtocolViolation means the injected search callback
	// returned output that violates its contract (mismatched lengths,
	// wrong dimensionality, a non-normalizable vector).
	KindAdapterProtocolViolation

	// KindCacheMiss means pseudo-relevance feedback referenced a
	// document id the adapter never returned from an earlier search.
	KindCacheMiss

	// KindNoSurvivors means vote aggregation produced no non-Noise
	// documents, so mandatory PRF reformulation cannot proceed.
	KindNoSurvivors

	// KindDegeneratePRF means the reformulated query q* has zero or
	// non-finite norm (q is nearly antiparallel to the survivor centroid).
	KindDegeneratePRF

	// KindNoResults means the refinement loop ended with an empty
	// candidate pool.
	KindNoResults

	// KindCanceled means the caller's cancellation token fired at a
	// stage boundary.
	KindCanceled

	kindEnd
)

var kindNames = [...]string{
	kindBegin:                    "",
	KindInvalidInput:             "InvalidInput",
	KindZeroQuery:                "ZeroQuery",
	KindAdapterProtocolViolation: "AdapterProtocolViolation",
	KindCacheMiss:                "CacheMiss",
	KindNoSurvivors:              "NoSurvivors",
	KindDegeneratePRF:            "DegeneratePRF",
	KindNoResults:                "NoResults",
	KindCanceled:                 "Canceled",
	kindEnd:                      "",
}

// String returns the kind's stable name, or "Unknown" for an out-of-range
// value.
func (k Kind) String() string {
	if k <= kindBegin || k >= kindEnd {
		return "Unknown"
	}
	return kindNames[k]
}

// Error is the single error type SVVE returns. It carries a stable Kind
// tag, an optional Field naming the offending piece of adapter output or
// document id, a human-readable Detail, and an optional wrapped cause.
type Error struct {
	Kind   Kind
	Field  string
	Detail string
	cause  error
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// NewField builds an *Error naming the offending field (used for
// AdapterProtocolViolation) or document id (used for CacheMiss).
func NewField(kind Kind, field, detail string) *Error {
	return &Error{Kind: kind, Field: field, Detail: detail}
}

// Wrap builds an *Error that wraps an underlying cause, e.g. a callback
// error or a recovered panic.
func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("svve: %s[%s]: %s", e.Kind, e.Field, e.Detail)
	}
	return fmt.Sprintf("svve: %s: %s", e.Kind, e.Detail)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is supports errors.Is(err, svve.ErrNoSurvivors) and friends by comparing
// Kind, ignoring Field/Detail/cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors, one per Kind, for use with errors.Is. Field and Detail
// are irrelevant for the comparison performed by (*Error).Is.
var (
	ErrInvalidInput             = &Error{Kind: KindInvalidInput}
	ErrZeroQuery                = &Error{Kind: KindZeroQuery}
	ErrAdapterProtocolViolation = &Error{Kind: KindAdapterProtocolViolation}
	ErrCacheMiss                = &Error{Kind: KindCacheMiss}
	ErrNoSurvivors              = &Error{Kind: KindNoSurvivors}
	ErrDegeneratePRF            = &Error{Kind: KindDegeneratePRF}
	ErrNoResults                = &Error{Kind: KindNoResults}
	ErrCanceled                 = &Error{Kind: KindCanceled}
)
