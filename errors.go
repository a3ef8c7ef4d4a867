package svve

import "github.com/keonho-kim/svve/errs"

// Kind and Error are aliased from the leaf errs package so that the
// error model has a single definition shared by svve and every internal
// package that constructs it, while callers of this module can keep
// writing svve.Error and svve.Kind.
type (
	Kind  = errs.Kind
	Error = errs.Error
)

// Kind values, re-exported for callers that want to switch on e.Kind
// without importing the errs package directly.
const (
	KindInvalidInput             = errs.KindInvalidInput
	KindZeroQuery                = errs.KindZeroQuery
	KindAdapterProtocolViolation = errs.KindAdapterProtocolViolation
	KindCacheMiss                = errs.KindCacheMiss
	KindNoSurvivors              = errs.KindNoSurvivors
	KindDegeneratePRF            = errs.KindDegeneratePRF
	KindNoResults                = errs.KindNoResults
	KindCanceled                 = errs.KindCanceled
)

// Sentinel errors, one per Kind, for use with errors.Is(err, svve.ErrX).
var (
	ErrInvalidInput             = errs.ErrInvalidInput
	ErrZeroQuery                = errs.ErrZeroQuery
	ErrAdapterProtocolViolation = errs.ErrAdapterProtocolViolation
	ErrCacheMiss                = errs.ErrCacheMiss
	ErrNoSurvivors              = errs.ErrNoSurvivors
	ErrDegeneratePRF            = errs.ErrDegeneratePRF
	ErrNoResults                = errs.ErrNoResults
	ErrCanceled                 = errs.ErrCanceled
)
