// Package errors provides structured error types for the psd library.
//
// Errors are categorized by Phase (where in the decode the error occurred)
// and Kind (error category). Format violations that abort the decode carry
// KindBadMagic, KindUnsupported, KindInvalidData or KindTruncated; failures
// to open or read the input carry KindResource, so callers can distinguish
// "broken file" from "broken filesystem".
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHeader, errors.KindUnsupported).
//		Detail("bit depth %d, want 8", depth).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(errors.PhaseHeader, "color mode 4")
//	err := errors.Truncated(errors.PhaseLayers, pos)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when Phase and Kind agree.
//
// Recoverable anomalies (unknown auxiliary block keys, truncated RLE tails,
// undersized channel planes, unbalanced group closers) are not errors at
// all: the decoder defaults, skips or truncates the affected value and
// continues, logging the event.
package errors
