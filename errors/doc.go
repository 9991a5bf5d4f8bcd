// Package errors provides structured error types for the host abstraction layer.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes context: a path, an offending value, and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseArena, errors.KindOutOfMemory).
//		Detail("cannot allocate %d bytes", size).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfMemory(errors.PhaseArena, size, remaining)
//	err := errors.UnsupportedArity(6)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on (Phase, Kind), so sentinel comparisons work:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseArena, Kind: errors.KindOutOfMemory}) {
//		...
//	}
package errors
