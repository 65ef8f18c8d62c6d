// Package errors provides structured error types for the bincode library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: value path, Go/wire type
// names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidType).
//		Path("user", "age").
//		GoType("string").
//		WireType("u32").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u32")
//	err := errors.OverflowLimit(errors.PhaseDecode, path, 10, 5, 12)
//
// The Kind set is closed and part of the public contract: every failure the
// codec can produce classifies under exactly one Kind.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
