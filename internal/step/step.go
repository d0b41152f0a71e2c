// Package step defines the tagged result a combinator callback hands back to
// the loop that drives an iterator.
//
// A callback returns exactly one Result per input element. The driving loop
// either drops the element (Skip), emits one value (Take), stops the sequence
// for good (Terminate) or splices a whole sub-sequence into the output before
// pulling the next input (Iterate). S is the sub-sequence type of the engine
// that consumes the result.
package step

// Kind identifies which variant a Result holds.
type Kind uint8

const (
	KindSkip Kind = iota
	KindTake
	KindTerminate
	KindIterate
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindTake:
		return "take"
	case KindTerminate:
		return "terminate"
	case KindIterate:
		return "iterate"
	default:
		return "unknown"
	}
}

// Result is an immutable tagged union of the four step variants.
type Result[T, S any] struct {
	kind  Kind
	value T
	seq   S
}

// Skip produces no output for the current input.
func Skip[T, S any]() Result[T, S] {
	return Result[T, S]{kind: KindSkip}
}

// Take emits exactly one value.
func Take[T, S any](v T) Result[T, S] {
	return Result[T, S]{kind: KindTake, value: v}
}

// Terminate ends the sequence. Remaining upstream values are not drained.
func Terminate[T, S any]() Result[T, S] {
	return Result[T, S]{kind: KindTerminate}
}

// Iterate splices seq into the output stream.
func Iterate[T, S any](seq S) Result[T, S] {
	return Result[T, S]{kind: KindIterate, seq: seq}
}

// Kind returns the variant.
func (r Result[T, S]) Kind() Kind { return r.kind }

// Value returns the value carried by a Take result.
func (r Result[T, S]) Value() T { return r.value }

// Seq returns the sub-sequence carried by an Iterate result.
func (r Result[T, S]) Seq() S { return r.seq }
