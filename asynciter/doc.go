// Package asynciter is the context-aware counterpart of package iterator.
//
// An Iterator pulls with Next(ctx) and may fail: sources can block on I/O and
// callbacks receive the pull's context and return an error. Errors abort the
// pull that observed them and are returned to the caller unchanged, except
// that a plain error returned by a callback is wrapped in a CALLBACK_FAILED
// AppError that records the operation and element index (errors.Is and
// errors.As still reach the original).
//
// Values are produced strictly on demand. The only place two upstream pulls
// are in flight at once is Zip, which pulls both sides concurrently and
// emits pairs in positional order. Tee branches share a mutex-guarded buffer
// so they can be zipped against each other.
//
// Iterators are not otherwise safe for concurrent use. Re-pulling an
// iterator after Next returned an error has undefined results; exhausting
// operations close the iterator when they fail.
package asynciter
