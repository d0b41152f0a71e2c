// Package numeric provides numeric ranges and aggregates over iterators of
// numbers.
package numeric
