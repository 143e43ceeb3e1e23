// Package query derives the display view of a collection: text search,
// categorical filters, a stable sort, and the aggregates the UI shows next
// to the results.
//
// Every function is pure. Inputs are never reordered or mutated; callers
// recompute aggregates whenever the base collection changes.
package query
