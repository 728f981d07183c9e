// Package store persists review records to a flat CSV file.
//
// The file is the single source of truth: every mutation re-reads it, applies
// the change and writes the whole table back before returning. Writes go to a
// temporary file in the same directory which is then renamed over the data
// file, so a reader always sees either the previous or the new table.
//
// A missing file is the empty state. Any other read, parse or write failure
// matches [review.ErrStorageUnavailable]. One writer process at a time is
// assumed; there is no cross-process locking.
package store
