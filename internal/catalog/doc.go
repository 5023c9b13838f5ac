// Package catalog defines the record model for the store dump and the
// normalization of raw records into schema-fixed export rows.
//
// A RawRecord is one appdetails response; Normalize filters out failed
// lookups and non-game entries and flattens the rest into a Row whose field
// order is fixed by Schema. Absent optional structures resolve to documented
// defaults ("" or "TBD") rather than errors.
package catalog
