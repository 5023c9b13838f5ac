// Package export serializes normalized rows into the tab-separated table
// and persists it. Text construction is pure; writing is a separate step so
// a write failure does not disturb the rest of the pipeline.
package export
