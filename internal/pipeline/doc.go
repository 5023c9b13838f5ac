// Package pipeline orchestrates one catalog run end to end: record-store
// ingestion, normalization, the table export, the image queue, and run
// history. A file lock keeps runs single-instance per data directory.
package pipeline
