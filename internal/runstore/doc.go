// Package runstore persists pipeline run history in SQLite: one row per
// run with record and download counts, plus the individual asset failures.
// The status command reads this history; nothing in the pipeline depends on
// it being writable.
package runstore
