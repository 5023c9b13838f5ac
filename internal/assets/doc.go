// Package assets downloads one header image per exported row into a local
// directory. The queue is bounded (concurrency is configurable, default 1),
// idempotent across reruns (existing files are skipped), and failure
// isolating: a bad item is recorded and the batch continues.
package assets
