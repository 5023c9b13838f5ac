// Package ingest reads the linefeed-delimited record store into memory.
// Each line is one independently parseable JSON record; the malformed-unit
// policy (abort or skip-and-log) is an explicit option rather than a global.
package ingest
