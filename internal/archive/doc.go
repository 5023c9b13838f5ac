// Package archive acquires the catalog dump: a tar.gz downloaded over HTTP
// and unpacked into the data directory. Both steps skip work that is already
// done, so fetch is safe to rerun.
package archive
