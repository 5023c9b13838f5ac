// Command steamtab turns a Steam catalog dump into a tab-separated export
// and a directory of header images. See `steamtab --help` for the available
// subcommands.
package main
