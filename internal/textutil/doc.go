// Package textutil provides text cleaning for catalog fields destined for
// the tab-separated export. Record text arrives with embedded control bytes
// and markup remnants; CleanText removes both without leaving anything a
// column separator could misinterpret.
package textutil
