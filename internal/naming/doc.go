// Package naming derives event identity and output directory names from
// recording filenames. The structured stem convention is
// <m1>_<m2>_<Title...>_<YYYYMMDD>_<HHMMSS>; stems that do not match fall
// back to using the bare stem.
package naming
