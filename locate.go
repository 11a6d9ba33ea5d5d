// Package locate provides a local, locate-style file search tool.
// It builds a persistent index of every path on the machine's local
// filesystems and answers substring or regular expression queries against
// that index without re-scanning disk.
//
// This package contains domain types, interfaces and the pure policy
// functions (mount retention, path exclusion, pattern compilation).
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, unix/, flock/).
package locate
