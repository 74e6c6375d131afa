// Package stats provides best-effort directory statistics.
//
// Unlike the sequential traversal operations in package dux, this mode walks
// the tree in parallel using fastwalk, counts unreadable entries instead of
// failing, and aggregates sizes by file extension or by directory.
package stats
