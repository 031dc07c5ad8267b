// Package durations memoizes per-file media durations keyed by a
// content-change fingerprint (path plus modification time). Entries live
// for the process lifetime; a change in mtime invalidates the entry.
//
// The dual quick/structured probe strategy handles containers whose
// container-level duration metadata is absent but whose elementary stream
// carries it. Both probe failures and missing files degrade to a duration
// of zero rather than an error.
package durations
