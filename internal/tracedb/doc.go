// Package tracedb stores replay decision traces in sqlite.
//
// A trace is an offline record of what a session decided each tick and what
// it narrated. The engine never reads it back; it exists for reports and
// for diffing runs after a tuning change.
package tracedb
