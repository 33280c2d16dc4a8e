// Package sqlite persists finished summaries in a local SQLite database
// using the pure-Go modernc.org/sqlite driver.
package sqlite
