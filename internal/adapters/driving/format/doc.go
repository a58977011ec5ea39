// Package format renders archive query results as plain text.
//
// The line shell, the CLI and the TUI result viewport all print through
// this package so a document looks the same wherever it is shown.
package format
