// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger narrates shell command lifecycle events while
// RunSummaryRenderer prints the closing summary with stage timings, object
// store size changes, and follow-up notes. Detailed telemetry continues to
// flow through structured loggers.
package ui
