// Package output provides the process-wide structured logger and the small
// set of lipgloss styles used for CLI summaries.
package output
