// Package ui renders the pass-audit status lines.
//
// Messenger writes verbose, informational, success, warning, and error lines
// decorated with ANSI escape sequences to standard output. Fatal messages do
// not terminate the process: Die returns a FatalError that the command-line
// driver maps to exit status 1.
package ui
