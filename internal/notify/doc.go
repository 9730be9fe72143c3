// Package notify implements the notify command, which renders a single
// pass-audit status line so shell extensions can share the same output style.
package notify
