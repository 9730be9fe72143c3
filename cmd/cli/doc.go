// Package cli constructs the pass-audit command-line interface, wiring the
// Cobra command hierarchy, Viper configuration, zap diagnostics, and the
// status-line Messenger. Execute reports every failure as a fatal status line
// and returns the fatal signal that the main package maps to an exit status.
package cli
