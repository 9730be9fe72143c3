// Package utils hosts the ambient plumbing shared by pass-audit commands.
//
// ConfigurationLoader merges embedded defaults, configuration files, and
// PASSAUDIT_* environment variables through Viper. LoggerFactory builds the
// zap diagnostics logger. FlushingWriter and CommandContextAccessor carry the
// status-line output and the Messenger through command execution.
package utils
