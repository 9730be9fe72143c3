package ui

import (
	"io"
	"os"

	"go.uber.org/zap"
)

const (
	escapeBoldConstant           = "\x1b[1m"
	escapeResetConstant          = "\x1b[0m"
	escapeVerboseMarkerConstant  = "\x1b[95m"
	escapeVerboseTextConstant    = "\x1b[35m"
	escapeSuccessMarkerConstant  = "\x1b[92m"
	escapeSuccessTextConstant    = "\x1b[32m"
	escapeWarningMarkerConstant  = "\x1b[93m"
	escapeWarningTextConstant    = "\x1b[33m"
	escapeErrorMarkerConstant    = "\x1b[91m"
	verboseMarkerConstant        = "  .  "
	messageMarkerConstant        = "  .  "
	successMarkerConstant        = " (*) "
	warningMarkerConstant        = "  w  "
	errorMarkerConstant          = " [x] "
	errorLabelConstant           = "Error: "
	lineTerminatorConstant       = "\n"
	emptyStringConstant          = ""
	messageEmittedLogConstant    = "message emitted"
	messageSuppressedLogConstant = "message suppressed"
	logFieldMessageKindConstant  = "message_kind"
	logFieldMessageTextConstant  = "message_text"
	logFieldSuppressedByConstant = "suppressed_by"
	suppressedByVerboseConstant  = "verbose_disabled"
	suppressedByQuietConstant    = "quiet"
)

// MessageKind identifies the category of a status line.
type MessageKind string

// Supported message kinds.
const (
	MessageKindVerbose MessageKind = "verbose"
	MessageKindMessage MessageKind = "message"
	MessageKindSuccess MessageKind = "success"
	MessageKindWarning MessageKind = "warning"
	MessageKindError   MessageKind = "error"
	MessageKindFatal   MessageKind = "die"
)

// Messenger renders colored status lines on standard output.
//
// The verbose and quiet switches are captured at construction and never change.
// Success, warning, and error lines ignore both switches.
type Messenger struct {
	verbose      bool
	quiet        bool
	plain        bool
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewMessenger constructs a Messenger writing to outputWriter, or to standard output when outputWriter is nil.
func NewMessenger(verbose bool, quiet bool, outputWriter io.Writer) *Messenger {
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	return &Messenger{
		verbose:      verbose,
		quiet:        quiet,
		outputWriter: outputWriter,
		logger:       zap.NewNop(),
	}
}

// WithPlainOutput returns a copy of the messenger that omits every escape sequence.
func (messenger *Messenger) WithPlainOutput() *Messenger {
	duplicate := *messenger
	duplicate.plain = true
	return &duplicate
}

// WithLogger returns a copy of the messenger that mirrors emitted lines to the provided logger at debug level.
func (messenger *Messenger) WithLogger(logger *zap.Logger) *Messenger {
	if logger == nil {
		logger = zap.NewNop()
	}
	duplicate := *messenger
	duplicate.logger = logger
	return &duplicate
}

// VerboseEnabled reports whether verbose lines are emitted.
func (messenger *Messenger) VerboseEnabled() bool {
	return messenger.verbose && !messenger.quiet
}

// QuietEnabled reports whether routine lines are suppressed.
func (messenger *Messenger) QuietEnabled() bool {
	return messenger.quiet
}

// Verbose emits a de-emphasized diagnostic line when verbose mode is on.
func (messenger *Messenger) Verbose(text string) {
	if !messenger.VerboseEnabled() {
		messenger.logSuppressed(MessageKindVerbose, text)
		return
	}
	messenger.emit(MessageKindVerbose, text,
		messenger.style(escapeBoldConstant+escapeVerboseMarkerConstant)+verboseMarkerConstant+
			messenger.style(escapeVerboseTextConstant)+text+messenger.style(escapeResetConstant))
}

// Message emits a neutral informational line unless quiet mode is on.
func (messenger *Messenger) Message(text string) {
	if messenger.quiet {
		messenger.logSuppressed(MessageKindMessage, text)
		return
	}
	messenger.emit(MessageKindMessage, text,
		messenger.style(escapeBoldConstant)+messageMarkerConstant+messenger.style(escapeResetConstant)+text)
}

// Success emits a green success line.
func (messenger *Messenger) Success(text string) {
	messenger.emit(MessageKindSuccess, text,
		messenger.style(escapeBoldConstant+escapeSuccessMarkerConstant)+successMarkerConstant+messenger.style(escapeResetConstant)+
			messenger.style(escapeSuccessTextConstant)+text+messenger.style(escapeResetConstant))
}

// Warning emits a yellow warning line.
func (messenger *Messenger) Warning(text string) {
	messenger.emit(MessageKindWarning, text,
		messenger.style(escapeBoldConstant+escapeWarningMarkerConstant)+warningMarkerConstant+messenger.style(escapeResetConstant)+
			messenger.style(escapeWarningTextConstant)+text+messenger.style(escapeResetConstant))
}

// Error emits a red error line on standard output.
func (messenger *Messenger) Error(text string) {
	messenger.emit(MessageKindError, text, messenger.renderError(text))
}

// Die emits the error line and returns the fatal signal the top-level driver maps to exit status 1.
func (messenger *Messenger) Die(text string) error {
	messenger.emit(MessageKindFatal, text, messenger.renderError(text))
	return NewFatalError(text)
}

// Emit dispatches text to the operation matching kind. Only MessageKindFatal yields a non-nil error.
func (messenger *Messenger) Emit(kind MessageKind, text string) error {
	switch kind {
	case MessageKindVerbose:
		messenger.Verbose(text)
	case MessageKindMessage:
		messenger.Message(text)
	case MessageKindSuccess:
		messenger.Success(text)
	case MessageKindWarning:
		messenger.Warning(text)
	case MessageKindError:
		messenger.Error(text)
	case MessageKindFatal:
		return messenger.Die(text)
	default:
		return NewUnsupportedMessageKindError(string(kind))
	}
	return nil
}

func (messenger *Messenger) renderError(text string) string {
	return messenger.style(escapeBoldConstant+escapeErrorMarkerConstant) + errorMarkerConstant + messenger.style(escapeResetConstant) +
		messenger.style(escapeBoldConstant) + errorLabelConstant + messenger.style(escapeResetConstant) + text
}

func (messenger *Messenger) style(sequence string) string {
	if messenger.plain {
		return emptyStringConstant
	}
	return sequence
}

func (messenger *Messenger) emit(kind MessageKind, text string, renderedLine string) {
	// Write failures are dropped: status lines are best effort.
	_, _ = io.WriteString(messenger.outputWriter, renderedLine+lineTerminatorConstant)
	messenger.logger.Debug(
		messageEmittedLogConstant,
		zap.String(logFieldMessageKindConstant, string(kind)),
		zap.String(logFieldMessageTextConstant, text),
	)
}

func (messenger *Messenger) logSuppressed(kind MessageKind, text string) {
	reason := suppressedByQuietConstant
	if kind == MessageKindVerbose && !messenger.quiet {
		reason = suppressedByVerboseConstant
	}
	messenger.logger.Debug(
		messageSuppressedLogConstant,
		zap.String(logFieldMessageKindConstant, string(kind)),
		zap.String(logFieldMessageTextConstant, text),
		zap.String(logFieldSuppressedByConstant, reason),
	)
}
