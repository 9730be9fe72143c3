package ui

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FatalExitCode is the process exit status associated with fatal messages.
	FatalExitCode                         = 1
	successExitCodeConstant               = 0
	unsupportedMessageKindTemplate        = "unsupported message level: %s"
	unsupportedMessageKindEmptyValueLabel = "<empty>"
)

// FatalError signals that a fatal message was rendered and the process should terminate.
type FatalError struct {
	Message  string
	ExitCode int
}

// NewFatalError builds the fatal signal for the provided message.
func NewFatalError(message string) *FatalError {
	return &FatalError{Message: message, ExitCode: FatalExitCode}
}

// Error returns the fatal message.
func (fatalError *FatalError) Error() string {
	return fatalError.Message
}

// IsFatal reports whether the error chain carries a FatalError.
func IsFatal(err error) bool {
	var fatalError *FatalError
	return errors.As(err, &fatalError)
}

// ExitCode maps an error returned by the CLI to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return successExitCodeConstant
	}
	var fatalError *FatalError
	if errors.As(err, &fatalError) && fatalError.ExitCode != successExitCodeConstant {
		return fatalError.ExitCode
	}
	return FatalExitCode
}

// UnsupportedMessageKindError reports an unknown message level.
type UnsupportedMessageKindError struct {
	Kind string
}

// NewUnsupportedMessageKindError builds an UnsupportedMessageKindError for kind.
func NewUnsupportedMessageKindError(kind string) UnsupportedMessageKindError {
	return UnsupportedMessageKindError{Kind: kind}
}

// Error describes the unsupported level.
func (unsupportedError UnsupportedMessageKindError) Error() string {
	kindLabel := unsupportedError.Kind
	if len(strings.TrimSpace(kindLabel)) == 0 {
		kindLabel = unsupportedMessageKindEmptyValueLabel
	}
	return fmt.Sprintf(unsupportedMessageKindTemplate, kindLabel)
}

var messageKinds = []MessageKind{
	MessageKindVerbose,
	MessageKindMessage,
	MessageKindSuccess,
	MessageKindWarning,
	MessageKindError,
	MessageKindFatal,
}

// MessageKinds lists every supported message level in rendering order.
func MessageKinds() []MessageKind {
	return append([]MessageKind{}, messageKinds...)
}

// ParseMessageKind resolves a case-insensitive message level name.
func ParseMessageKind(value string) (MessageKind, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	for _, kind := range messageKinds {
		if string(kind) == normalizedValue {
			return kind, nil
		}
	}
	return emptyStringConstant, NewUnsupportedMessageKindError(value)
}
