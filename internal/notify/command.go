package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ma27/pass-audit/internal/ui"
	"github.com/Ma27/pass-audit/internal/utils"
)

const (
	commandNameConstant                    = "notify"
	commandUsageConstant                   = commandNameConstant + " <level> <text...>"
	commandShortDescriptionConstant        = "Render a pass-audit status line"
	commandLongDescriptionTemplateConstant = "notify renders one status line using the pass-audit markers and colors.\nLevels: %s. The %s level exits with status 1."
	messageKindSeparatorConstant           = ", "
	errorMissingArgumentsConstant          = "notify requires a message level and text"
	messageTextSeparatorConstant           = " "
	minimumArgumentCountConstant           = 2
	notifyDispatchLogMessageConstant       = "dispatching status line"
	logFieldMessageLevelConstant           = "message_level"
	logFieldMessageTextLengthConstant      = "message_text_length"
	logFieldVerboseEnabledConstant         = "verbose_enabled"
	logFieldQuietEnabledConstant           = "quiet_enabled"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// MessengerProvider supplies the messenger configured for the current invocation.
type MessengerProvider func() *ui.Messenger

// CommandBuilder assembles the notify cobra command.
// The messenger stored in the command context wins over MessengerProvider.
type CommandBuilder struct {
	LoggerProvider    LoggerProvider
	MessengerProvider MessengerProvider
}

// Build constructs the cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:               commandUsageConstant,
		Short:             commandShortDescriptionConstant,
		Long:              describeMessageKinds(),
		RunE:              builder.run,
		ValidArgsFunction: completeMessageKind,
	}
	return command, nil
}

func describeMessageKinds() string {
	kindNames := make([]string, 0, len(ui.MessageKinds()))
	for _, kind := range ui.MessageKinds() {
		kindNames = append(kindNames, string(kind))
	}
	return fmt.Sprintf(commandLongDescriptionTemplateConstant, strings.Join(kindNames, messageKindSeparatorConstant), ui.MessageKindFatal)
}

func completeMessageKind(command *cobra.Command, arguments []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(arguments) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completions := []string{}
	for _, kind := range ui.MessageKinds() {
		if strings.HasPrefix(string(kind), strings.ToLower(toComplete)) {
			completions = append(completions, string(kind))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) < minimumArgumentCountConstant {
		if helpError := builder.displayCommandHelp(command); helpError != nil {
			return helpError
		}
		return errors.New(errorMissingArgumentsConstant)
	}

	messageKind, parseError := ui.ParseMessageKind(arguments[0])
	if parseError != nil {
		return parseError
	}

	messageText := strings.Join(arguments[1:], messageTextSeparatorConstant)

	messenger := builder.resolveMessenger(command)

	builder.resolveLogger().Debug(
		notifyDispatchLogMessageConstant,
		zap.String(logFieldMessageLevelConstant, string(messageKind)),
		zap.Int(logFieldMessageTextLengthConstant, len(messageText)),
		zap.Bool(logFieldVerboseEnabledConstant, messenger.VerboseEnabled()),
		zap.Bool(logFieldQuietEnabledConstant, messenger.QuietEnabled()),
	)

	return messenger.Emit(messageKind, messageText)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveMessenger(command *cobra.Command) *ui.Messenger {
	if contextMessenger, available := utils.NewCommandContextAccessor().Messenger(command.Context()); available {
		return contextMessenger
	}
	if builder.MessengerProvider != nil {
		if messenger := builder.MessengerProvider(); messenger != nil {
			return messenger
		}
	}
	return ui.NewMessenger(false, false, command.OutOrStdout())
}

func (builder *CommandBuilder) displayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}
