package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Ma27/pass-audit/internal/notify"
	"github.com/Ma27/pass-audit/internal/ui"
	"github.com/Ma27/pass-audit/internal/utils"
	"github.com/Ma27/pass-audit/internal/utils/flags"
)

const (
	applicationNameConstant                 = "pass-audit"
	applicationShortDescriptionConstant     = "Password-store audit extension"
	applicationLongDescriptionConstant      = "pass-audit audits the entries of a password store and reports its findings as colored status lines on standard output."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured diagnostics log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured diagnostics log format."
	verboseFlagNameConstant                 = "verbose"
	verboseFlagShorthandConstant            = "v"
	verboseFlagUsageConstant                = "Print verbose status lines."
	quietFlagNameConstant                   = "quiet"
	quietFlagShorthandConstant              = "q"
	quietFlagUsageConstant                  = "Only print success, warning, and error lines."
	colorFlagNameConstant                   = "color"
	colorFlagUsageConstant                  = "Decorate status lines with ANSI colors."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonVerboseConfigKeyConstant          = commonConfigurationKeyConstant + ".verbose"
	commonQuietConfigKeyConstant            = commonConfigurationKeyConstant + ".quiet"
	commonColorConfigKeyConstant            = commonConfigurationKeyConstant + ".color"
	environmentPrefixConstant               = "PASSAUDIT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationVerboseFieldConstant       = "verbose"
	configurationQuietFieldConstant         = "quiet"
	configurationColorFieldConstant         = "color"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "pass-audit CLI executed"
	rootCommandDebugMessageConstant         = "pass-audit CLI diagnostics"
	fatalErrorReportedMessageConstant       = "fatal error reported"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	logFieldErrorConstant                   = "error"
	defaultLogLevelConstant                 = string(utils.LogLevelError)
	defaultLogFormatConstant                = string(utils.LogFormatConsole)
	defaultColorModeConstant                = string(ui.ColorModeAlways)
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common" yaml:"common"`
}

// ApplicationCommonConfiguration stores logging and status-line settings shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose"`
	Quiet     bool   `mapstructure:"quiet" yaml:"quiet"`
	Color     string `mapstructure:"color" yaml:"color"`
}

// Application wires the Cobra root command, configuration loader, structured logger, and status-line messenger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	messenger              *ui.Messenger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	colorFlagValue         string
	verboseFlagValue       bool
	quietFlagValue         bool
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.DefaultSearchPaths(applicationNameConstant),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flags.FormatChoiceUsage(defaultLogFormatConstant, utils.LogFormatChoices(), logFormatFlagUsageConstant))
	persistentFlags.StringVar(&application.colorFlagValue, colorFlagNameConstant, "", flags.FormatChoiceUsage(defaultColorModeConstant, ui.ColorModeChoices(), colorFlagUsageConstant))
	persistentFlags.BoolVarP(&application.verboseFlagValue, verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)
	persistentFlags.BoolVarP(&application.quietFlagValue, quietFlagNameConstant, quietFlagShorthandConstant, false, quietFlagUsageConstant)

	notifyBuilder := notify.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		MessengerProvider: func() *ui.Messenger {
			return application.messenger
		},
	}
	notifyCommand, notifyBuildError := notifyBuilder.Build()
	if notifyBuildError == nil {
		cobraCommand.AddCommand(notifyCommand)
	}

	cobraCommand.AddCommand(application.buildConfigurationCommand())

	application.rootCommand = cobraCommand

	return application
}

// Command exposes the root cobra command so callers can adjust arguments and streams.
func (application *Application) Command() *cobra.Command {
	return application.rootCommand
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
// Every failure is rendered as a fatal status line and returned as a *ui.FatalError.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		executionError = fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return application.reportFailure(executionError)
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  defaultLogLevelConstant,
		commonLogFormatConfigKeyConstant: defaultLogFormatConstant,
		commonVerboseConfigKeyConstant:   false,
		commonQuietConfigKeyConstant:     false,
		commonColorConfigKeyConstant:     defaultColorModeConstant,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration
	application.applyFlagOverrides(command)

	normalizedColor, colorError := flags.NormalizeChoice(colorFlagNameConstant, application.configuration.Common.Color, defaultColorModeConstant, ui.ColorModeChoices())
	if colorError != nil {
		return colorError
	}
	application.configuration.Common.Color = normalizedColor

	colorMode, colorModeError := ui.ParseColorMode(application.configuration.Common.Color)
	if colorModeError != nil {
		return colorModeError
	}

	// Built before the logger so that later setup failures honour the color mode.
	application.messenger = colorMode.Apply(ui.NewMessenger(
		application.configuration.Common.Verbose,
		application.configuration.Common.Quiet,
		utils.NewFlushingWriter(command.OutOrStdout()),
	))

	normalizedLogFormat, logFormatError := flags.NormalizeChoice(logFormatFlagNameConstant, application.configuration.Common.LogFormat, defaultLogFormatConstant, utils.LogFormatChoices())
	if logFormatError != nil {
		return logFormatError
	}
	application.configuration.Common.LogFormat = normalizedLogFormat

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger
	application.messenger = application.messenger.WithLogger(application.logger)

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.Bool(configurationVerboseFieldConstant, application.configuration.Common.Verbose),
		zap.Bool(configurationQuietFieldConstant, application.configuration.Common.Quiet),
		zap.String(configurationColorFieldConstant, application.configuration.Common.Color),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
		command.Context(),
		application.configurationMetadata.ConfigFileUsed,
	)
	updatedContext = application.commandContextAccessor.WithMessenger(updatedContext, application.messenger)
	command.SetContext(updatedContext)
	if rootCommand := command.Root(); rootCommand != nil {
		rootCommand.SetContext(updatedContext)
	}

	return nil
}

func (application *Application) applyFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, verboseFlagNameConstant) {
		application.configuration.Common.Verbose = application.verboseFlagValue
	}

	if application.persistentFlagChanged(command, quietFlagNameConstant) {
		application.configuration.Common.Quiet = application.quietFlagValue
	}

	if application.persistentFlagChanged(command, colorFlagNameConstant) {
		application.configuration.Common.Color = application.colorFlagValue
	}
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

// reportFailure renders non-fatal failures through the messenger so they reach standard output as a fatal status line.
func (application *Application) reportFailure(executionError error) error {
	if executionError == nil || ui.IsFatal(executionError) {
		return executionError
	}

	application.logger.Debug(fatalErrorReportedMessageConstant, zap.String(logFieldErrorConstant, executionError.Error()))

	return application.resolveMessenger().Die(executionError.Error())
}

func (application *Application) resolveMessenger() *ui.Messenger {
	if application.messenger != nil {
		return application.messenger
	}
	return ui.NewMessenger(false, false, utils.NewFlushingWriter(application.rootCommand.OutOrStdout()))
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
