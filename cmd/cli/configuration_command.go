package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	configurationCommandNameConstant             = "config"
	configurationCommandShortDescriptionConstant = "Print the effective configuration"
	configurationCommandLongDescriptionConstant  = "config prints the configuration resolved from embedded defaults, the configuration file, PASSAUDIT_* environment variables, and flags as YAML."
	configurationEncodeErrorTemplateConstant     = "unable to encode configuration: %w"
	configurationSourceLogMessageConstant        = "configuration source resolved"
	configurationSourceFieldConstant             = "configuration_source"
	configurationEmbeddedSourceConstant          = "embedded defaults"
)

func (application *Application) buildConfigurationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   configurationCommandNameConstant,
		Short: configurationCommandShortDescriptionConstant,
		Long:  configurationCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  application.runConfigurationCommand,
	}
}

func (application *Application) runConfigurationCommand(command *cobra.Command, arguments []string) error {
	configurationSource := configurationEmbeddedSourceConstant
	if configurationFilePath, available := application.commandContextAccessor.ConfigurationFilePath(command.Context()); available && len(strings.TrimSpace(configurationFilePath)) > 0 {
		configurationSource = configurationFilePath
	}
	// Standard output carries only the YAML document.
	application.logger.Debug(configurationSourceLogMessageConstant, zap.String(configurationSourceFieldConstant, configurationSource))

	encodedConfiguration, encodeError := yaml.Marshal(application.configuration)
	if encodeError != nil {
		return fmt.Errorf(configurationEncodeErrorTemplateConstant, encodeError)
	}

	_, writeError := command.OutOrStdout().Write(encodedConfiguration)
	return writeError
}
