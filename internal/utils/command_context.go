package utils

import (
	"context"

	"github.com/Ma27/pass-audit/internal/ui"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	messengerContextKeyConstant             = commandContextKey("messenger")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return "", false
	}
	return configurationFilePath, true
}

// WithMessenger attaches the status-line messenger to the provided context.
func (accessor CommandContextAccessor) WithMessenger(parentContext context.Context, messenger *ui.Messenger) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, messengerContextKeyConstant, messenger)
}

// Messenger extracts the status-line messenger from the provided context.
func (accessor CommandContextAccessor) Messenger(executionContext context.Context) (*ui.Messenger, bool) {
	if executionContext == nil {
		return nil, false
	}
	messenger, messengerAvailable := executionContext.Value(messengerContextKeyConstant).(*ui.Messenger)
	if !messengerAvailable || messenger == nil {
		return nil, false
	}
	return messenger, true
}
