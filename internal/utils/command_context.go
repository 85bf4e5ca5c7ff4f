package utils

import "context"

type commandContextKey string

const configurationMetadataContextKey = commandContextKey("configurationMetadata")

// CommandContextAccessor stores and retrieves values shared between the root command and its subcommands.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationMetadata attaches the resolved configuration metadata to parentContext.
func (accessor CommandContextAccessor) WithConfigurationMetadata(parentContext context.Context, metadata LoadedConfiguration) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationMetadataContextKey, metadata)
}

// ConfigurationMetadata extracts the configuration metadata, reporting whether it was present.
func (accessor CommandContextAccessor) ConfigurationMetadata(executionContext context.Context) (LoadedConfiguration, bool) {
	if executionContext == nil {
		return LoadedConfiguration{}, false
	}
	metadata, present := executionContext.Value(configurationMetadataContextKey).(LoadedConfiguration)
	return metadata, present
}
