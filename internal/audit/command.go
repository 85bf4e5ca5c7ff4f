package audit

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/projanitor/internal/filesystem"
	"github.com/temirov/projanitor/internal/integrity"
	"github.com/temirov/projanitor/internal/utils"
	"github.com/temirov/projanitor/internal/utils/flags"
	pathutils "github.com/temirov/projanitor/internal/utils/path"
)

const (
	commandNameConstant               = "audit"
	commandShortDescriptionConstant   = "Report duplicate, orphan and missing files in a source tree"
	commandLongDescriptionConstant    = "audit locates the project root by its marker files, catalogs files of interest, extracts include and build-list references, and reports duplicate file names, files nothing references, and referenced files that do not exist. Findings never change the exit status."
	flagStartDirectoryName            = "start-dir"
	flagStartDirectoryUsage           = "Directory to start the project root search from (defaults to the working directory)"
	flagExtensionsName                = "extensions"
	flagExtensionsUsage               = "File extensions (.c) or exact names (CMakeLists.txt) to catalog"
	flagExcludeDirectoriesName        = "exclude-dirs"
	flagExcludeDirectoriesUsage       = "Directory names skipped during the walk (build is always traversed)"
	flagMarkerFilesName               = "marker-files"
	flagMarkerFilesUsage              = "Files that must all be present in the project root"
	flagIgnorePatternsName            = "ignore"
	flagIgnorePatternsUsage           = "Glob patterns, relative to the project root, excluded from the catalog"
	flagReportFormatName              = "format"
	flagReportFormatUsage             = "Report format"
	flagTreeName                      = "tree"
	flagTreeUsage                     = "Render the file structure as a tree"
	flagPythonImportsName             = "python-imports"
	flagPythonImportsUsage            = "Treat Python 'from X import' lines as references to X.py"
	flagVerboseName                   = "verbose"
	flagVerboseShorthand              = "v"
	flagVerboseUsage                  = "Log diagnostics from every audit stage"
	configurationFileMessageConstant  = "audit configuration resolved"
	logFieldConfigurationFileConstant = "config_file"
	logFieldReportFormatConstant      = "report_format"
	logFieldMarkerFilesConstant       = "marker_files"
	logFieldExcludedDirectoriesField  = "exclude_dirs"
	logFieldExtensionsConstant        = "extensions"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            FileSystem
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the cobra command for the audit workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagStartDirectoryName, "", flagStartDirectoryUsage)
	command.Flags().StringSlice(flagExtensionsName, defaults.Extensions, flagExtensionsUsage)
	command.Flags().StringSlice(flagExcludeDirectoriesName, defaults.ExcludeDirectories, flagExcludeDirectoriesUsage)
	command.Flags().StringSlice(flagMarkerFilesName, defaults.MarkerFiles, flagMarkerFilesUsage)
	command.Flags().StringSlice(flagIgnorePatternsName, nil, flagIgnorePatternsUsage)
	command.Flags().String(flagReportFormatName, defaults.ReportFormat, flags.FormatChoiceUsage(defaults.ReportFormat, reportFormatChoices, flagReportFormatUsage))
	command.Flags().Bool(flagTreeName, false, flagTreeUsage)
	command.Flags().Bool(flagPythonImportsName, false, flagPythonImportsUsage)
	command.Flags().BoolP(flagVerboseName, flagVerboseShorthand, false, flagVerboseUsage)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	settings, settingsError := builder.resolveConfiguration(command).Settings()
	if settingsError != nil {
		return settingsError
	}

	logger := builder.resolveLogger()
	configurationMetadata, _ := utils.NewCommandContextAccessor().ConfigurationMetadata(command.Context())
	logger.Debug(
		configurationFileMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationMetadata.ConfigFileUsed),
		zap.String(logFieldReportFormatConstant, settings.ReportFormat),
		zap.Strings(logFieldMarkerFilesConstant, settings.MarkerFiles),
		zap.Strings(logFieldExcludedDirectoriesField, settings.ExcludedDirectories),
		zap.Strings(logFieldExtensionsConstant, settings.Extensions),
	)

	service := NewService(builder.resolveFileSystem(), builder.HomeExpander, command.OutOrStdout(), logger)
	_, runError := service.Run(command.Context(), settings)
	return runError
}

// resolveConfiguration overlays explicitly set flags on the provided configuration.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	commandFlags := command.Flags()
	if commandFlags.Changed(flagStartDirectoryName) {
		configuration.StartDirectory, _ = commandFlags.GetString(flagStartDirectoryName)
	}
	if commandFlags.Changed(flagExtensionsName) {
		configuration.Extensions, _ = commandFlags.GetStringSlice(flagExtensionsName)
	}
	if commandFlags.Changed(flagExcludeDirectoriesName) {
		configuration.ExcludeDirectories, _ = commandFlags.GetStringSlice(flagExcludeDirectoriesName)
	}
	if commandFlags.Changed(flagMarkerFilesName) {
		configuration.MarkerFiles, _ = commandFlags.GetStringSlice(flagMarkerFilesName)
	}
	if commandFlags.Changed(flagIgnorePatternsName) {
		ignorePatterns, _ := commandFlags.GetStringSlice(flagIgnorePatternsName)
		configuration.IgnorePatterns = append(append([]string{}, configuration.IgnorePatterns...), ignorePatterns...)
	}
	if commandFlags.Changed(flagReportFormatName) {
		configuration.ReportFormat, _ = commandFlags.GetString(flagReportFormatName)
	}
	if commandFlags.Changed(flagTreeName) {
		if treeEnabled, _ := commandFlags.GetBool(flagTreeName); treeEnabled {
			configuration.FileStructure = integrity.FileStructureTree
		} else {
			configuration.FileStructure = integrity.FileStructureList
		}
	}
	if commandFlags.Changed(flagPythonImportsName) {
		configuration.PythonImports, _ = commandFlags.GetBool(flagPythonImportsName)
	}
	if commandFlags.Changed(flagVerboseName) {
		configuration.Verbose, _ = commandFlags.GetBool(flagVerboseName)
	}

	return configuration
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

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem == nil {
		return filesystem.OSFileSystem{}
	}
	return builder.FileSystem
}
