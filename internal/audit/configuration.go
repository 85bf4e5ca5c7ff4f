package audit

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/projanitor/internal/catalog"
	"github.com/temirov/projanitor/internal/discovery"
	"github.com/temirov/projanitor/internal/integrity"
	"github.com/temirov/projanitor/internal/utils/flags"
)

const (
	configurationKeySeparatorConstant = "."
	startDirectoryKeyConstant         = "start_directory"
	extensionsKeyConstant             = "extensions"
	excludeDirectoriesKeyConstant     = "exclude_dirs"
	markerFilesKeyConstant            = "marker_files"
	ignorePatternsKeyConstant         = "ignore_patterns"
	duplicateExtensionsKeyConstant    = "duplicate_extensions"
	buildDirectoryKeyConstant         = "build_directory"
	buildDescriptorsKeyConstant       = "build_descriptors"
	maxSearchDepthKeyConstant         = "max_search_depth"
	pythonImportsKeyConstant          = "python_imports"
	reportFormatKeyConstant           = "report_format"
	fileStructureKeyConstant          = "file_structure"
	verboseKeyConstant                = "verbose"
	invalidIgnorePatternTemplate      = "invalid ignore pattern %q"
	invalidSettingTemplateConstant    = "invalid %s: %w"
)

var (
	defaultExtensions          = []string{".c", ".h", ".json", ".py", ".cmake", ".md", ".sh", "CMakeLists.txt"}
	defaultExcludedDirectories = []string{".git", catalog.BuildDirectoryName, "build_logs", "doc"}
	defaultMarkerFiles         = []string{"LICENSE", "sdkconfig", "dependencies.lock", "CMakeLists.txt"}
	defaultDuplicateExtensions = []string{".c", ".h", ".py", ".sh"}
	defaultBuildDescriptors    = []string{"CMakeLists.txt", ".cmake"}
	reportFormatChoices        = []string{integrity.ReportFormatText, integrity.ReportFormatYAML}
	fileStructureChoices       = []string{integrity.FileStructureList, integrity.FileStructureTree}
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	StartDirectory      string   `mapstructure:"start_directory"`
	Extensions          []string `mapstructure:"extensions"`
	ExcludeDirectories  []string `mapstructure:"exclude_dirs"`
	MarkerFiles         []string `mapstructure:"marker_files"`
	IgnorePatterns      []string `mapstructure:"ignore_patterns"`
	DuplicateExtensions []string `mapstructure:"duplicate_extensions"`
	BuildDirectory      string   `mapstructure:"build_directory"`
	BuildDescriptors    []string `mapstructure:"build_descriptors"`
	MaxSearchDepth      int      `mapstructure:"max_search_depth"`
	PythonImports       bool     `mapstructure:"python_imports"`
	ReportFormat        string   `mapstructure:"report_format"`
	FileStructure       string   `mapstructure:"file_structure"`
	Verbose             bool     `mapstructure:"verbose"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Extensions:          append([]string{}, defaultExtensions...),
		ExcludeDirectories:  append([]string{}, defaultExcludedDirectories...),
		MarkerFiles:         append([]string{}, defaultMarkerFiles...),
		IgnorePatterns:      []string{},
		DuplicateExtensions: append([]string{}, defaultDuplicateExtensions...),
		BuildDirectory:      catalog.BuildDirectoryName,
		BuildDescriptors:    append([]string{}, defaultBuildDescriptors...),
		MaxSearchDepth:      discovery.DefaultMaxSearchDepth,
		PythonImports:       false,
		ReportFormat:        integrity.ReportFormatText,
		FileStructure:       integrity.FileStructureList,
		Verbose:             false,
	}
}

// DefaultConfigurationValues exposes the defaults keyed beneath prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	qualify := func(key string) string {
		trimmedPrefix := strings.TrimSpace(prefix)
		if len(trimmedPrefix) == 0 {
			return key
		}
		return trimmedPrefix + configurationKeySeparatorConstant + key
	}

	return map[string]any{
		qualify(startDirectoryKeyConstant):      defaults.StartDirectory,
		qualify(extensionsKeyConstant):          defaults.Extensions,
		qualify(excludeDirectoriesKeyConstant):  defaults.ExcludeDirectories,
		qualify(markerFilesKeyConstant):         defaults.MarkerFiles,
		qualify(ignorePatternsKeyConstant):      defaults.IgnorePatterns,
		qualify(duplicateExtensionsKeyConstant): defaults.DuplicateExtensions,
		qualify(buildDirectoryKeyConstant):      defaults.BuildDirectory,
		qualify(buildDescriptorsKeyConstant):    defaults.BuildDescriptors,
		qualify(maxSearchDepthKeyConstant):      defaults.MaxSearchDepth,
		qualify(pythonImportsKeyConstant):       defaults.PythonImports,
		qualify(reportFormatKeyConstant):        defaults.ReportFormat,
		qualify(fileStructureKeyConstant):       defaults.FileStructure,
		qualify(verboseKeyConstant):             defaults.Verbose,
	}
}

// Settings is the validated, immutable form of CommandConfiguration consumed by Service.
type Settings struct {
	StartDirectory      string
	Extensions          []string
	ExcludedDirectories []string
	MarkerFiles         []string
	IgnorePatterns      []string
	DuplicateExtensions []string
	BuildDirectory      string
	BuildDescriptors    []string
	MaxSearchDepth      int
	PythonImports       bool
	ReportFormat        string
	FileStructure       string
	Verbose             bool
}

// Settings trims every value, restores defaults for empty required sets and validates enumerations and patterns.
func (configuration CommandConfiguration) Settings() (Settings, error) {
	reportFormat, reportFormatError := flags.NormalizeChoice(configuration.ReportFormat, integrity.ReportFormatText, reportFormatChoices)
	if reportFormatError != nil {
		return Settings{}, fmt.Errorf(invalidSettingTemplateConstant, reportFormatKeyConstant, reportFormatError)
	}
	fileStructure, fileStructureError := flags.NormalizeChoice(configuration.FileStructure, integrity.FileStructureList, fileStructureChoices)
	if fileStructureError != nil {
		return Settings{}, fmt.Errorf(invalidSettingTemplateConstant, fileStructureKeyConstant, fileStructureError)
	}

	ignorePatterns := sanitizeValues(configuration.IgnorePatterns)
	for _, ignorePattern := range ignorePatterns {
		if !doublestar.ValidatePattern(ignorePattern) {
			return Settings{}, fmt.Errorf(invalidIgnorePatternTemplate, ignorePattern)
		}
	}

	maxSearchDepth := configuration.MaxSearchDepth
	if maxSearchDepth <= 0 {
		maxSearchDepth = discovery.DefaultMaxSearchDepth
	}
	buildDirectory := strings.TrimSpace(configuration.BuildDirectory)
	if len(buildDirectory) == 0 {
		buildDirectory = catalog.BuildDirectoryName
	}

	return Settings{
		StartDirectory:      strings.TrimSpace(configuration.StartDirectory),
		Extensions:          sanitizeValuesWithDefault(configuration.Extensions, defaultExtensions),
		ExcludedDirectories: sanitizeValues(configuration.ExcludeDirectories),
		MarkerFiles:         sanitizeValuesWithDefault(configuration.MarkerFiles, defaultMarkerFiles),
		IgnorePatterns:      ignorePatterns,
		DuplicateExtensions: sanitizeValuesWithDefault(configuration.DuplicateExtensions, defaultDuplicateExtensions),
		BuildDirectory:      buildDirectory,
		BuildDescriptors:    sanitizeValuesWithDefault(configuration.BuildDescriptors, defaultBuildDescriptors),
		MaxSearchDepth:      maxSearchDepth,
		PythonImports:       configuration.PythonImports,
		ReportFormat:        reportFormat,
		FileStructure:       fileStructure,
		Verbose:             configuration.Verbose,
	}, nil
}

func sanitizeValues(rawValues []string) []string {
	sanitized := make([]string, 0, len(rawValues))
	for _, rawValue := range rawValues {
		trimmedValue := strings.TrimSpace(rawValue)
		if len(trimmedValue) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedValue)
	}
	return sanitized
}

func sanitizeValuesWithDefault(rawValues []string, defaultValues []string) []string {
	sanitized := sanitizeValues(rawValues)
	if len(sanitized) == 0 {
		return append([]string{}, defaultValues...)
	}
	return sanitized
}
