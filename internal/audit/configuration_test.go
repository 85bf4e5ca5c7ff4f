package audit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/projanitor/internal/audit"
	"github.com/temirov/projanitor/internal/utils/flags"
)

func TestDefaultConfigurationValuesUsePrefix(testInstance *testing.T) {
	defaultValues := audit.DefaultConfigurationValues("tools.audit")

	require.Equal(testInstance, []string{".c", ".h", ".json", ".py", ".cmake", ".md", ".sh", "CMakeLists.txt"}, defaultValues["tools.audit.extensions"])
	require.Equal(testInstance, []string{".git", "build", "build_logs", "doc"}, defaultValues["tools.audit.exclude_dirs"])
	require.Equal(testInstance, []string{"LICENSE", "sdkconfig", "dependencies.lock", "CMakeLists.txt"}, defaultValues["tools.audit.marker_files"])
	require.Equal(testInstance, 3, defaultValues["tools.audit.max_search_depth"])
	require.Equal(testInstance, "text", defaultValues["tools.audit.report_format"])
	require.Len(testInstance, defaultValues, 13)

	unprefixedValues := audit.DefaultConfigurationValues("")
	require.Contains(testInstance, unprefixedValues, "verbose")
}

func TestCommandConfigurationSettings(testInstance *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(configuration *audit.CommandConfiguration)
		verify        func(testInstance *testing.T, settings audit.Settings)
		expectedError error
		expectError   bool
	}{
		{
			name: "empty_required_sets_restore_defaults",
			mutate: func(configuration *audit.CommandConfiguration) {
				configuration.Extensions = []string{" ", ""}
				configuration.MarkerFiles = nil
				configuration.MaxSearchDepth = 0
				configuration.BuildDirectory = " "
			},
			verify: func(testInstance *testing.T, settings audit.Settings) {
				require.Equal(testInstance, audit.DefaultCommandConfiguration().Extensions, settings.Extensions)
				require.Equal(testInstance, audit.DefaultCommandConfiguration().MarkerFiles, settings.MarkerFiles)
				require.Equal(testInstance, 3, settings.MaxSearchDepth)
				require.Equal(testInstance, "build", settings.BuildDirectory)
			},
		},
		{
			name: "values_are_trimmed",
			mutate: func(configuration *audit.CommandConfiguration) {
				configuration.ExcludeDirectories = []string{" .git ", "", "third_party"}
				configuration.StartDirectory = "  ~/firmware "
				configuration.ReportFormat = " YAML "
				configuration.FileStructure = "Tree"
			},
			verify: func(testInstance *testing.T, settings audit.Settings) {
				require.Equal(testInstance, []string{".git", "third_party"}, settings.ExcludedDirectories)
				require.Equal(testInstance, "~/firmware", settings.StartDirectory)
				require.Equal(testInstance, "yaml", settings.ReportFormat)
				require.Equal(testInstance, "tree", settings.FileStructure)
			},
		},
		{
			name: "exclusions_may_be_empty",
			mutate: func(configuration *audit.CommandConfiguration) {
				configuration.ExcludeDirectories = nil
			},
			verify: func(testInstance *testing.T, settings audit.Settings) {
				require.Empty(testInstance, settings.ExcludedDirectories)
			},
		},
		{
			name: "unsupported_report_format",
			mutate: func(configuration *audit.CommandConfiguration) {
				configuration.ReportFormat = "xml"
			},
			expectedError: flags.ErrUnsupportedChoice,
		},
		{
			name: "unsupported_file_structure",
			mutate: func(configuration *audit.CommandConfiguration) {
				configuration.FileStructure = "graph"
			},
			expectedError: flags.ErrUnsupportedChoice,
		},
		{
			name: "invalid_ignore_pattern",
			mutate: func(configuration *audit.CommandConfiguration) {
				configuration.IgnorePatterns = []string{"vendor/[abc"}
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configuration := audit.DefaultCommandConfiguration()
			testCase.mutate(&configuration)

			settings, settingsError := configuration.Settings()
			switch {
			case testCase.expectedError != nil:
				require.True(testInstance, errors.Is(settingsError, testCase.expectedError))
			case testCase.expectError:
				require.Error(testInstance, settingsError)
			default:
				require.NoError(testInstance, settingsError)
				testCase.verify(testInstance, settings)
			}
		})
	}
}
