package integrity_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/projanitor/internal/integrity"
)

const expectedScenarioReportConstant = `=== Summary ===
Project name: firmware
Project root folder: /project
Key subfolders:
  - backup
  - src
Excluded directories:
  - /project/.git
File structure:
  - /project/backup/main.c
  - /project/src/main.c
  - /project/src/utils.c

=== Statistics ===
Total # of files of interest: 3
# of .c: 3
# of .h: 0

=== Warnings ===
.c files with identical names:
  main.c:
    /project/backup/main.c
    /project/src/main.c
.h files with identical names:
  (None)

=== Errors ===
Orphan files: 3
Missing files: 1

=== Details of Orphan Files ===
- /project/backup/main.c
- /project/src/main.c
- /project/src/utils.c

=== Details of Missing Files ===
- config.h
    referenced by:
      /project/src/main.c
`

const expectedEmptyReportConstant = `=== Summary ===
Project name: Unknown
Project root folder: /project
Key subfolders:
  (None)
Excluded directories:
  (None)
File structure:
  (None)

=== Statistics ===
Total # of files of interest: 0

=== Warnings ===

=== Errors ===
Orphan files: 0
Missing files: 0

=== Details of Orphan Files ===
(None)

=== Details of Missing Files ===
(None)
`

func scenarioReport() integrity.Report {
	input := newAnalysisInput(
		[]string{"src/main.c", "src/utils.c", "backup/main.c"},
		map[string][]string{"config.h": {"src/main.c"}},
	)
	findings := integrity.NewAnalyzer([]string{".c", ".h"}, []string{".c", ".h"}).Analyze(input.files, input.found, input.referenced)
	return integrity.Report{
		Summary: integrity.Summary{
			ProjectName:         "firmware",
			RootDirectory:       testRootDirectoryConstant,
			KeySubfolders:       []string{"src", "backup"},
			ExcludedDirectories: []string{projectPath(".git")},
		},
		Findings: findings,
	}
}

func TestTextReporterRendersSections(testInstance *testing.T) {
	testCases := []struct {
		name     string
		report   integrity.Report
		expected string
	}{
		{
			name:     "scenario",
			report:   scenarioReport(),
			expected: expectedScenarioReportConstant,
		},
		{
			name: "empty_catalog",
			report: integrity.Report{
				Summary:  integrity.Summary{ProjectName: "Unknown", RootDirectory: testRootDirectoryConstant},
				Findings: integrity.NewAnalyzer(nil, nil).Analyze(nil, nil, nil),
			},
			expected: expectedEmptyReportConstant,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			require.NoError(testInstance, integrity.TextReporter{FileStructure: integrity.FileStructureList}.Write(outputBuffer, testCase.report))
			require.Equal(testInstance, testCase.expected, outputBuffer.String())
		})
	}
}

func TestTextReporterIsDeterministic(testInstance *testing.T) {
	firstBuffer := &bytes.Buffer{}
	secondBuffer := &bytes.Buffer{}

	require.NoError(testInstance, integrity.TextReporter{}.Write(firstBuffer, scenarioReport()))
	require.NoError(testInstance, integrity.TextReporter{}.Write(secondBuffer, scenarioReport()))

	require.Equal(testInstance, firstBuffer.Bytes(), secondBuffer.Bytes())
}

func TestTextReporterRendersFileTree(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}

	require.NoError(testInstance, integrity.TextReporter{FileStructure: integrity.FileStructureTree}.Write(outputBuffer, scenarioReport()))

	output := outputBuffer.String()
	require.Contains(testInstance, output, "File structure:\n  /project\n")
	require.Contains(testInstance, output, "── backup\n")
	require.Contains(testInstance, output, "── utils.c\n")
	require.NotContains(testInstance, output, "  - /project/src/utils.c\n")
}

func TestYAMLReporterEncodesReport(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}

	require.NoError(testInstance, integrity.YAMLReporter{}.Write(outputBuffer, scenarioReport()))

	var decoded map[string]any
	require.NoError(testInstance, yaml.Unmarshal(outputBuffer.Bytes(), &decoded))
	require.Contains(testInstance, decoded, "summary")
	require.Contains(testInstance, decoded, "orphans")
	require.Contains(testInstance, decoded, "missing")

	var roundTripped integrity.Report
	require.NoError(testInstance, yaml.Unmarshal(outputBuffer.Bytes(), &roundTripped))
	require.Equal(testInstance, "firmware", roundTripped.Summary.ProjectName)
	require.Equal(testInstance, []string{"/project/src/main.c"}, roundTripped.Findings.Missing[0].ReferencedBy)
}

func TestNewReporterSelectsImplementation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		reportFormat  string
		fileStructure string
		expected      integrity.Reporter
		expectedError error
	}{
		{name: "defaults", expected: integrity.TextReporter{FileStructure: integrity.FileStructureList}},
		{name: "text_tree", reportFormat: "TEXT", fileStructure: "tree", expected: integrity.TextReporter{FileStructure: integrity.FileStructureTree}},
		{name: "yaml", reportFormat: "yaml", expected: integrity.YAMLReporter{}},
		{name: "unknown_format", reportFormat: "xml", expectedError: integrity.ErrUnsupportedReportFormat},
		{name: "unknown_structure", fileStructure: "graph", expectedError: integrity.ErrUnsupportedFileStructure},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			reporter, reporterError := integrity.NewReporter(testCase.reportFormat, testCase.fileStructure)
			if testCase.expectedError != nil {
				require.True(testInstance, errors.Is(reporterError, testCase.expectedError))
				return
			}
			require.NoError(testInstance, reporterError)
			require.Equal(testInstance, testCase.expected, reporter)
		})
	}
}
