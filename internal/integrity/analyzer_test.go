package integrity_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/projanitor/internal/collections"
	"github.com/temirov/projanitor/internal/integrity"
)

const testRootDirectoryConstant = "/project"

var (
	testDuplicateExtensions = []string{".c", ".h", ".py", ".sh"}
	testExtensionSet        = []string{".c", ".h", ".json", ".py", ".cmake", ".md", ".sh", "CMakeLists.txt"}
)

type analysisInput struct {
	files      []string
	found      *collections.MultiMap
	referenced *collections.MultiMap
}

func newAnalysisInput(files []string, references map[string][]string) analysisInput {
	input := analysisInput{found: collections.NewMultiMap(), referenced: collections.NewMultiMap()}
	for _, relativePath := range files {
		filePath := filepath.Join(testRootDirectoryConstant, relativePath)
		input.files = append(input.files, filePath)
		input.found.Add(filepath.Base(filePath), filePath)
	}
	for referencedName, referencingFiles := range references {
		for _, referencingFile := range referencingFiles {
			input.referenced.AddUnique(referencedName, filepath.Join(testRootDirectoryConstant, referencingFile))
		}
	}
	return input
}

func projectPath(relativePath string) string {
	return filepath.Join(testRootDirectoryConstant, relativePath)
}

func TestAnalyzerReportsOrphansAndMissingFiles(testInstance *testing.T) {
	input := newAnalysisInput(
		[]string{"src/main.c", "src/utils.c"},
		map[string][]string{"config.h": {"src/main.c"}},
	)

	findings := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet).Analyze(input.files, input.found, input.referenced)

	require.Equal(testInstance, []string{projectPath("src/main.c"), projectPath("src/utils.c")}, findings.Orphans)
	require.Equal(testInstance, []integrity.MissingReference{{Name: "config.h", ReferencedBy: []string{projectPath("src/main.c")}}}, findings.Missing)
	for _, extensionDuplicates := range findings.Duplicates {
		require.Empty(testInstance, extensionDuplicates.Groups)
	}
}

func TestAnalyzerSortsDuplicatesByDirectoryThenName(testInstance *testing.T) {
	input := newAnalysisInput(
		[]string{"src/main.c", "backup/main.c", "tools/run.sh", "docs/run.sh", "a/README.md", "b/README.md"},
		map[string][]string{"main.c": {"CMakeLists.txt"}},
	)

	findings := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet).Analyze(input.files, input.found, input.referenced)

	require.Len(testInstance, findings.Duplicates, len(testDuplicateExtensions))
	require.Equal(testInstance, ".c", findings.Duplicates[0].Extension)
	require.Equal(testInstance, []integrity.DuplicateGroup{{Name: "main.c", Paths: []string{projectPath("backup/main.c"), projectPath("src/main.c")}}}, findings.Duplicates[0].Groups)
	require.Empty(testInstance, findings.Duplicates[1].Groups)
	require.Empty(testInstance, findings.Duplicates[2].Groups)
	require.Equal(testInstance, ".sh", findings.Duplicates[3].Extension)
	require.Equal(testInstance, []string{projectPath("docs/run.sh"), projectPath("tools/run.sh")}, findings.Duplicates[3].Groups[0].Paths)
	require.Empty(testInstance, findings.Missing)
}

func TestAnalyzerMatchesByBaseNameAnywhereInTree(testInstance *testing.T) {
	input := newAnalysisInput(
		[]string{"src/main.c", "components/board/include/config.h"},
		map[string][]string{"config.h": {"src/main.c"}, "main.c": {"CMakeLists.txt"}},
	)

	findings := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet).Analyze(input.files, input.found, input.referenced)

	require.Empty(testInstance, findings.Orphans)
	require.Empty(testInstance, findings.Missing)
}

func TestAnalyzerMissingReferencesListEveryReferencingFile(testInstance *testing.T) {
	input := newAnalysisInput(
		[]string{"src/main.c", "src/utils.c", "lib/extra.c"},
		map[string][]string{
			"board.h":  {"src/utils.c", "lib/extra.c", "src/main.c"},
			"absent.c": {"CMakeLists.txt"},
		},
	)

	findings := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet).Analyze(input.files, input.found, input.referenced)

	require.Equal(testInstance, []integrity.MissingReference{
		{Name: "absent.c", ReferencedBy: []string{projectPath("CMakeLists.txt")}},
		{Name: "board.h", ReferencedBy: []string{projectPath("lib/extra.c"), projectPath("src/main.c"), projectPath("src/utils.c")}},
	}, findings.Missing)

	for _, missingReference := range findings.Missing {
		require.False(testInstance, input.found.Contains(missingReference.Name))
		expectedReferences, _ := input.referenced.Values(missingReference.Name)
		require.ElementsMatch(testInstance, expectedReferences, missingReference.ReferencedBy)
	}
	for _, orphanPath := range findings.Orphans {
		require.False(testInstance, input.referenced.Contains(filepath.Base(orphanPath)))
	}
}

func TestAnalyzerCountsCategoriesInExtensionSetOrder(testInstance *testing.T) {
	input := newAnalysisInput(
		[]string{"CMakeLists.txt", "src/CMakeLists.txt", "cmake/toolchain.cmake", "src/main.c", "src/main.h", "README.md"},
		nil,
	)

	findings := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet).Analyze(input.files, input.found, input.referenced)

	require.Equal(testInstance, integrity.Statistics{
		TotalFiles: 6,
		Categories: []integrity.CategoryCount{
			{Category: ".c", Count: 1},
			{Category: ".h", Count: 1},
			{Category: ".json", Count: 0},
			{Category: ".py", Count: 0},
			{Category: ".cmake", Count: 1},
			{Category: ".md", Count: 1},
			{Category: ".sh", Count: 0},
			{Category: "CMakeLists.txt", Count: 2},
		},
	}, findings.Statistics)
}

func TestAnalyzerIsIdempotent(testInstance *testing.T) {
	input := newAnalysisInput(
		[]string{"src/main.c", "backup/main.c", "src/utils.c", "include/config.h"},
		map[string][]string{"config.h": {"src/main.c"}, "missing.h": {"src/utils.c", "src/main.c"}},
	)
	analyzer := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet)

	firstFindings := analyzer.Analyze(input.files, input.found, input.referenced)
	secondFindings := analyzer.Analyze(input.files, input.found, input.referenced)

	require.Equal(testInstance, firstFindings, secondFindings)
}

func TestAnalyzerToleratesNilIndexes(testInstance *testing.T) {
	findings := integrity.NewAnalyzer(testDuplicateExtensions, testExtensionSet).Analyze([]string{projectPath("main.c")}, nil, nil)

	require.Equal(testInstance, []string{projectPath("main.c")}, findings.Orphans)
	require.Empty(testInstance, findings.Missing)
}
