package integrity

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disiqueira/gotree/v3"
)

const (
	summaryHeaderConstant           = "=== Summary ==="
	statisticsHeaderConstant        = "=== Statistics ==="
	warningsHeaderConstant          = "=== Warnings ==="
	errorsHeaderConstant            = "=== Errors ==="
	orphanDetailsHeaderConstant     = "=== Details of Orphan Files ==="
	missingDetailsHeaderConstant    = "=== Details of Missing Files ==="
	projectNameTemplateConstant     = "Project name: %s\n"
	projectRootTemplateConstant     = "Project root folder: %s\n"
	keySubfoldersLabelConstant      = "Key subfolders:"
	excludedDirectoriesLabel        = "Excluded directories:"
	fileStructureLabelConstant      = "File structure:"
	indentedItemTemplateConstant    = "  - %s\n"
	indentedNoneConstant            = "  (None)"
	noneConstant                    = "(None)"
	totalFilesTemplateConstant      = "Total # of files of interest: %d\n"
	categoryCountTemplateConstant   = "# of %s: %d\n"
	duplicateBlockTemplateConstant  = "%s files with identical names:\n"
	duplicateNameTemplateConstant   = "  %s:\n"
	duplicatePathTemplateConstant   = "    %s\n"
	orphanCountTemplateConstant     = "Orphan files: %d\n"
	missingCountTemplateConstant    = "Missing files: %d\n"
	detailItemTemplateConstant      = "- %s\n"
	referencedByLabelConstant       = "    referenced by:"
	referencingFileTemplateConstant = "      %s\n"
	treeIndentationConstant         = "  "
	currentDirectoryConstant        = "."
	parentDirectoryPrefixConstant   = ".."
)

// TextReporter writes the human-readable report with fixed section headers.
type TextReporter struct {
	FileStructure string
}

// Write renders report to writer.
func (reporter TextReporter) Write(writer io.Writer, report Report) error {
	builder := &strings.Builder{}

	reporter.writeSummary(builder, report)
	writeStatistics(builder, report.Findings.Statistics)
	writeWarnings(builder, report.Findings.Duplicates)
	writeErrors(builder, report.Findings)

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func (reporter TextReporter) writeSummary(builder *strings.Builder, report Report) {
	builder.WriteString(summaryHeaderConstant + "\n")
	fmt.Fprintf(builder, projectNameTemplateConstant, report.Summary.ProjectName)
	fmt.Fprintf(builder, projectRootTemplateConstant, report.Summary.RootDirectory)
	writeIndentedList(builder, keySubfoldersLabelConstant, SortPaths(report.Summary.KeySubfolders))
	writeIndentedList(builder, excludedDirectoriesLabel, SortPaths(report.Summary.ExcludedDirectories))

	if reporter.FileStructure == FileStructureTree && len(report.Findings.Files) > 0 {
		builder.WriteString(fileStructureLabelConstant + "\n")
		for _, treeLine := range strings.Split(strings.TrimRight(renderFileTree(report.Summary.RootDirectory, report.Findings.Files), "\n"), "\n") {
			builder.WriteString(treeIndentationConstant + treeLine + "\n")
		}
		return
	}
	writeIndentedList(builder, fileStructureLabelConstant, report.Findings.Files)
}

func writeIndentedList(builder *strings.Builder, label string, items []string) {
	builder.WriteString(label + "\n")
	if len(items) == 0 {
		builder.WriteString(indentedNoneConstant + "\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(builder, indentedItemTemplateConstant, item)
	}
}

func writeStatistics(builder *strings.Builder, statistics Statistics) {
	builder.WriteString("\n" + statisticsHeaderConstant + "\n")
	fmt.Fprintf(builder, totalFilesTemplateConstant, statistics.TotalFiles)
	for _, categoryCount := range statistics.Categories {
		fmt.Fprintf(builder, categoryCountTemplateConstant, categoryCount.Category, categoryCount.Count)
	}
}

func writeWarnings(builder *strings.Builder, duplicates []ExtensionDuplicates) {
	builder.WriteString("\n" + warningsHeaderConstant + "\n")
	for _, extensionDuplicates := range duplicates {
		fmt.Fprintf(builder, duplicateBlockTemplateConstant, extensionDuplicates.Extension)
		if len(extensionDuplicates.Groups) == 0 {
			builder.WriteString(indentedNoneConstant + "\n")
			continue
		}
		for _, duplicateGroup := range extensionDuplicates.Groups {
			fmt.Fprintf(builder, duplicateNameTemplateConstant, duplicateGroup.Name)
			for _, duplicatePath := range duplicateGroup.Paths {
				fmt.Fprintf(builder, duplicatePathTemplateConstant, duplicatePath)
			}
		}
	}
}

func writeErrors(builder *strings.Builder, findings Findings) {
	builder.WriteString("\n" + errorsHeaderConstant + "\n")
	fmt.Fprintf(builder, orphanCountTemplateConstant, len(findings.Orphans))
	fmt.Fprintf(builder, missingCountTemplateConstant, len(findings.Missing))

	builder.WriteString("\n" + orphanDetailsHeaderConstant + "\n")
	if len(findings.Orphans) == 0 {
		builder.WriteString(noneConstant + "\n")
	}
	for _, orphanPath := range findings.Orphans {
		fmt.Fprintf(builder, detailItemTemplateConstant, orphanPath)
	}

	builder.WriteString("\n" + missingDetailsHeaderConstant + "\n")
	if len(findings.Missing) == 0 {
		builder.WriteString(noneConstant + "\n")
	}
	for _, missingReference := range findings.Missing {
		fmt.Fprintf(builder, detailItemTemplateConstant, missingReference.Name)
		builder.WriteString(referencedByLabelConstant + "\n")
		for _, referencingFile := range missingReference.ReferencedBy {
			fmt.Fprintf(builder, referencingFileTemplateConstant, referencingFile)
		}
	}
}

// renderFileTree draws the catalog as a tree labelled with the root directory, one node per path component.
func renderFileTree(rootDirectory string, files []string) string {
	fileTree := gotree.New(rootDirectory)
	directoryNodes := map[string]gotree.Tree{currentDirectoryConstant: fileTree}

	var directoryNode func(relativeDirectory string) gotree.Tree
	directoryNode = func(relativeDirectory string) gotree.Tree {
		if node, exists := directoryNodes[relativeDirectory]; exists {
			return node
		}
		node := directoryNode(filepath.Dir(relativeDirectory)).Add(filepath.Base(relativeDirectory))
		directoryNodes[relativeDirectory] = node
		return node
	}

	for _, filePath := range files {
		relativePath, relativeError := filepath.Rel(rootDirectory, filePath)
		if relativeError != nil || strings.HasPrefix(relativePath, parentDirectoryPrefixConstant) {
			fileTree.Add(filePath)
			continue
		}
		directoryNode(filepath.Dir(relativePath)).Add(filepath.Base(relativePath))
	}
	return fileTree.Print()
}
