package integrity

import (
	"path/filepath"
	"strings"

	"github.com/temirov/projanitor/internal/catalog"
	"github.com/temirov/projanitor/internal/collections"
)

// DuplicateGroup lists every cataloged path sharing one base name.
type DuplicateGroup struct {
	Name  string   `yaml:"name"`
	Paths []string `yaml:"paths"`
}

// ExtensionDuplicates groups duplicate base names by reported extension.
type ExtensionDuplicates struct {
	Extension string           `yaml:"extension"`
	Groups    []DuplicateGroup `yaml:"groups"`
}

// MissingReference is a referenced base name with no cataloged file.
type MissingReference struct {
	Name         string   `yaml:"name"`
	ReferencedBy []string `yaml:"referenced_by"`
}

// CategoryCount counts cataloged files attributed to one extension set entry.
type CategoryCount struct {
	Category string `yaml:"category"`
	Count    int    `yaml:"count"`
}

// Statistics summarizes the catalog.
type Statistics struct {
	TotalFiles int             `yaml:"total_files"`
	Categories []CategoryCount `yaml:"categories"`
}

// Findings holds the sorted results of one analysis.
type Findings struct {
	Files      []string              `yaml:"files"`
	Statistics Statistics            `yaml:"statistics"`
	Duplicates []ExtensionDuplicates `yaml:"duplicates"`
	Orphans    []string              `yaml:"orphans"`
	Missing    []MissingReference    `yaml:"missing"`
}

// Analyzer computes Findings from the catalog and reference indexes.
type Analyzer struct {
	duplicateExtensions []string
	categoryMatcher     catalog.ExtensionMatcher
}

// NewAnalyzer constructs an Analyzer. Duplicates are reported only for duplicateExtensions; statistics are
// counted per entry of the extension set.
func NewAnalyzer(duplicateExtensions []string, extensionSet []string) *Analyzer {
	sanitizedExtensions := make([]string, 0, len(duplicateExtensions))
	for _, duplicateExtension := range duplicateExtensions {
		trimmedExtension := strings.TrimSpace(duplicateExtension)
		if len(trimmedExtension) == 0 {
			continue
		}
		sanitizedExtensions = append(sanitizedExtensions, trimmedExtension)
	}
	return &Analyzer{
		duplicateExtensions: sanitizedExtensions,
		categoryMatcher:     catalog.NewExtensionMatcher(extensionSet),
	}
}

// Analyze derives duplicates, orphans and missing files. Matching is by bare file name only.
func (analyzer *Analyzer) Analyze(files []string, found *collections.MultiMap, referenced *collections.MultiMap) Findings {
	if found == nil {
		found = collections.NewMultiMap()
	}
	if referenced == nil {
		referenced = collections.NewMultiMap()
	}

	return Findings{
		Files:      SortPaths(files),
		Statistics: analyzer.statistics(files),
		Duplicates: analyzer.duplicates(found),
		Orphans:    orphans(files, referenced),
		Missing:    missing(found, referenced),
	}
}

func (analyzer *Analyzer) duplicates(found *collections.MultiMap) []ExtensionDuplicates {
	duplicates := make([]ExtensionDuplicates, 0, len(analyzer.duplicateExtensions))
	foundNames := found.Keys()
	for _, duplicateExtension := range analyzer.duplicateExtensions {
		extensionDuplicates := ExtensionDuplicates{Extension: duplicateExtension}
		for _, foundName := range foundNames {
			if !strings.HasSuffix(foundName, duplicateExtension) {
				continue
			}
			paths, _ := found.Values(foundName)
			if len(paths) < 2 {
				continue
			}
			extensionDuplicates.Groups = append(extensionDuplicates.Groups, DuplicateGroup{Name: foundName, Paths: SortPaths(paths)})
		}
		duplicates = append(duplicates, extensionDuplicates)
	}
	return duplicates
}

func orphans(files []string, referenced *collections.MultiMap) []string {
	var orphanFiles []string
	for _, filePath := range files {
		if referenced.Contains(filepath.Base(filePath)) {
			continue
		}
		orphanFiles = append(orphanFiles, filePath)
	}
	return SortPaths(orphanFiles)
}

func missing(found *collections.MultiMap, referenced *collections.MultiMap) []MissingReference {
	var missingNames []string
	for _, referencedName := range referenced.Keys() {
		if found.Contains(referencedName) {
			continue
		}
		missingNames = append(missingNames, referencedName)
	}

	missingReferences := make([]MissingReference, 0, len(missingNames))
	for _, missingName := range SortPaths(missingNames) {
		referencingFiles, _ := referenced.Values(missingName)
		missingReferences = append(missingReferences, MissingReference{Name: missingName, ReferencedBy: SortPaths(referencingFiles)})
	}
	return missingReferences
}

func (analyzer *Analyzer) statistics(files []string) Statistics {
	categories := analyzer.categoryMatcher.Entries()
	counts := make(map[string]int, len(categories))
	for _, filePath := range files {
		if category, matched := analyzer.categoryMatcher.Category(filepath.Base(filePath)); matched {
			counts[category]++
		}
	}

	statistics := Statistics{TotalFiles: len(files), Categories: make([]CategoryCount, 0, len(categories))}
	for _, category := range categories {
		statistics.Categories = append(statistics.Categories, CategoryCount{Category: category, Count: counts[category]})
	}
	return statistics
}
