package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/temirov/projanitor/internal/collections"
)

const (
	// BuildDirectoryName is always traversed, even when listed as excluded, so byproducts are filtered per file.
	BuildDirectoryName = "build"

	invalidIgnorePatternTemplateConstant = "invalid ignore pattern %q"
	directoryAnalyzingMessageConstant    = "analyzing directory"
	directoryUnreadableMessageConstant   = "cannot open directory"
	directoryExcludedMessageConstant     = "skipping excluded directory"
	directoryIgnoredMessageConstant      = "skipping ignored directory"
	symlinkSkippedMessageConstant        = "skipping symlink"
	fileAdmittedMessageConstant          = "processing file"
	systemFileSkippedMessageConstant     = "skipping build byproduct"
	logFieldDirectoryConstant            = "directory"
	logFieldPathConstant                 = "path"
	logFieldPatternConstant              = "pattern"
)

// FileSystem exposes the directory listing used by the cataloger and the system file collector.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
}

// ReferenceExtractor receives every admitted file immediately after it is cataloged.
type ReferenceExtractor interface {
	Extract(filePath string)
}

// Options configures admission and traversal.
type Options struct {
	Extensions          []string
	ExcludedDirectories []string
	IgnorePatterns      []string
	SystemFiles         *collections.OrderedStringSet
}

// Result holds the catalog produced by one walk.
type Result struct {
	Files               []string
	Found               *collections.MultiMap
	KeySubfolders       []string
	ExcludedDirectories []string
}

// Cataloger walks a root directory and admits files of interest.
type Cataloger struct {
	fileSystem          FileSystem
	extractor           ReferenceExtractor
	extensionMatcher    ExtensionMatcher
	excludedDirectories *collections.OrderedStringSet
	ignorePatterns      []string
	systemFiles         *collections.OrderedStringSet
	logger              *zap.Logger
}

// NewCataloger validates the options and constructs a Cataloger.
func NewCataloger(fileSystem FileSystem, extractor ReferenceExtractor, options Options, logger *zap.Logger) (*Cataloger, error) {
	for _, ignorePattern := range options.IgnorePatterns {
		if !doublestar.ValidatePattern(ignorePattern) {
			return nil, fmt.Errorf(invalidIgnorePatternTemplateConstant, ignorePattern)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	systemFiles := options.SystemFiles
	if systemFiles == nil {
		systemFiles = collections.NewOrderedStringSet()
	}
	return &Cataloger{
		fileSystem:          fileSystem,
		extractor:           extractor,
		extensionMatcher:    NewExtensionMatcher(options.Extensions),
		excludedDirectories: collections.NewOrderedStringSet(options.ExcludedDirectories...),
		ignorePatterns:      append([]string{}, options.IgnorePatterns...),
		systemFiles:         systemFiles,
		logger:              logger,
	}, nil
}

// Catalog walks rootDirectory depth-first in directory-entry order. Symbolic links are never followed or admitted.
func (cataloger *Cataloger) Catalog(rootDirectory string) Result {
	walk := catalogWalk{
		rootDirectory: filepath.Clean(rootDirectory),
		result:        Result{Found: collections.NewMultiMap()},
	}
	cataloger.walkDirectory(&walk, walk.rootDirectory, 0)
	return walk.result
}

type catalogWalk struct {
	rootDirectory string
	result        Result
}

func (cataloger *Cataloger) walkDirectory(walk *catalogWalk, directory string, depth int) {
	cataloger.logger.Debug(directoryAnalyzingMessageConstant, zap.String(logFieldDirectoryConstant, directory))

	directoryEntries, readError := cataloger.fileSystem.ReadDir(directory)
	if readError != nil {
		cataloger.logger.Warn(directoryUnreadableMessageConstant, zap.String(logFieldDirectoryConstant, directory), zap.Error(readError))
		return
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directory, entryName)
		entryType := directoryEntry.Type()

		switch {
		case entryType&fs.ModeSymlink != 0:
			cataloger.logger.Info(symlinkSkippedMessageConstant, zap.String(logFieldPathConstant, entryPath))
		case directoryEntry.IsDir():
			if cataloger.isExcludedDirectory(entryName) {
				cataloger.logger.Info(directoryExcludedMessageConstant, zap.String(logFieldPathConstant, entryPath))
				walk.result.ExcludedDirectories = append(walk.result.ExcludedDirectories, entryPath)
				continue
			}
			if ignorePattern, ignored := cataloger.ignoredBy(walk.rootDirectory, entryPath); ignored {
				cataloger.logger.Info(directoryIgnoredMessageConstant, zap.String(logFieldPathConstant, entryPath), zap.String(logFieldPatternConstant, ignorePattern))
				walk.result.ExcludedDirectories = append(walk.result.ExcludedDirectories, entryPath)
				continue
			}
			if depth == 0 && !cataloger.excludedDirectories.Contains(entryName) {
				walk.result.KeySubfolders = append(walk.result.KeySubfolders, entryName)
			}
			cataloger.walkDirectory(walk, entryPath, depth+1)
		case entryType.IsRegular():
			cataloger.admitFile(walk, entryName, entryPath)
		}
	}
}

func (cataloger *Cataloger) admitFile(walk *catalogWalk, fileName string, filePath string) {
	if !cataloger.extensionMatcher.Matches(fileName) {
		return
	}
	if cataloger.systemFiles.Contains(fileName) {
		cataloger.logger.Debug(systemFileSkippedMessageConstant, zap.String(logFieldPathConstant, filePath))
		return
	}
	if _, ignored := cataloger.ignoredBy(walk.rootDirectory, filePath); ignored {
		return
	}

	walk.result.Files = append(walk.result.Files, filePath)
	walk.result.Found.Add(fileName, filePath)
	cataloger.logger.Debug(fileAdmittedMessageConstant, zap.String(logFieldPathConstant, filePath))

	if cataloger.extractor != nil {
		cataloger.extractor.Extract(filePath)
	}
}

// isExcludedDirectory applies the exclusion set, except for the build directory which is always traversed.
func (cataloger *Cataloger) isExcludedDirectory(directoryName string) bool {
	return directoryName != BuildDirectoryName && cataloger.excludedDirectories.Contains(directoryName)
}

// ignoredBy matches the root-relative, slash-separated path against the ignore patterns.
func (cataloger *Cataloger) ignoredBy(rootDirectory string, entryPath string) (string, bool) {
	if len(cataloger.ignorePatterns) == 0 {
		return "", false
	}
	relativePath, relativeError := filepath.Rel(rootDirectory, entryPath)
	if relativeError != nil {
		return "", false
	}
	slashPath := filepath.ToSlash(relativePath)
	for _, ignorePattern := range cataloger.ignorePatterns {
		if matched, matchError := doublestar.Match(ignorePattern, slashPath); matchError == nil && matched {
			return ignorePattern, true
		}
	}
	return "", false
}
