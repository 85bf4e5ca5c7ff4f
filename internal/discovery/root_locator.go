package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultMaxSearchDepth bounds both the ancestor climb and the descendant expansion.
	DefaultMaxSearchDepth = 3

	candidateCheckedMessageConstant    = "checking directory"
	markersMissingMessageConstant      = "directory missing markers"
	markerFoundMessageConstant         = "found marker"
	directoryUnreadableMessageConstant = "cannot open directory"
	entryUnreadableMessageConstant     = "cannot stat entry"
	logFieldDirectoryConstant          = "directory"
	logFieldMarkerConstant             = "marker"
	logFieldMissingMarkersConstant     = "missing_markers"
	logFieldPathConstant               = "path"
)

// ErrRootNotFound indicates that no candidate directory held every marker file.
var ErrRootNotFound = errors.New("project root could not be found")

// ErrMarkerSetEmpty indicates that the locator was asked to search without markers.
var ErrMarkerSetEmpty = errors.New("marker file set is empty")

// FileSystem exposes the filesystem operations required by the root locator.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// RootLocator finds the project root by testing candidate directories against a marker set.
type RootLocator struct {
	fileSystem     FileSystem
	markerFiles    []string
	maxSearchDepth int
	logger         *zap.Logger
}

// NewRootLocator constructs a RootLocator. A non-positive depth selects DefaultMaxSearchDepth.
func NewRootLocator(fileSystem FileSystem, markerFiles []string, maxSearchDepth int, logger *zap.Logger) *RootLocator {
	if maxSearchDepth <= 0 {
		maxSearchDepth = DefaultMaxSearchDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	duplicatedMarkers := make([]string, 0, len(markerFiles))
	for _, markerFile := range markerFiles {
		trimmedMarker := strings.TrimSpace(markerFile)
		if len(trimmedMarker) == 0 {
			continue
		}
		duplicatedMarkers = append(duplicatedMarkers, trimmedMarker)
	}
	return &RootLocator{
		fileSystem:     fileSystem,
		markerFiles:    duplicatedMarkers,
		maxSearchDepth: maxSearchDepth,
		logger:         logger,
	}
}

// Locate returns the first candidate, starting at startDirectory, that contains every marker file.
func (locator *RootLocator) Locate(startDirectory string) (string, error) {
	if len(locator.markerFiles) == 0 {
		return "", ErrMarkerSetEmpty
	}

	startDirectory = filepath.Clean(startDirectory)

	if locator.matches(startDirectory) {
		return startDirectory, nil
	}

	for _, ancestorDirectory := range ancestorCandidates(startDirectory, locator.maxSearchDepth) {
		if locator.matches(ancestorDirectory) {
			return ancestorDirectory, nil
		}
	}

	if descendantDirectory, found := locator.searchDescendants(startDirectory); found {
		return descendantDirectory, nil
	}

	return "", ErrRootNotFound
}

// ancestorCandidates lists up to depth parents of directory, innermost first, stopping at the filesystem root.
func ancestorCandidates(directory string, depth int) []string {
	var ancestors []string
	currentDirectory := directory
	for level := 0; level < depth; level++ {
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		ancestors = append(ancestors, parentDirectory)
		currentDirectory = parentDirectory
	}
	return ancestors
}

// searchDescendants expands subdirectories breadth-first with an explicit frontier, testing each as it is discovered.
func (locator *RootLocator) searchDescendants(startDirectory string) (string, bool) {
	frontier := []string{startDirectory}
	for depth := 1; depth <= locator.maxSearchDepth && len(frontier) > 0; depth++ {
		var nextFrontier []string
		for _, directory := range frontier {
			for _, subdirectory := range locator.listSubdirectories(directory) {
				if locator.matches(subdirectory) {
					return subdirectory, true
				}
				nextFrontier = append(nextFrontier, subdirectory)
			}
		}
		frontier = nextFrontier
	}
	return "", false
}

func (locator *RootLocator) listSubdirectories(directory string) []string {
	directoryEntries, readError := locator.fileSystem.ReadDir(directory)
	if readError != nil {
		locator.logger.Warn(directoryUnreadableMessageConstant, zap.String(logFieldDirectoryConstant, directory), zap.Error(readError))
		return nil
	}

	var subdirectories []string
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directory, directoryEntry.Name())
		entryInfo, statError := locator.fileSystem.Stat(entryPath)
		if statError != nil {
			locator.logger.Warn(entryUnreadableMessageConstant, zap.String(logFieldPathConstant, entryPath), zap.Error(statError))
			continue
		}
		if entryInfo.IsDir() {
			subdirectories = append(subdirectories, entryPath)
		}
	}
	return subdirectories
}

// matches reports whether every marker exists in directory as a regular file.
func (locator *RootLocator) matches(directory string) bool {
	locator.logger.Debug(candidateCheckedMessageConstant, zap.String(logFieldDirectoryConstant, directory))

	var missingMarkers []string
	for _, markerFile := range locator.markerFiles {
		markerInfo, statError := locator.fileSystem.Stat(filepath.Join(directory, markerFile))
		if statError == nil && markerInfo.Mode().IsRegular() {
			locator.logger.Debug(markerFoundMessageConstant, zap.String(logFieldDirectoryConstant, directory), zap.String(logFieldMarkerConstant, markerFile))
			continue
		}
		missingMarkers = append(missingMarkers, markerFile)
	}

	if len(missingMarkers) == 0 {
		return true
	}

	if len(missingMarkers) < len(locator.markerFiles) {
		locator.logger.Info(
			markersMissingMessageConstant,
			zap.String(logFieldDirectoryConstant, directory),
			zap.Strings(logFieldMissingMarkersConstant, missingMarkers),
		)
	}
	return false
}
