package catalog

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/projanitor/internal/collections"
)

const (
	buildDirectoryMissingMessageConstant    = "build directory not present"
	buildDirectoryUnreadableMessageConstant = "cannot open build directory"
	buildFileAddedMessageConstant           = "added build file"
)

// SystemFileCollector lists the basenames of build byproducts so the cataloger can exclude them.
type SystemFileCollector struct {
	fileSystem FileSystem
	logger     *zap.Logger
}

// NewSystemFileCollector constructs a collector backed by fileSystem.
func NewSystemFileCollector(fileSystem FileSystem, logger *zap.Logger) *SystemFileCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemFileCollector{fileSystem: fileSystem, logger: logger}
}

// Collect recursively gathers the basenames of regular files under buildDirectory.
// A missing or unreadable directory yields whatever was collected so far. Symbolic links are not followed.
func (collector *SystemFileCollector) Collect(buildDirectory string) *collections.OrderedStringSet {
	systemFiles := collections.NewOrderedStringSet()
	collector.collectDirectory(buildDirectory, systemFiles)
	return systemFiles
}

func (collector *SystemFileCollector) collectDirectory(directory string, systemFiles *collections.OrderedStringSet) {
	directoryEntries, readError := collector.fileSystem.ReadDir(directory)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			collector.logger.Debug(buildDirectoryMissingMessageConstant, zap.String(logFieldDirectoryConstant, directory))
			return
		}
		collector.logger.Warn(buildDirectoryUnreadableMessageConstant, zap.String(logFieldDirectoryConstant, directory), zap.Error(readError))
		return
	}

	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directory, directoryEntry.Name())
		switch {
		case directoryEntry.IsDir():
			collector.collectDirectory(entryPath, systemFiles)
		case directoryEntry.Type().IsRegular():
			if systemFiles.AddUnique(directoryEntry.Name()) {
				collector.logger.Debug(buildFileAddedMessageConstant, zap.String(logFieldPathConstant, entryPath))
			}
		}
	}
}
