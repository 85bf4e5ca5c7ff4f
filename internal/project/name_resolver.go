// Package project resolves display metadata for an audited project.
package project

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	// FallbackName is reported when the root build descriptor is absent or declares no project.
	FallbackName = "Unknown"

	buildDescriptorNameConstant      = "CMakeLists.txt"
	nameQuoteCharactersConstant      = "\"'"
	descriptorUnreadableMessage      = "could not open project descriptor"
	descriptorWithoutProjectMessage  = "could not parse project name"
	logFieldPathConstant             = "path"
	maximumDescriptorLineBytes       = 1024 * 1024
	initialDescriptorLineBufferBytes = 64 * 1024
)

var projectDeclarationPattern = regexp.MustCompile(`(?i)\bproject\s*\(\s*([^\s()]+)`)

// FileOpener opens files for reading.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// NameResolver extracts the project name from the root CMakeLists.txt.
type NameResolver struct {
	fileOpener FileOpener
	logger     *zap.Logger
}

// NewNameResolver constructs a NameResolver.
func NewNameResolver(fileOpener FileOpener, logger *zap.Logger) *NameResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameResolver{fileOpener: fileOpener, logger: logger}
}

// Resolve returns the first argument of the first project() declaration, or FallbackName.
func (resolver *NameResolver) Resolve(rootDirectory string) string {
	descriptorPath := filepath.Join(rootDirectory, buildDescriptorNameConstant)
	descriptor, openError := resolver.fileOpener.Open(descriptorPath)
	if openError != nil {
		resolver.logger.Warn(descriptorUnreadableMessage, zap.String(logFieldPathConstant, descriptorPath), zap.Error(openError))
		return FallbackName
	}
	defer descriptor.Close()

	scanner := bufio.NewScanner(descriptor)
	scanner.Buffer(make([]byte, 0, initialDescriptorLineBufferBytes), maximumDescriptorLineBytes)
	for scanner.Scan() {
		match := projectDeclarationPattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		if projectName := strings.Trim(match[1], nameQuoteCharactersConstant); len(projectName) > 0 {
			return projectName
		}
	}

	resolver.logger.Warn(descriptorWithoutProjectMessage, zap.String(logFieldPathConstant, descriptorPath))
	return FallbackName
}
