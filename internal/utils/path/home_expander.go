// Package pathutils normalizes user-supplied directory arguments.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts user home shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading "~" or "~/" to the user's home directory. Other paths, including "~user", are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	var relativePath string
	switch {
	case candidatePath == tildeSymbolConstant:
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		relativePath = strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant)
	case strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix):
		relativePath = strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix)
	default:
		return candidatePath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(homeDirectory, relativePath)
}

// ResolveDirectory expands candidatePath and anchors relative results at baseDirectory.
// An empty candidate resolves to baseDirectory.
func (expander *HomeExpander) ResolveDirectory(candidatePath string, baseDirectory string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return filepath.Clean(baseDirectory)
	}
	expandedPath := expander.Expand(trimmedCandidate)
	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath)
	}
	return filepath.Join(baseDirectory, expandedPath)
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
