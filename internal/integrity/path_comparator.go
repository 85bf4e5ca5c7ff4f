package integrity

import (
	"path/filepath"
	"sort"
	"strings"
)

// ComparePaths orders paths by directory component and then by base name.
func ComparePaths(firstPath string, secondPath string) int {
	if directoryComparison := strings.Compare(filepath.Dir(firstPath), filepath.Dir(secondPath)); directoryComparison != 0 {
		return directoryComparison
	}
	return strings.Compare(filepath.Base(firstPath), filepath.Base(secondPath))
}

// SortPaths returns a sorted copy of paths.
func SortPaths(paths []string) []string {
	sortedPaths := append([]string{}, paths...)
	sort.SliceStable(sortedPaths, func(firstIndex int, secondIndex int) bool {
		return ComparePaths(sortedPaths[firstIndex], sortedPaths[secondIndex]) < 0
	})
	return sortedPaths
}
