package catalog

import "strings"

const (
	suffixMarkerConstant   = "."
	wildcardPrefixConstant = "*"
)

// ExtensionMatcher decides whether a file name belongs to the configured extension set.
// Entries beginning with "." (or "*.") match as suffixes; any other entry matches the whole name.
type ExtensionMatcher struct {
	entries    []string
	suffixes   []string
	exactNames []string
}

// NewExtensionMatcher constructs a matcher from extension set entries.
func NewExtensionMatcher(entries []string) ExtensionMatcher {
	var matcher ExtensionMatcher
	for _, entry := range entries {
		normalizedEntry := strings.TrimPrefix(strings.TrimSpace(entry), wildcardPrefixConstant)
		switch {
		case len(normalizedEntry) == 0:
			continue
		case matcher.contains(normalizedEntry):
			continue
		case strings.HasPrefix(normalizedEntry, suffixMarkerConstant):
			matcher.suffixes = append(matcher.suffixes, normalizedEntry)
		default:
			matcher.exactNames = append(matcher.exactNames, normalizedEntry)
		}
		matcher.entries = append(matcher.entries, normalizedEntry)
	}
	return matcher
}

// Matches reports whether fileName is admitted by the extension set.
func (matcher ExtensionMatcher) Matches(fileName string) bool {
	_, matched := matcher.Category(fileName)
	return matched
}

// Category returns the first entry, in configuration order of its kind, that admits fileName.
// Exact names take precedence over suffixes so "CMakeLists.txt" is not counted as a ".txt" file.
func (matcher ExtensionMatcher) Category(fileName string) (string, bool) {
	for _, exactName := range matcher.exactNames {
		if fileName == exactName {
			return exactName, true
		}
	}
	for _, suffix := range matcher.suffixes {
		if strings.HasSuffix(fileName, suffix) {
			return suffix, true
		}
	}
	return "", false
}

// Entries lists the normalized extension set entries in configuration order.
func (matcher ExtensionMatcher) Entries() []string {
	return append([]string{}, matcher.entries...)
}

func (matcher ExtensionMatcher) contains(entry string) bool {
	for _, existingEntry := range matcher.entries {
		if existingEntry == entry {
			return true
		}
	}
	return false
}
