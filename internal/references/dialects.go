package references

import (
	"regexp"
	"strings"
)

const (
	setOpenerConstant            = "set(SRC"
	targetSourcesOpenerConstant  = "target_sources("
	setKeywordConstant           = "set"
	targetSourcesKeywordConstant = "target_sources"
	blockCloserConstant          = ")"
	commentMarkerConstant        = "#"
	variableMarkerConstant       = "$"
	pythonModuleSeparator        = "."
	pythonRelativeModuleConstant = ""
	tokenQuoteCharacters         = "\"'"
)

var (
	includeDirectivePattern = regexp.MustCompile(`#\s*include\s*"([^"<>]+)"`)
	pythonImportPattern     = regexp.MustCompile(`^from\s+([A-Za-z0-9_.]+)\s+import\b`)
	blockDelimiterReplacer  = strings.NewReplacer("(", " ", ")", " ")
	sourceListOpeners       = []string{setOpenerConstant, targetSourcesOpenerConstant}
	structuralKeywords      = map[string]struct{}{
		setKeywordConstant:           {},
		targetSourcesKeywordConstant: {},
		"SRC":                        {},
		"SRCS":                       {},
		"PRIVATE":                    {},
		"PUBLIC":                     {},
		"INTERFACE":                  {},
	}
	namingKeywords = map[string]struct{}{
		setKeywordConstant:           {},
		targetSourcesKeywordConstant: {},
	}
)

// includeReference extracts the trailing path component of a quoted include directive.
func includeReference(line string) (string, bool) {
	submatches := includeDirectivePattern.FindStringSubmatch(line)
	if len(submatches) < 2 {
		return "", false
	}
	return trailingComponent(submatches[1])
}

// pythonImportReference maps "from package.module import name" to "module.py".
func pythonImportReference(line string) (string, bool) {
	submatches := pythonImportPattern.FindStringSubmatch(line)
	if len(submatches) < 2 {
		return "", false
	}
	moduleSegments := strings.Split(submatches[1], pythonModuleSeparator)
	moduleName := moduleSegments[len(moduleSegments)-1]
	if moduleName == pythonRelativeModuleConstant {
		return "", false
	}
	return moduleName + pythonSourceSuffixConstant, true
}

// sourceListOpenerIndex returns the offset of the first source-list opener in line.
func sourceListOpenerIndex(line string) (int, bool) {
	for _, opener := range sourceListOpeners {
		if openerIndex := strings.Index(line, opener); openerIndex >= 0 {
			return openerIndex, true
		}
	}
	return 0, false
}

// stripComment removes a trailing CMake comment.
func stripComment(line string) string {
	if commentIndex := strings.Index(line, commentMarkerConstant); commentIndex >= 0 {
		return strings.TrimSpace(line[:commentIndex])
	}
	return line
}

// blockReferences tokenizes an accumulated source-list block into referenced basenames.
// The token following "set" or "target_sources" names a variable or target and is skipped.
func blockReferences(blockText string) []string {
	var references []string
	skipNextToken := false
	for _, token := range strings.Fields(blockDelimiterReplacer.Replace(blockText)) {
		if skipNextToken {
			skipNextToken = false
			continue
		}
		if _, isNaming := namingKeywords[token]; isNaming {
			skipNextToken = true
			continue
		}
		if _, isStructural := structuralKeywords[token]; isStructural {
			continue
		}
		reference, valid := trailingComponent(strings.Trim(token, tokenQuoteCharacters))
		if !valid || strings.HasPrefix(reference, variableMarkerConstant) {
			continue
		}
		references = append(references, reference)
	}
	return references
}

// trailingComponent returns the last path component using either separator.
func trailingComponent(referencePath string) (string, bool) {
	normalizedPath := strings.TrimRight(strings.ReplaceAll(strings.TrimSpace(referencePath), "\\", "/"), "/")
	if len(normalizedPath) == 0 {
		return "", false
	}
	if separatorIndex := strings.LastIndex(normalizedPath, "/"); separatorIndex >= 0 {
		normalizedPath = normalizedPath[separatorIndex+1:]
	}
	if len(normalizedPath) == 0 || normalizedPath == "." || normalizedPath == ".." {
		return "", false
	}
	return normalizedPath, true
}
