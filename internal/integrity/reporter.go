package integrity

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Report output formats.
const (
	ReportFormatText = "text"
	ReportFormatYAML = "yaml"
)

// File structure renderings for the text report.
const (
	FileStructureList = "list"
	FileStructureTree = "tree"
)

const (
	unsupportedReportFormatTemplateConstant = "%w: %q"
	unsupportedFileStructureTemplate        = "%w: %q"
)

var (
	// ErrUnsupportedReportFormat indicates a report format other than text or yaml.
	ErrUnsupportedReportFormat = errors.New("unsupported report format")
	// ErrUnsupportedFileStructure indicates a file structure rendering other than list or tree.
	ErrUnsupportedFileStructure = errors.New("unsupported file structure")
)

// Summary describes the audited project.
type Summary struct {
	ProjectName         string   `yaml:"project_name"`
	RootDirectory       string   `yaml:"root_directory"`
	KeySubfolders       []string `yaml:"key_subfolders"`
	ExcludedDirectories []string `yaml:"excluded_directories"`
}

// Report combines the project summary with the analysis findings.
type Report struct {
	Summary  Summary  `yaml:"summary"`
	Findings Findings `yaml:",inline"`
}

// Reporter renders a Report.
type Reporter interface {
	Write(writer io.Writer, report Report) error
}

// NewReporter selects a Reporter for the requested format and file structure rendering.
func NewReporter(reportFormat string, fileStructure string) (Reporter, error) {
	normalizedFileStructure := strings.ToLower(strings.TrimSpace(fileStructure))
	switch normalizedFileStructure {
	case "":
		normalizedFileStructure = FileStructureList
	case FileStructureList, FileStructureTree:
	default:
		return nil, fmt.Errorf(unsupportedFileStructureTemplate, ErrUnsupportedFileStructure, fileStructure)
	}

	switch strings.ToLower(strings.TrimSpace(reportFormat)) {
	case "", ReportFormatText:
		return TextReporter{FileStructure: normalizedFileStructure}, nil
	case ReportFormatYAML:
		return YAMLReporter{}, nil
	default:
		return nil, fmt.Errorf(unsupportedReportFormatTemplateConstant, ErrUnsupportedReportFormat, reportFormat)
	}
}
