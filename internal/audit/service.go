package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/projanitor/internal/catalog"
	"github.com/temirov/projanitor/internal/discovery"
	"github.com/temirov/projanitor/internal/integrity"
	"github.com/temirov/projanitor/internal/project"
	"github.com/temirov/projanitor/internal/references"
	"github.com/temirov/projanitor/internal/utils"
	pathutils "github.com/temirov/projanitor/internal/utils/path"
)

const (
	workingDirectoryErrorTemplateConstant = "%w: %w"
	catalogerErrorTemplateConstant        = "unable to configure cataloger: %w"
	reporterErrorTemplateConstant         = "unable to configure reporter: %w"
	reportWriteErrorTemplateConstant      = "unable to write report: %w"
	rootFallbackMessageConstant           = "project root could not be found, using start directory"
	markerSetEmptyMessageConstant         = "marker file set is empty, using start directory"
	rootResolvedMessageConstant           = "project root set"
	noFilesOfInterestMessageConstant      = "no files of interest found in project"
	auditCompletedMessageConstant         = "audit completed"
	logFieldStartDirectoryConstant        = "start_directory"
	logFieldRootDirectoryConstant         = "root_directory"
	logFieldProjectNameConstant           = "project_name"
	logFieldFileCountConstant             = "files"
	logFieldOrphanCountConstant           = "orphans"
	logFieldMissingCountConstant          = "missing"
)

// ErrWorkingDirectoryUnavailable indicates that no start directory could be determined.
var ErrWorkingDirectoryUnavailable = errors.New("cannot determine working directory")

// Service coordinates one audit run.
type Service struct {
	fileSystem   FileSystem
	homeExpander *pathutils.HomeExpander
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service writing the report to outputWriter.
func NewService(fileSystem FileSystem, homeExpander *pathutils.HomeExpander, outputWriter io.Writer, logger *zap.Logger) *Service {
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fileSystem:   fileSystem,
		homeExpander: homeExpander,
		outputWriter: utils.NewFlushingWriter(outputWriter),
		logger:       logger,
	}
}

// Run audits the project found from settings.StartDirectory and writes the report.
// Findings never produce an error; only setup failures and report write failures do.
func (service *Service) Run(executionContext context.Context, settings Settings) (integrity.Report, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return integrity.Report{}, contextError
	}

	startDirectory, startDirectoryError := service.resolveStartDirectory(settings.StartDirectory)
	if startDirectoryError != nil {
		return integrity.Report{}, startDirectoryError
	}

	componentLogger := zap.NewNop()
	if settings.Verbose {
		componentLogger = service.logger
	}

	rootDirectory := service.locateRoot(startDirectory, settings, componentLogger)
	projectName := project.NewNameResolver(service.fileSystem, componentLogger).Resolve(rootDirectory)

	buildDirectory := settings.BuildDirectory
	if !filepath.IsAbs(buildDirectory) {
		buildDirectory = filepath.Join(rootDirectory, buildDirectory)
	}
	systemFiles := catalog.NewSystemFileCollector(service.fileSystem, componentLogger).Collect(buildDirectory)

	extractor := references.NewExtractor(service.fileSystem, nil, references.Configuration{
		BuildDescriptors: settings.BuildDescriptors,
		PythonImports:    settings.PythonImports,
	}, componentLogger)

	cataloger, catalogerError := catalog.NewCataloger(service.fileSystem, extractor, catalog.Options{
		Extensions:          settings.Extensions,
		ExcludedDirectories: settings.ExcludedDirectories,
		IgnorePatterns:      settings.IgnorePatterns,
		SystemFiles:         systemFiles,
	}, componentLogger)
	if catalogerError != nil {
		return integrity.Report{}, fmt.Errorf(catalogerErrorTemplateConstant, catalogerError)
	}

	catalogResult := cataloger.Catalog(rootDirectory)
	if len(catalogResult.Files) == 0 {
		service.logger.Warn(noFilesOfInterestMessageConstant, zap.String(logFieldRootDirectoryConstant, rootDirectory))
	}

	findings := integrity.NewAnalyzer(settings.DuplicateExtensions, settings.Extensions).Analyze(catalogResult.Files, catalogResult.Found, extractor.Index())
	report := integrity.Report{
		Summary: integrity.Summary{
			ProjectName:         projectName,
			RootDirectory:       rootDirectory,
			KeySubfolders:       catalogResult.KeySubfolders,
			ExcludedDirectories: catalogResult.ExcludedDirectories,
		},
		Findings: findings,
	}

	reporter, reporterError := integrity.NewReporter(settings.ReportFormat, settings.FileStructure)
	if reporterError != nil {
		return report, fmt.Errorf(reporterErrorTemplateConstant, reporterError)
	}
	if writeError := reporter.Write(service.outputWriter, report); writeError != nil {
		return report, fmt.Errorf(reportWriteErrorTemplateConstant, writeError)
	}

	service.logger.Debug(
		auditCompletedMessageConstant,
		zap.String(logFieldProjectNameConstant, projectName),
		zap.Int(logFieldFileCountConstant, len(findings.Files)),
		zap.Int(logFieldOrphanCountConstant, len(findings.Orphans)),
		zap.Int(logFieldMissingCountConstant, len(findings.Missing)),
	)
	return report, nil
}

func (service *Service) resolveStartDirectory(configuredDirectory string) (string, error) {
	expandedDirectory := service.homeExpander.Expand(configuredDirectory)
	if len(expandedDirectory) > 0 && filepath.IsAbs(expandedDirectory) {
		return filepath.Clean(expandedDirectory), nil
	}

	workingDirectory, workingDirectoryError := service.fileSystem.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplateConstant, ErrWorkingDirectoryUnavailable, workingDirectoryError)
	}
	return service.homeExpander.ResolveDirectory(configuredDirectory, workingDirectory), nil
}

func (service *Service) locateRoot(startDirectory string, settings Settings, componentLogger *zap.Logger) string {
	locator := discovery.NewRootLocator(service.fileSystem, settings.MarkerFiles, settings.MaxSearchDepth, componentLogger)
	rootDirectory, locateError := locator.Locate(startDirectory)
	switch {
	case locateError == nil:
		service.logger.Info(rootResolvedMessageConstant, zap.String(logFieldRootDirectoryConstant, rootDirectory))
		return rootDirectory
	case errors.Is(locateError, discovery.ErrMarkerSetEmpty):
		service.logger.Warn(markerSetEmptyMessageConstant, zap.String(logFieldStartDirectoryConstant, startDirectory))
	default:
		service.logger.Warn(rootFallbackMessageConstant, zap.String(logFieldStartDirectoryConstant, startDirectory))
	}
	return startDirectory
}
