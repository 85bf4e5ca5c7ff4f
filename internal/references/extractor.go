package references

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/projanitor/internal/collections"
)

const (
	fileUnreadableMessageConstant    = "could not open file"
	fileScanFailedMessageConstant    = "could not finish reading file"
	fileParsingMessageConstant       = "parsing file"
	includeFoundMessageConstant      = "found include reference"
	importFoundMessageConstant       = "found import reference"
	blockStartedMessageConstant      = "started source-list block"
	blockEndedMessageConstant        = "ended source-list block"
	blockFoundMessageConstant        = "found source-list reference"
	blockOverflowMessageConstant     = "source-list block overflow, block abandoned"
	blockUnterminatedMessageConstant = "source-list block not terminated"
	logFieldFileConstant             = "file"
	logFieldReferenceConstant        = "reference"
	logFieldLimitConstant            = "limit_bytes"
)

// FileOpener opens files for reading.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// Extractor records the basenames referenced by scanned files.
type Extractor struct {
	fileOpener    FileOpener
	index         *collections.MultiMap
	configuration Configuration
	logger        *zap.Logger
}

// NewExtractor constructs an Extractor writing into index. A nil index allocates a fresh one.
func NewExtractor(fileOpener FileOpener, index *collections.MultiMap, configuration Configuration, logger *zap.Logger) *Extractor {
	if index == nil {
		index = collections.NewMultiMap()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		fileOpener:    fileOpener,
		index:         index,
		configuration: configuration.sanitize(),
		logger:        logger,
	}
}

// Index returns the reference index keyed by referenced basename with referencing file paths as values.
func (extractor *Extractor) Index() *collections.MultiMap {
	return extractor.index
}

// Extract scans filePath and records its references. Failures are logged and never propagated.
func (extractor *Extractor) Extract(filePath string) {
	extractor.logger.Debug(fileParsingMessageConstant, zap.String(logFieldFileConstant, filePath))

	fileHandle, openError := extractor.fileOpener.Open(filePath)
	if openError != nil {
		extractor.logger.Warn(fileUnreadableMessageConstant, zap.String(logFieldFileConstant, filePath), zap.Error(openError))
		return
	}
	defer fileHandle.Close()

	fileName := filepath.Base(filePath)
	scanState := fileScan{
		filePath:        filePath,
		buildDescriptor: extractor.isBuildDescriptor(fileName),
		pythonSource:    extractor.configuration.PythonImports && strings.HasSuffix(fileName, pythonSourceSuffixConstant),
		maxBlockBytes:   extractor.configuration.MaxBlockBytes,
	}

	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, initialLineBufferConstant), maxLineBytesConstant)
	for scanner.Scan() {
		extractor.scanLine(&scanState, strings.TrimSpace(scanner.Text()))
	}
	if scanError := scanner.Err(); scanError != nil {
		extractor.logger.Warn(fileScanFailedMessageConstant, zap.String(logFieldFileConstant, filePath), zap.Error(scanError))
	}
	if scanState.block.active {
		extractor.logger.Info(blockUnterminatedMessageConstant, zap.String(logFieldFileConstant, filePath))
	}
}

type fileScan struct {
	filePath        string
	buildDescriptor bool
	pythonSource    bool
	maxBlockBytes   int
	block           sourceListBlock
}

type sourceListBlock struct {
	active bool
	text   strings.Builder
}

func (block *sourceListBlock) reset() {
	block.active = false
	block.text.Reset()
}

// scanLine applies the dialects to one trimmed line. A line inside a source-list block is not tested for includes.
func (extractor *Extractor) scanLine(scanState *fileScan, trimmedLine string) {
	if !scanState.block.active {
		if reference, found := includeReference(trimmedLine); found {
			extractor.record(reference, scanState.filePath, includeFoundMessageConstant)
			return
		}
		if scanState.pythonSource {
			if reference, found := pythonImportReference(trimmedLine); found {
				extractor.record(reference, scanState.filePath, importFoundMessageConstant)
				return
			}
		}
	}

	if scanState.buildDescriptor {
		extractor.scanBuildLine(scanState, trimmedLine)
	}
}

func (extractor *Extractor) scanBuildLine(scanState *fileScan, trimmedLine string) {
	block := &scanState.block
	contentLine := stripComment(trimmedLine)

	if openerIndex, opened := sourceListOpenerIndex(contentLine); opened {
		block.reset()
		openerText := contentLine[openerIndex:]
		if len(openerText) >= scanState.maxBlockBytes {
			extractor.logger.Warn(blockOverflowMessageConstant, zap.String(logFieldFileConstant, scanState.filePath), zap.Int(logFieldLimitConstant, scanState.maxBlockBytes))
			return
		}
		block.active = true
		extractor.logger.Debug(blockStartedMessageConstant, zap.String(logFieldFileConstant, scanState.filePath))
		extractor.appendToBlock(scanState, openerText)
		return
	}

	if !block.active {
		return
	}

	if block.text.Len()+len(contentLine)+1 >= scanState.maxBlockBytes {
		extractor.logger.Warn(blockOverflowMessageConstant, zap.String(logFieldFileConstant, scanState.filePath), zap.Int(logFieldLimitConstant, scanState.maxBlockBytes))
		block.reset()
		return
	}
	extractor.appendToBlock(scanState, contentLine)
}

// appendToBlock buffers the line and closes the block when the line holds the closing delimiter.
func (extractor *Extractor) appendToBlock(scanState *fileScan, contentLine string) {
	block := &scanState.block
	closerIndex := strings.Index(contentLine, blockCloserConstant)
	if closerIndex >= 0 {
		contentLine = contentLine[:closerIndex]
	}
	if block.text.Len() > 0 {
		block.text.WriteByte(' ')
	}
	block.text.WriteString(contentLine)

	if closerIndex < 0 {
		return
	}

	for _, reference := range blockReferences(block.text.String()) {
		extractor.record(reference, scanState.filePath, blockFoundMessageConstant)
	}
	block.reset()
	extractor.logger.Debug(blockEndedMessageConstant, zap.String(logFieldFileConstant, scanState.filePath))
}

func (extractor *Extractor) record(reference string, filePath string, message string) {
	extractor.index.AddUnique(reference, filePath)
	extractor.logger.Debug(message, zap.String(logFieldReferenceConstant, reference), zap.String(logFieldFileConstant, filePath))
}

// isBuildDescriptor matches descriptor entries as suffixes, so "CMakeLists.txt" and ".cmake" both apply.
func (extractor *Extractor) isBuildDescriptor(fileName string) bool {
	for _, descriptor := range extractor.configuration.BuildDescriptors {
		if len(descriptor) > 0 && strings.HasSuffix(fileName, descriptor) {
			return true
		}
	}
	return false
}
