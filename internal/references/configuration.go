package references

const (
	// DefaultMaxBlockBytes bounds the accumulated text of one source-list block.
	DefaultMaxBlockBytes = 2048 * 100

	maxLineBytesConstant       = 1024 * 1024
	initialLineBufferConstant  = 64 * 1024
	cmakeListsFileNameConstant = "CMakeLists.txt"
	cmakeModuleSuffixConstant  = ".cmake"
	pythonSourceSuffixConstant = ".py"
)

// Configuration controls which dialects the extractor applies.
type Configuration struct {
	BuildDescriptors []string
	PythonImports    bool
	MaxBlockBytes    int
}

// DefaultConfiguration returns the dialect settings matching CMake based projects.
func DefaultConfiguration() Configuration {
	return Configuration{
		BuildDescriptors: []string{cmakeListsFileNameConstant, cmakeModuleSuffixConstant},
		PythonImports:    false,
		MaxBlockBytes:    DefaultMaxBlockBytes,
	}
}

func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	if sanitized.MaxBlockBytes <= 0 {
		sanitized.MaxBlockBytes = DefaultMaxBlockBytes
	}
	if len(sanitized.BuildDescriptors) == 0 {
		sanitized.BuildDescriptors = DefaultConfiguration().BuildDescriptors
	}
	return sanitized
}
