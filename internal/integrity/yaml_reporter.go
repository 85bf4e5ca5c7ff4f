package integrity

import (
	"io"

	"gopkg.in/yaml.v3"
)

const yamlIndentationConstant = 2

// YAMLReporter writes the report as a single YAML document.
type YAMLReporter struct{}

// Write renders report to writer.
func (YAMLReporter) Write(writer io.Writer, report Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
