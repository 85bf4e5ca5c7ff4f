// Package audit runs the source-tree integrity audit.
//
// CommandBuilder wires the audit Cobra command, CommandConfiguration carries its persisted settings
// and Service drives the pipeline: locate the project root, collect build byproducts, catalog files while
// extracting references, analyze the indexes and write the report.
package audit
