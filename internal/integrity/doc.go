// Package integrity derives duplicate, orphan and missing files from the catalog and reference indexes
// and renders the resulting audit report.
//
// Analyzer computes Findings; TextReporter and YAMLReporter write a Report built from them.
// All lists are ordered with ComparePaths so repeated runs over an unchanged tree produce identical output.
package integrity
