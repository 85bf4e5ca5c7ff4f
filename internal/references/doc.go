// Package references scans cataloged files line by line and records the
// basenames they mention in a reference index.
//
// Recognition is deliberately syntactic. Quoted include directives are
// honored in every file, source-list blocks only in build descriptors, and
// Python "from X import" statements only when enabled.
package references
