// Package discovery locates the project root by probing candidate directories
// for a complete set of marker files.
//
// Candidates are visited in a fixed order: the starting directory, its
// ancestors innermost first, then its descendants breadth-first. The first
// candidate holding every marker wins.
package discovery
