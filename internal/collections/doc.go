// Package collections provides the ordered string set and the multi-valued
// string index shared by the catalog, reference, and integrity packages.
package collections
