// Package catalog walks a project root depth-first and admits files of
// interest into an ordered catalog and a basename index, handing each admitted
// file to a reference extractor as it goes.
package catalog
