// Package element provides the base state shared by markup elements that
// render themselves from an attribute store: indentation, line endings and
// an optional leading comment.
//
// Concrete elements embed Common and implement Renderer:
//
//	type Table struct {
//	    *element.Common
//	    rows [][]string
//	}
//
//	func (t *Table) ToHTML() string { ... }
//
// Tag is a ready-made element for a single tag with optional text content.
package element
