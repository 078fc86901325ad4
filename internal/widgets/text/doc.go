// Package text implements the text transformation tools: case conversion,
// line cleanup, counting, slugs, diffs, markup rendering and encodings.
//
// The transforms are exported as plain functions so they can be tested and
// reused without going through the widget input map.
package text
