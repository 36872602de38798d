// Package hwpx implements a mutable object model over the HWPX container
// format (a ZIP package of Hancom HWPML XML parts). It exposes documents as
// trees of sections, paragraphs, runs and tables backed by a live XML node
// tree, so structural edits (node splicing, span rewrites) can be performed
// in place and written back without disturbing untouched package parts.
//
// Paragraph and table indices used throughout the API are positional and
// unstable: they are resolved against the current flattened view at call
// time and shift after any insert or delete. Callers must not cache them
// across operations.
package hwpx
