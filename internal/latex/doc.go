// Package latex converts problem statement HTML into LaTeX markup.
//
// # Architecture
//
// The converter walks the parsed HTML tree (golang.org/x/net/html) and
// emits LaTeX directly: structural elements (paragraphs, lists, tables,
// blockquotes) become their LaTeX counterparts, inline formatting and the
// site's CSS classes map through fixed style tables, images become
// \includegraphics and anchors become \href references that the assembler
// resolves later.
//
// Design decision: We convert per text node and element rather than going
// through an intermediate document model because the site's markup is a
// small, stable dialect: a fixed set of classes and inline styles. A full
// AST stage would add a layer without adding capability.
//
// Math segments never pass through this package; the extract package
// shields them with markers before conversion and restores them
// afterwards, so the converter can escape text unconditionally.
package latex
