// Package render turns an assembled LaTeX document into files on disk and
// optionally a typeset PDF. It materializes the resources the document
// references (images, animation frames, embedded data files) into the
// output tree, then drives the external typesetting engine for as many
// passes as cross references need, up to a fixed bound.
package render
