// Package model defines the core data structures used throughout the
// Project Euler offline compiler.
//
// This package contains the following main types:
//   - Problem: One extracted problem statement ready for typesetting
//   - Attachment: A remote asset referenced by a problem statement
//   - Variant: The document layout mode (compact or spaced)
//   - BuildReport: The accumulated state of one fetch/render invocation
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (fetch, extract, assemble, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for the build summary
// and the fetch index.
package model
