// Package main provides the entry point for the euler-offline CLI.
//
// euler-offline downloads Project Euler problem statements and compiles
// them into a single offline LaTeX document, optionally typeset to PDF.
//
// Usage:
//
//	euler-offline fetch
//	euler-offline render --pdf --spaced
//
// See --help for all available options.
package main

// main is the entry point for euler-offline.
func main() {
	Execute()
}
