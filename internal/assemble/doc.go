// Package assemble joins extracted problems and appendix pages into a
// single LaTeX document. Assembly is a pure function: the same problems,
// appendices, variant, and options always produce byte-identical output.
// All network and filesystem work happens in earlier stages.
package assemble
