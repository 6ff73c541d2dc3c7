// Package extract parses fetched Project Euler pages into problem and
// appendix models. It locates the statement container in a problem page,
// converts its HTML to LaTeX, and discovers the attachments the statement
// references. Math embedded in the statement container is shielded behind
// opaque markers during conversion and restored verbatim afterwards.
package extract
