// Package render converts mdast trees into notion blocks.
//
// A Renderer owns a dispatch table with one handler per mdast.Kind. Block
// handlers assemble blocks from their children's results; span handlers set
// one annotation on the runs produced below them. Constructs the target
// format cannot represent are approximated and reported as Degradations.
//
// Rendering is a pure tree transformation: no I/O, no shared state across
// calls apart from the IDSource used for table column identifiers.
package render
