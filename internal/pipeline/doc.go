// Package pipeline turns Markdown source into the closed node tree consumed
// by the renderer.
//
// Stages, in order:
//   - Markdown preprocessing (line normalization, blank-line compression)
//   - Front matter extraction
//   - Tokenizing via goldmark, extended with block/inline equations,
//     explicit escape sequences and single-tilde spans
//   - Adapting the goldmark AST to mdast nodes
//
// Rendering into blocks is handled by internal/render. Keeping the goldmark
// types inside this package lets the renderer dispatch over mdast.Kind only.
package pipeline
