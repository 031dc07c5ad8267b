// Package filtergraph lowers a project timeline into a directed filter
// graph for the transcoding engine.
//
// The graph is built as an explicit node IR (input pads, filter expression,
// output pad) and rendered to the engine's textual filter_complex syntax as
// a final serialization step, which keeps the crossfade-folding algorithm
// testable independent of text formatting.
package filtergraph
