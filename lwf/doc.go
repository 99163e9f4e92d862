// Package lwf models the runtime side of an LWF animation as seen by a
// renderer: the format records (Matrix, ColorTransform, Text, TextProperty),
// the shared string/color/property tables of a loaded animation, and a
// playing instance whose display list is rendered through a RendererFactory.
//
// Parsing the binary format and evaluating timelines happen elsewhere; an
// LWF here is fed per-frame matrices and tints by its caller, for example
// from a MatrixTween.
package lwf
