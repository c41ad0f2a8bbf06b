// Package chroma performs chroma-key background removal on icon images.
//
// Given a target background color, it rewrites the alpha channel of a
// raster in place: pixels within a tolerance of the target become fully
// transparent, pixels inside a smoothness band ramp linearly to opaque,
// and everything else is forced opaque. A corner-sampling heuristic
// estimates the background color of icons drawn on a uniform backdrop.
package chroma
