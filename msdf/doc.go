// Package msdf rasterizes glyph outlines into multi-channel signed distance
// fields packed into a shared RGB atlas.
//
// MSDF (Multi-channel Signed Distance Field) encodes a shape's distance to
// its outline in three color channels. Edges are assigned to channel sets
// so that the two edges at a sharp corner never share one; the median of
// the three channels then reconstructs the corner exactly when the texture
// is magnified.
//
// # Pipeline Pieces
//
//  1. Build an Outline of line and quadratic contours (Builder or
//     OutlineFromSegments).
//  2. Allocate binds it to a Region of a ShelfAllocator; allocation fails
//     once the atlas is full.
//  3. Lock the Surface once, take one View per shape, and call Shape.Render
//     on each view, concurrently if desired.
//
// # Encoding
//
// Each channel stores 0.5 + d/(2*shade) scaled to a byte, where d is the
// signed distance in pixels (positive inside). 128 is on the edge, 0 is the
// background.
//
//	fn median3(v: vec3<f32>) -> f32 {
//	    return max(min(v.r, v.g), min(max(v.r, v.g), v.b));
//	}
//
// # Usage
//
//	atlas := msdf.NewShelfAllocator(1024, 1024)
//	surface := msdf.NewSurface(1024, 1024)
//
//	shape, ok := msdf.Allocate(outline, atlas, 4.0, msdf.DefaultOptions())
//	if !ok {
//	    // atlas full
//	}
//
//	pass := surface.Lock()
//	shape.Render(pass.View(shape.Region()))
//	pass.Unlock()
package msdf
