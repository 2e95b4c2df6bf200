// Package raster is the software triangle rasterizer.
//
// Pipeline (fixed, per frame):
//
//	Transform → Translate to viewport centre → Bounding box → Barycentric fill → Depth test → Shade
//
// The projection is orthographic: vertices are rotated and moved to the centre
// of the viewport, and z is kept only for the depth test. Larger z is nearer.
//
// Each call to [Rasterizer.Render] allocates a fresh [FrameBuffer] and
// [DepthBuffer]; the rasterizer keeps no per-frame state and a single frame is
// drawn on the calling goroutine.
//
// Zero-area triangles need no special case. Their barycentric weights divide by
// zero, come out as NaN or ±Inf, and fail the containment test for every pixel
// under IEEE 754 comparison rules.
package raster
