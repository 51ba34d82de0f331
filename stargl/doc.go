// Package stargl is a small software 3D engine for point clouds.
//
// It is built for visualization: a perspective camera, an orbit controller with
// inertia, a scene of point clouds, and a renderer that splats points into a
// caller-provided Target. There is no GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → View → Projection → Frustum reject → Splat (normal or additive) → Target.
//
// The renderer does not allocate in the render hot path.
package stargl
