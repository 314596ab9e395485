// Package plant synthesizes the physical layout of a water-treatment plant
// from four design parameters.
//
// # Overview
//
// A design is described by a flow rate, a tank count, a pipe diameter and a
// layout style. From those the package derives a three-dimensional
// arrangement of identical cylindrical process tanks on a grid, chained
// together by straight pipe segments:
//
//	Params ──► PlanGrid ──► SizeTank ──► Place ──► RoutePipes ──► Layout
//
// Each stage is a pure function and [Build] simply composes them. [Compute]
// additionally runs [Normalize] on caller-supplied [RawParams] first.
//
// # Coordinate System
//
// The layout uses a Y-up frame shared with typical 3D renderers. Tanks stand
// on the ground plane (y = 0), so every tank centroid has y = height/2. The
// grid of tank centers is centered on the origin in the horizontal (x, z)
// plane. Units are whatever world units the consumer renders in; the package
// only guarantees internal consistency.
//
// # Saturation
//
// Numeric edge cases never produce errors. Tank dimensions and pipe radius
// are derived through saturating linear transforms (see [Tuning]) so zero,
// negative, NaN or huge inputs still yield bounded, strictly positive
// geometry. The only error the package returns is an unknown layout style
// under [RejectUnknown].
//
// # Topology
//
// Pipes always form a simple path following placement order: tank i is
// connected to tank i+1 and nothing else. There is no branching, no
// spanning-tree optimization and no collision avoidance.
//
// # Concurrency
//
// All functions are safe for concurrent use. Every call allocates a fresh
// [Layout] that shares no memory with earlier results.
package plant
