// Package pkg provides the core libraries for PlantForge water-treatment
// plant layout.
//
// # Overview
//
// PlantForge turns four engineering parameters (flow rate, tank count, pipe
// diameter and layout style) into a deterministic arrangement of
// cylindrical tanks on a grid, joined in series by straight pipes. The pkg
// directory is organized into these areas:
//
//  1. [core/plant] - Domain logic (normalization, sizing, placement, piping)
//  2. [scene] - Serialization of layouts and parameter files
//  3. [render] - Plan SVG, Graphviz schematics and PNG/PDF conversion
//  4. [pipeline] - Orchestration (layout → render) with artifact caching
//  5. [design] - Saved designs, users and administration over a store
//
// # Architecture
//
// The typical data flow through PlantForge:
//
//	RawParams (flags, files, HTTP, WebSocket)
//	         ↓
//	    [core/plant] package (normalize + compute layout)
//	         ↓
//	    [scene] package (serializable scene)
//	         ↓
//	    [render] packages (plan view, schematic)
//	         ↓
//	    SVG/DOT/PNG/PDF/JSON/MessagePack output
//
// # Quick Start
//
//	import (
//	    "github.com/plantforge/plantforge/pkg/core/plant"
//	    "github.com/plantforge/plantforge/pkg/render/plan"
//	    "github.com/plantforge/plantforge/pkg/scene"
//	)
//
//	l, _ := plant.Compute(plant.RawParams{
//	    FlowRate:      150,
//	    NumberOfTanks: 6,
//	    PipeDiameter:  40,
//	    LayoutType:    "industrial",
//	})
//	svg := plan.RenderSVG(scene.Export(l), plan.WithLabels(true))
//
// # Supporting Packages
//
// [cache] - Artifact caches: memory (LRU), file, Redis and a null cache.
//
// [errors] - Coded errors, field validation errors and input validators.
//
// [observability] - Hooks for pipeline, cache, store and HTTP events, with a
// Prometheus implementation.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/core/plant/...         # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [core/plant]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/core/plant
// [scene]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/scene
// [render]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/pipeline
// [design]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/design
// [cache]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/cache
// [errors]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/plantforge/plantforge/pkg/buildinfo
package pkg
