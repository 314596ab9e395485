// Package pipeline provides the layout → render pipeline for PlantForge.
//
// This package implements the complete parameters → scene → artifacts flow
// used by the CLI, the HTTP API and the live WebSocket stream. By
// centralizing this logic, every entry point normalizes, lays out, renders
// and caches the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Normalize raw parameters and compute the plant layout, then
//     export it as a [scene.Scene]. Layouts are cheap and never cached.
//  2. Render: Generate outputs (plan SVG, Graphviz schematic, DOT, JSON,
//     MessagePack, PNG, PDF). Artifacts are cached by scene content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Params:  plant.RawParams{FlowRate: 100, NumberOfTanks: 4, PipeDiameter: 50},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [scene.Scene]: github.com/plantforge/plantforge/pkg/scene
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plantforge/plantforge/pkg/cache"
	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
	"github.com/plantforge/plantforge/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and WebSocket
// =============================================================================

const (
	// DefaultScale is the plan view resolution in pixels per world unit.
	DefaultScale = 24.0

	// DefaultPNGZoom is the rsvg-convert zoom used for PNG output.
	DefaultPNGZoom = 2.0
)

// Format constants for output formats.
const (
	FormatJSON      = "json"
	FormatMsgpack   = "msgpack"
	FormatSVG       = "svg"
	FormatDOT       = "dot"
	FormatSchematic = "schematic"
	FormatPNG       = "png"
	FormatPDF       = "pdf"
)

// Formats lists every supported output format in display order.
var Formats = []string{FormatJSON, FormatMsgpack, FormatSVG, FormatDOT, FormatSchematic, FormatPNG, FormatPDF}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:      true,
	FormatMsgpack:   true,
	FormatSVG:       true,
	FormatDOT:       true,
	FormatSchematic: true,
	FormatPNG:       true,
	FormatPDF:       true,
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	switch format {
	case FormatSchematic:
		return "schematic.svg"
	case FormatMsgpack:
		return "msgpack"
	}
	return format
}

// ContentType returns the MIME type served for a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatMsgpack:
		return "application/msgpack"
	case FormatSVG, FormatSchematic:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Params      plant.RawParams `json:"params"`
	StylePolicy string          `json:"style_policy,omitempty"` // "default" or "reject"
	Tuning      *plant.Tuning   `json:"tuning,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Schematic node labels include dimensions

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	policy plant.StylePolicy
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed core layout.
	Layout plant.Layout

	// Scene is the serialized layout.
	Scene scene.Scene

	// SceneHash is the content hash of the scene's JSON encoding.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TankCount  int
	PipeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout parses the style policy and sets layout defaults.
func (o *Options) ValidateForLayout() error {
	policy, err := plant.ParseStylePolicy(o.StylePolicy)
	if err != nil {
		return err
	}
	o.policy = policy
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the core options implied by o.
func (o *Options) LayoutOptions() []plant.Option {
	opts := []plant.Option{plant.WithStylePolicy(o.policy)}
	if o.Tuning != nil {
		opts = append(opts, plant.WithTuning(plant.DefaultTuning().Merge(*o.Tuning)))
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Only options that affect the given format are included so unrelated
// flags do not fragment the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Scale = o.Scale
		k.Labels = o.Labels
	case FormatDOT, FormatSchematic:
		k.Detailed = o.Detailed
	}
	return k
}
