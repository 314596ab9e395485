package plant

import (
	stderrors "errors"
	"math"
	"strings"

	"github.com/plantforge/plantforge/pkg/errors"
)

// Tank count bounds.
const (
	MinTanks = 1
	MaxTanks = 20
)

// ErrInvalidStyle is the cause of the error Normalize returns for an
// unrecognized style under RejectUnknown.
var ErrInvalidStyle = stderrors.New("invalid layout style")

// Style selects how tanks are arranged on the grid.
type Style string

// Supported layout styles. The string values are the wire values used by
// saved designs and API requests.
const (
	StyleCompact    Style = "compact"
	StyleIndustrial Style = "industrial"
)

// DefaultStyle is substituted for missing or (by default) unknown styles.
const DefaultStyle = StyleCompact

// Styles lists every supported style in display order.
var Styles = []Style{StyleCompact, StyleIndustrial}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	return s == StyleCompact || s == StyleIndustrial
}

func (s Style) String() string { return string(s) }

// ParseStyle converts a user-supplied style name. Matching ignores case and
// surrounding whitespace. The boolean is false for unknown names.
func ParseStyle(name string) (Style, bool) {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	return s, s.Valid()
}

// StylePolicy decides what Normalize does with an unrecognized style.
type StylePolicy int

const (
	// DefaultToCompact silently substitutes StyleCompact.
	DefaultToCompact StylePolicy = iota
	// RejectUnknown makes Normalize return an INVALID_STYLE error.
	RejectUnknown
)

// ParseStylePolicy maps the configuration names "default" and "reject".
func ParseStylePolicy(name string) (StylePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "compact":
		return DefaultToCompact, nil
	case "reject":
		return RejectUnknown, nil
	}
	return DefaultToCompact, errors.New(errors.ErrCodeInvalidInput, "unknown style policy %q (must be default or reject)", name)
}

func (p StylePolicy) String() string {
	if p == RejectUnknown {
		return "reject"
	}
	return "default"
}

// RawParams holds design parameters as received from a caller. Numeric
// fields are float64 because that is what JSON decoding produces; they may
// be out of range, fractional or non-finite.
type RawParams struct {
	FlowRate      float64 `json:"flowRate" yaml:"flowRate" toml:"flow_rate"`
	NumberOfTanks float64 `json:"numberOfTanks" yaml:"numberOfTanks" toml:"number_of_tanks"`
	PipeDiameter  float64 `json:"pipeDiameter" yaml:"pipeDiameter" toml:"pipe_diameter"`
	LayoutType    string  `json:"layoutType,omitempty" yaml:"layoutType,omitempty" toml:"layout_type"`
}

// Params are normalized design parameters. NumberOfTanks is always within
// [MinTanks, MaxTanks] and Style is always valid when produced by Normalize.
type Params struct {
	FlowRate      float64
	NumberOfTanks int
	PipeDiameter  float64
	Style         Style
}

// Raw converts p back to its caller-facing form.
func (p Params) Raw() RawParams {
	return RawParams{
		FlowRate:      p.FlowRate,
		NumberOfTanks: float64(p.NumberOfTanks),
		PipeDiameter:  p.PipeDiameter,
		LayoutType:    string(p.Style),
	}
}

// Normalize clamps raw into the valid engineering domain.
//
// The tank count is clamped to [MinTanks, MaxTanks]; non-finite counts become
// MinTanks and fractional counts round up. Flow rate and pipe diameter pass
// through untouched because SizeTank and PipeRadius saturate them. An empty
// style always becomes DefaultStyle; an unknown one does too unless policy
// is RejectUnknown.
func Normalize(raw RawParams, policy StylePolicy) (Params, error) {
	style, ok := ParseStyle(raw.LayoutType)
	if !ok {
		if strings.TrimSpace(raw.LayoutType) != "" && policy == RejectUnknown {
			return Params{}, errors.Wrap(errors.ErrCodeInvalidStyle, ErrInvalidStyle,
				"unknown layout style %q (must be compact or industrial)", raw.LayoutType)
		}
		style = DefaultStyle
	}
	return Params{
		FlowRate:      raw.FlowRate,
		NumberOfTanks: ClampTanks(raw.NumberOfTanks),
		PipeDiameter:  raw.PipeDiameter,
		Style:         style,
	}, nil
}

// ClampTanks coerces an arbitrary number into a valid tank count.
func ClampTanks(n float64) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return MinTanks
	}
	n = math.Ceil(n)
	if n < MinTanks {
		return MinTanks
	}
	if n > MaxTanks {
		return MaxTanks
	}
	return int(n)
}
