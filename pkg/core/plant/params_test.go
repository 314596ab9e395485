package plant

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/plantforge/plantforge/pkg/errors"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input string
		want  Style
		ok    bool
	}{
		{"compact", StyleCompact, true},
		{"industrial", StyleIndustrial, true},
		{"INDUSTRIAL", StyleIndustrial, true},
		{"  Compact ", StyleCompact, true},
		{"", "", false},
		{"sprawling", "sprawling", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStyle(tt.input)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ParseStyle(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClampTanks(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  int
	}{
		{"in range", 4, 4},
		{"min", 1, 1},
		{"max", 20, 20},
		{"zero", 0, 1},
		{"negative", -5, 1},
		{"above max", 25, 20},
		{"fraction rounds up", 3.2, 4},
		{"small fraction", 0.3, 1},
		{"nan", math.NaN(), 1},
		{"+inf", math.Inf(1), 1},
		{"-inf", math.Inf(-1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampTanks(tt.input); got != tt.want {
				t.Errorf("ClampTanks(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("passes numbers through", func(t *testing.T) {
		p, err := Normalize(RawParams{FlowRate: -3, NumberOfTanks: 25, PipeDiameter: 1e9, LayoutType: "industrial"}, DefaultToCompact)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if p.FlowRate != -3 || p.PipeDiameter != 1e9 {
			t.Errorf("Normalize() changed flow/diameter: %+v", p)
		}
		if p.NumberOfTanks != 20 || p.Style != StyleIndustrial {
			t.Errorf("Normalize() = %+v, want 20 industrial tanks", p)
		}
	})

	t.Run("empty style defaults", func(t *testing.T) {
		for _, policy := range []StylePolicy{DefaultToCompact, RejectUnknown} {
			p, err := Normalize(RawParams{NumberOfTanks: 4, LayoutType: "  "}, policy)
			if err != nil {
				t.Fatalf("Normalize(policy=%v) error = %v", policy, err)
			}
			if p.Style != StyleCompact {
				t.Errorf("Normalize(policy=%v).Style = %v, want compact", policy, p.Style)
			}
		}
	})

	t.Run("unknown style defaults", func(t *testing.T) {
		p, err := Normalize(RawParams{NumberOfTanks: 4, LayoutType: "sprawling"}, DefaultToCompact)
		if err != nil {
			t.Fatalf("Normalize() error = %v", err)
		}
		if p.Style != StyleCompact {
			t.Errorf("Style = %v, want compact", p.Style)
		}
	})

	t.Run("unknown style rejected", func(t *testing.T) {
		_, err := Normalize(RawParams{NumberOfTanks: 4, LayoutType: "sprawling"}, RejectUnknown)
		if !errors.Is(err, errors.ErrCodeInvalidStyle) {
			t.Errorf("Normalize() error = %v, want INVALID_STYLE", err)
		}
		if !stderrors.Is(err, ErrInvalidStyle) {
			t.Errorf("Normalize() error = %v, want ErrInvalidStyle cause", err)
		}
	})
}

func TestParseStylePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    StylePolicy
		wantErr bool
	}{
		{"", DefaultToCompact, false},
		{"default", DefaultToCompact, false},
		{"Reject", RejectUnknown, false},
		{"strict", DefaultToCompact, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStylePolicy(tt.input)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseStylePolicy(%q) = %v, %v; want %v, wantErr %v", tt.input, got, err, tt.want, tt.wantErr)
			}
		})
	}
}

func TestParamsRaw(t *testing.T) {
	p := Params{FlowRate: 120, NumberOfTanks: 6, PipeDiameter: 40, Style: StyleIndustrial}
	back, err := Normalize(p.Raw(), RejectUnknown)
	if err != nil {
		t.Fatalf("Normalize(Raw()) error = %v", err)
	}
	if back != p {
		t.Errorf("Normalize(Raw()) = %+v, want %+v", back, p)
	}
}
