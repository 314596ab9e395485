package schematic

import (
	"context"
	"strings"
	"testing"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/scene"
)

func testScene(n int, style plant.Style) scene.Scene {
	return scene.Export(plant.Build(plant.Params{FlowRate: 100, NumberOfTanks: n, PipeDiameter: 20, Style: style}))
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testScene(3, plant.StyleCompact), Options{})

	for _, want := range []string{
		"digraph plant {",
		"rankdir=LR;",
		`"tank0" [label="T1"];`,
		`"tank2" [label="T3"];`,
		`"tank0" -> "tank1"`,
		`"tank1" -> "tank2"`,
		`label="Ø 0.40"`,
		scene.ColorTankCompact,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"tank2" -> `) {
		t.Error("ToDOT() has an edge leaving the last tank")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testScene(1, plant.StyleIndustrial), Options{Detailed: true})

	if !strings.Contains(dot, `label="T1\nr 0.80\nh 1.53"`) {
		t.Errorf("ToDOT() detailed label missing:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("single tank should have no edges")
	}
	if !strings.Contains(dot, scene.ColorTankIndustrial) {
		t.Error("industrial colour missing")
	}
}

func TestFmtLabel(t *testing.T) {
	tank := scene.Tank{Index: 4, Radius: 1, Height: 2}
	if got := fmtLabel(tank, false); got != "T5" {
		t.Errorf("fmtLabel() = %q, want T5", got)
	}
	if got := fmtLabel(tank, true); got != "T5\nr 1.00\nh 2.00" {
		t.Errorf("fmtLabel(detailed) = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "rewrites header",
			svg:  `<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			svg:  `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.svg))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(testScene(4, plant.StyleCompact), Options{Detailed: true})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
