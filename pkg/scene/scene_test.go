package scene

import (
	stderrors "errors"
	"io/fs"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
)

func reference() Scene {
	return Export(plant.Build(plant.Params{FlowRate: 100, NumberOfTanks: 4, PipeDiameter: 50, Style: plant.StyleCompact}))
}

func TestExport(t *testing.T) {
	s := reference()

	if s.Params.LayoutType != "compact" || s.Params.NumberOfTanks != 4 {
		t.Errorf("Params = %+v", s.Params)
	}
	if s.Grid != (Grid{Rows: 2, Cols: 3}) {
		t.Errorf("Grid = %+v, want 2x3", s.Grid)
	}
	if len(s.Tanks) != 4 || len(s.Pipes) != 3 {
		t.Fatalf("got %d tanks, %d pipes", len(s.Tanks), len(s.Pipes))
	}
	for i, tank := range s.Tanks {
		if tank.Index != i || tank.Color != ColorTankCompact {
			t.Errorf("tank %d = %+v", i, tank)
		}
	}
	if s.Tanks[3].Position[0] != -2 || s.Tanks[3].Position[2] != 1 {
		t.Errorf("tank 3 position = %v, want x=-2 z=1", s.Tanks[3].Position)
	}
	for i, p := range s.Pipes {
		if p.From != i || p.To != i+1 || p.Start != s.Tanks[i].Position || p.End != s.Tanks[i+1].Position {
			t.Errorf("pipe %d = %+v does not chain tanks", i, p)
		}
		if p.Color != ColorPipe {
			t.Errorf("pipe %d color = %s", i, p.Color)
		}
	}
	if s.Platform.HalfSize != MinPlatformHalf || s.Platform.Size() != 24 {
		t.Errorf("Platform = %+v, want half size %v", s.Platform, MinPlatformHalf)
	}
	if s.Stats.TankCount != 4 || s.Stats.PipeCount != 3 {
		t.Errorf("Stats = %+v", s.Stats)
	}
	if want := 4 + math.Sqrt(20); math.Abs(s.Stats.PipeLength-want) > 1e-9 {
		t.Errorf("PipeLength = %v, want %v", s.Stats.PipeLength, want)
	}
}

func TestExportIndustrialColor(t *testing.T) {
	s := Export(plant.Build(plant.Params{FlowRate: 50, NumberOfTanks: 2, PipeDiameter: 20, Style: plant.StyleIndustrial}))
	if s.Tanks[0].Color != ColorTankIndustrial {
		t.Errorf("Color = %s, want %s", s.Tanks[0].Color, ColorTankIndustrial)
	}
}

func TestExportPlatformGrows(t *testing.T) {
	tun := plant.DefaultTuning()
	tun.IndustrialSpacing = 10
	l := plant.Build(plant.Params{FlowRate: 100, NumberOfTanks: 20, PipeDiameter: 20, Style: plant.StyleIndustrial}, plant.WithTuning(tun))
	s := Export(l)

	halfX, halfZ := l.Footprint()
	if s.Platform.HalfSize < halfX+PlatformMargin || s.Platform.HalfSize < halfZ+PlatformMargin {
		t.Errorf("Platform half size %v does not cover footprint (%v, %v)", s.Platform.HalfSize, halfX, halfZ)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := reference()
	data, err := MarshalScene(s)
	if err != nil {
		t.Fatalf("MarshalScene() error = %v", err)
	}
	got, err := UnmarshalScene(data)
	if err != nil {
		t.Fatalf("UnmarshalScene() error = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	s := reference()
	data, err := MarshalMsgpack(s)
	if err != nil {
		t.Fatalf("MarshalMsgpack() error = %v", err)
	}
	got, err := UnmarshalMsgpack(data)
	if err != nil {
		t.Fatalf("UnmarshalMsgpack() error = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalSceneInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"tanks": [`},
		{"no tanks", `{"tanks": [], "pipes": []}`},
		{"pipe count", `{"tanks": [{"index": 0}, {"index": 1}], "pipes": []}`},
		{"pipe chain", `{"tanks": [{"index": 0}, {"index": 1}], "pipes": [{"from": 1, "to": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalScene([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("UnmarshalScene() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.json")
	s := reference()
	if err := WriteSceneFile(s, path); err != nil {
		t.Fatalf("WriteSceneFile() error = %v", err)
	}
	got, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile() error = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadSceneFile(filepath.Join(t.TempDir(), "missing.json")); !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadSceneFile(missing) error = %v, want not-exist", err)
	}
}
