package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/design"
)

func press(t *testing.T, m EditorModel, keys ...tea.KeyMsg) EditorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(EditorModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func newTestEditor() EditorModel {
	return NewEditorModel("Plant", plant.RawParams{FlowRate: 100, NumberOfTanks: 4, PipeDiameter: 50})
}

func TestEditorInitialLayout(t *testing.T) {
	m := newTestEditor()
	if m.Err != nil {
		t.Fatalf("Err = %v", m.Err)
	}
	if len(m.Layout.Tanks) != 4 || m.Layout.Params.Style != plant.StyleCompact {
		t.Errorf("layout = %d tanks %s, want 4 compact", len(m.Layout.Tanks), m.Layout.Params.Style)
	}
}

func TestEditorAdjustRecomputes(t *testing.T) {
	m := press(t, newTestEditor(), keyDown, keyRight, keyRight)
	if m.Cursor != fieldTanks {
		t.Fatalf("Cursor = %d, want tanks field", m.Cursor)
	}
	if len(m.Layout.Tanks) != 6 {
		t.Errorf("tanks = %d, want 6 after two increments", len(m.Layout.Tanks))
	}

	m = press(t, m, keyUp, keyLeft)
	if m.Params.FlowRate != 90 {
		t.Errorf("FlowRate = %v, want 90", m.Params.FlowRate)
	}
}

func TestEditorTankBounds(t *testing.T) {
	m := newTestEditor()
	m.Cursor = fieldTanks
	for range 30 {
		m = press(t, m, keyRight)
	}
	if got := len(m.Layout.Tanks); got != plant.MaxTanks {
		t.Errorf("tanks = %d, want %d", got, plant.MaxTanks)
	}
	for range 30 {
		m = press(t, m, keyLeft)
	}
	if got := len(m.Layout.Tanks); got != plant.MinTanks {
		t.Errorf("tanks = %d, want %d", got, plant.MinTanks)
	}
}

func TestEditorFloorsContinuousFields(t *testing.T) {
	m := newTestEditor()
	m.Cursor = fieldPipeDiameter
	for range 20 {
		m = press(t, m, keyLeft)
	}
	if m.Params.PipeDiameter != design.MinPipeDiameter {
		t.Errorf("PipeDiameter = %v, want %v", m.Params.PipeDiameter, design.MinPipeDiameter)
	}
}

func TestEditorKeepsSmallSavedValues(t *testing.T) {
	m := newTestEditor()
	m.Params.FlowRate = 0.5
	m = press(t, m, keyLeft)
	if m.Params.FlowRate != design.MinFlowRate {
		t.Errorf("FlowRate = %v, want %v", m.Params.FlowRate, design.MinFlowRate)
	}
	m = press(t, m, keyRight)
	if want := design.MinFlowRate + flowStep; m.Params.FlowRate != want {
		t.Errorf("FlowRate = %v, want %v", m.Params.FlowRate, want)
	}
}

func TestEditorToggleStyle(t *testing.T) {
	m := press(t, newTestEditor(), keyTab)
	if m.Layout.Params.Style != plant.StyleIndustrial {
		t.Errorf("style = %s, want industrial", m.Layout.Params.Style)
	}
	if m.Layout.Spacing != 3.2 {
		t.Errorf("Spacing = %v, want 3.2", m.Layout.Spacing)
	}
	m = press(t, m, keyTab)
	if m.Layout.Params.Style != plant.StyleCompact {
		t.Errorf("style = %s, want compact", m.Layout.Params.Style)
	}
}

func TestEditorToggleFromUnknownStyle(t *testing.T) {
	m := newTestEditor()
	m.Params.LayoutType = "radial"
	m.recompute()
	m.Cursor = fieldStyle
	m = press(t, m, keyRight)
	if m.Params.LayoutType != string(plant.StyleIndustrial) {
		t.Errorf("LayoutType = %q, want industrial", m.Params.LayoutType)
	}
	if m.Layout.Params.Style != plant.StyleIndustrial {
		t.Errorf("style = %s, want industrial", m.Layout.Params.Style)
	}
}

func TestEditorSaveAndQuit(t *testing.T) {
	next, cmd := newTestEditor().Update(keyEnter)
	if !next.(EditorModel).Saved || cmd == nil {
		t.Error("enter should save and quit")
	}

	next, cmd = newTestEditor().Update(keyQuit)
	if next.(EditorModel).Saved || cmd == nil {
		t.Error("q should quit without saving")
	}
}

func TestEditorView(t *testing.T) {
	view := newTestEditor().View()
	for _, want := range []string{"Plant", "Flow rate", "Tanks", "2×3 grid"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestEditorInput(t *testing.T) {
	m := press(t, newTestEditor(), keyTab)
	in := editorInput(m)
	if *in.Name != "Plant" || *in.LayoutType != "industrial" || *in.NumberOfTanks != 4 {
		t.Errorf("editorInput() = name %q style %q tanks %v", *in.Name, *in.LayoutType, *in.NumberOfTanks)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestPlanMap(t *testing.T) {
	l, err := plant.Compute(plant.RawParams{NumberOfTanks: 5})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(planMap(l), "\n")
	if len(lines) != l.Grid.Rows {
		t.Errorf("planMap rows = %d, want %d", len(lines), l.Grid.Rows)
	}
}
