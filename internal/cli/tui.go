package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/design"
	"github.com/plantforge/plantforge/pkg/scene"
)

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorTankStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	editorPanelStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// editorField is one editable row in the design editor.
type editorField int

const (
	fieldFlowRate editorField = iota
	fieldTanks
	fieldPipeDiameter
	fieldStyle
	fieldCount
)

// Step sizes for the arrow keys; shift multiplies by ten.
const (
	flowStep     = 10.0
	diameterStep = 5.0
)

// =============================================================================
// EditorModel - Live design editor
// =============================================================================

// EditorModel is the bubbletea model for editing design parameters with a
// live plan preview. Every change recomputes the layout.
type EditorModel struct {
	Name   string
	Params plant.RawParams
	Layout plant.Layout
	Err    error
	Cursor editorField
	Saved  bool

	opts []plant.Option
}

// NewEditorModel creates an editor for raw and computes its first layout.
func NewEditorModel(name string, raw plant.RawParams, opts ...plant.Option) EditorModel {
	m := EditorModel{Name: name, Params: raw, opts: opts}
	m.recompute()
	return m
}

func (m *EditorModel) recompute() {
	m.Layout, m.Err = plant.Compute(m.Params, m.opts...)
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter", "s":
		if m.Err != nil {
			return m, nil
		}
		m.Saved = true
		return m, tea.Quit
	case "up", "k":
		m.Cursor = (m.Cursor + fieldCount - 1) % fieldCount
	case "down", "j":
		m.Cursor = (m.Cursor + 1) % fieldCount
	case "right", "l":
		m.adjust(1)
	case "left", "h":
		m.adjust(-1)
	case "shift+right", "L":
		m.adjust(10)
	case "shift+left", "H":
		m.adjust(-10)
	case "tab":
		m.toggleStyle()
	}
	return m, nil
}

// adjust moves the selected field by steps and recomputes the layout.
// Values stay at or above their minimums; tank counts stay within bounds.
func (m *EditorModel) adjust(steps int) {
	d := float64(steps)
	switch m.Cursor {
	case fieldFlowRate:
		m.Params.FlowRate = math.Max(design.MinFlowRate, m.Params.FlowRate+d*flowStep)
	case fieldTanks:
		n := plant.ClampTanks(m.Params.NumberOfTanks) + steps
		m.Params.NumberOfTanks = float64(max(plant.MinTanks, min(plant.MaxTanks, n)))
	case fieldPipeDiameter:
		m.Params.PipeDiameter = math.Max(design.MinPipeDiameter, m.Params.PipeDiameter+d*diameterStep)
	case fieldStyle:
		m.toggleStyle()
		return
	}
	m.recompute()
}

// toggleStyle advances from the style currently drawn, so an empty or
// unrecognized layout type moves off the default on the first press.
func (m *EditorModel) toggleStyle() {
	style := m.Layout.Params.Style
	if m.Err != nil {
		var ok bool
		if style, ok = plant.ParseStyle(m.Params.LayoutType); !ok {
			style = plant.DefaultStyle
		}
	}
	next := plant.Styles[0]
	for i, s := range plant.Styles {
		if s == style {
			next = plant.Styles[(i+1)%len(plant.Styles)]
			break
		}
	}
	m.Params.LayoutType = string(next)
	m.recompute()
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := "Design Editor"
	if m.Name != "" {
		title += ": " + m.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("↑/↓ field  ←/→ adjust  tab style  ⏎ save  q quit"))
	b.WriteString("\n\n")

	rows := []struct {
		label, value string
	}{
		{"Flow rate", fmt.Sprintf("%g", m.Params.FlowRate)},
		{"Tanks", fmt.Sprintf("%d", plant.ClampTanks(m.Params.NumberOfTanks))},
		{"Pipe diameter", fmt.Sprintf("%g", m.Params.PipeDiameter)},
		{"Layout", m.styleName()},
	}
	for i, r := range rows {
		line := fmt.Sprintf("%-14s %s", r.label, r.value)
		if editorField(i) == m.Cursor {
			b.WriteString(editorSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(editorNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(StyleWarning.Render(m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(editorPanelStyle.Render(planMap(m.Layout)))
	b.WriteString("\n")
	st := scene.Export(m.Layout).Stats
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("%d×%d grid  spacing %.1f  pipe %.1f  footprint %.1f × %.1f",
		m.Layout.Grid.Rows, m.Layout.Grid.Cols, m.Layout.Spacing, st.PipeLength, st.FootprintX, st.FootprintZ)))
	b.WriteString("\n")
	return b.String()
}

func (m EditorModel) styleName() string {
	if m.Err == nil {
		return string(m.Layout.Params.Style)
	}
	return m.Params.LayoutType
}

// planMap draws the tanks as a character grid, one cell per grid slot,
// numbered in pipe order.
func planMap(l plant.Layout) string {
	if len(l.Tanks) == 0 || l.Spacing <= 0 {
		return ""
	}
	minX, minZ := math.Inf(1), math.Inf(1)
	for _, t := range l.Tanks {
		minX = math.Min(minX, t.Position.X)
		minZ = math.Min(minZ, t.Position.Z)
	}

	cells := make([][]string, l.Grid.Rows)
	for r := range cells {
		cells[r] = make([]string, l.Grid.Cols)
		for c := range cells[r] {
			cells[r][c] = editorDimStyle.Render(" ·")
		}
	}
	for i, t := range l.Tanks {
		c := int(math.Round((t.Position.X - minX) / l.Spacing))
		r := int(math.Round((t.Position.Z - minZ) / l.Spacing))
		if r >= 0 && r < len(cells) && c >= 0 && c < len(cells[r]) {
			cells[r][c] = editorTankStyle.Render(fmt.Sprintf("%2d", i+1))
		}
	}

	lines := make([]string, len(cells))
	for r, row := range cells {
		lines[r] = strings.Join(row, " ")
	}
	return strings.Join(lines, "\n")
}
