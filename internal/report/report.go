// Package report renders a plain-text summary of a synthesized field: the
// scenario, the effective dipoles, the statistics, centre-line profiles and
// the excitation waveform.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"magfield/internal/core"
	"magfield/internal/field"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	northStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	southStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Options controls the plots.
type Options struct {
	// Steps is the number of excitation steps summed into the waveform plot;
	// zero skips it.
	Steps      int
	PlotWidth  int
	PlotHeight int
	ColorRange float64
}

// CenterProfiles returns the centre row and centre column of view.
func CenterProfiles(view core.GridView) (row, col []float64) {
	size := view.Size()
	if size.W == 0 || size.H == 0 {
		return nil, nil
	}
	cx, cy := size.Center()
	row = make([]float64, size.W)
	for x, v := range view.Row(cy) {
		row[x] = float64(v)
	}
	col = make([]float64, size.H)
	for y := range col {
		col[y] = float64(view.At(cx, y))
	}
	return row, col
}

// Waveform advances the excitation path for steps steps and returns the sum
// of the injected values at each step.
func Waveform(sim *field.Simulation, steps int) []float64 {
	out := make([]float64, steps)
	for step := 0; step < steps; step++ {
		for _, e := range sim.AdvanceTimeStep(step) {
			out[step] += e.Value
		}
	}
	return out
}

// Render builds the whole report for sim.
func Render(sim *field.Simulation, opts Options) string {
	if opts.PlotWidth <= 0 {
		opts.PlotWidth = 60
	}
	if opts.PlotHeight <= 0 {
		opts.PlotHeight = 8
	}
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s [%s]", sim.Name(), sim.FieldLabel())))
	b.WriteString("\n")

	size := sim.Size()
	p := sim.Profile()
	st := sim.Stats()
	summary := []string{
		line("grid", fmt.Sprintf("%dx%d", size.W, size.H)),
		line("profile", p.Name),
		line("clamp", fmt.Sprintf("±%g", p.Clamp)),
		line("time step", fmt.Sprintf("%.4g s", sim.TimeStep())),
		line("state", sim.State().String()),
		line("min", fmt.Sprintf("%.4f", st.Min)),
		line("max", fmt.Sprintf("%.4f", st.Max)),
		line("active", fmt.Sprintf("%d / %d", st.Active, st.Cells)),
	}
	if opts.ColorRange > 0 {
		summary = append(summary, line("color range", fmt.Sprintf("%.2f", opts.ColorRange)))
	}
	b.WriteString(boxStyle.Render(strings.Join(summary, "\n")))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Dipoles"))
	b.WriteString("\n")
	for _, d := range sim.Dipoles() {
		style := northStyle
		if d.Polarity() < 0 {
			style = southStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  %-14s (%d,%d) m=(%g,%g) strength %g",
			d.Label, d.X, d.Y, d.MomentX, d.MomentY, d.Strength)))
		b.WriteString("\n")
	}

	row, col := CenterProfiles(sim.Grid())
	if len(row) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(row,
			asciigraph.Height(opts.PlotHeight), asciigraph.Width(opts.PlotWidth),
			asciigraph.Caption("centre row"))))
		b.WriteString("\n")
	}
	if len(col) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(col,
			asciigraph.Height(opts.PlotHeight), asciigraph.Width(opts.PlotWidth),
			asciigraph.Caption("centre column"))))
		b.WriteString("\n")
	}

	if opts.Steps > 1 && len(sim.WaveSources()) > 0 {
		wave := Waveform(sim, opts.Steps)
		b.WriteString(graphStyle.Render(asciigraph.Plot(wave,
			asciigraph.Height(opts.PlotHeight), asciigraph.Width(opts.PlotWidth),
			asciigraph.Caption(fmt.Sprintf("excitation, %d steps", opts.Steps)))))
		b.WriteString("\n")
	}
	return b.String()
}

func line(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
