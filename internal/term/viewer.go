// Package term draws the field in a terminal with tcell, two samples per
// character cell using upper half blocks.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"magfield/internal/colorrange"
	"magfield/internal/field"
	"magfield/internal/palette"
)

const (
	upperHalf = '▀'
	// reservedRows holds the status line and the legend row.
	reservedRows = 2
)

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	southStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(110, 140, 255)).Background(tcell.ColorBlack).Bold(true)
	northStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 110, 110)).Background(tcell.ColorBlack).Bold(true)
)

// Viewer renders a synthesized field and routes keys to the range controller.
type Viewer struct {
	screen tcell.Screen
	sim    *field.Simulation
	rng    *colorrange.Controller
	mapper *palette.Mapper
	logger *slog.Logger

	showDipoles bool
}

// NewViewer returns a viewer drawing onto an initialized screen.
func NewViewer(screen tcell.Screen, sim *field.Simulation, rng *colorrange.Controller, mapper *palette.Mapper, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{screen: screen, sim: sim, rng: rng, mapper: mapper, logger: logger}
}

// Run draws the field and handles events until the user quits or ctx is
// cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		}
	}
}

// HandleEvent applies ev and reports whether the viewer should keep running.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		if cmd := keyCommand(ev); cmd != colorrange.None {
			v.rng.Apply(cmd)
			return true
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			v.sim.Reset()
			if err := v.sim.SynthesizeStatic(); err != nil {
				v.logger.Error("resynthesis failed", "err", err)
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case '1':
				v.showDipoles = !v.showDipoles
			}
		}
	}
	return true
}

func keyCommand(ev *tcell.EventKey) colorrange.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return colorrange.IncreaseCoarse
	case tcell.KeyDown:
		return colorrange.DecreaseCoarse
	case tcell.KeyRight:
		return colorrange.IncreaseFine
	case tcell.KeyLeft:
		return colorrange.DecreaseFine
	case tcell.KeyRune:
		if r := ev.Rune(); r == 'r' || r == 'R' {
			return colorrange.ResetToDefault
		}
	}
	return colorrange.None
}

// Draw renders the field, the legend row and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	rows := h - reservedRows
	rng := v.rng.Value()
	if w > 0 && rows > 0 {
		v.drawField(w, rows, rng)
		if v.showDipoles {
			v.drawDipoles(w, rows)
		}
	}
	if h >= 2 {
		v.drawLegend(w, h-2, rng)
	}
	if h >= 1 {
		v.drawStatus(w, h-1, rng)
	}
	v.screen.Show()
}

// samplePoint maps character cell (col, half-row) to a grid cell by nearest
// neighbour over the whole grid.
func (v *Viewer) samplePoint(col, halfRow, cols, rows int) (int, int) {
	size := v.sim.Size()
	return col * size.W / cols, halfRow * size.H / (2 * rows)
}

func (v *Viewer) sample(col, halfRow, cols, rows int, rng float64) color.RGBA {
	x, y := v.samplePoint(col, halfRow, cols, rows)
	return v.mapper.Map(float64(v.sim.Grid().At(x, y)), rng)
}

func (v *Viewer) drawField(cols, rows int, rng float64) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := v.sample(col, 2*row, cols, rows, rng)
			bottom := v.sample(col, 2*row+1, cols, rows, rng)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			v.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
}

func (v *Viewer) drawDipoles(cols, rows int) {
	size := v.sim.Size()
	for _, d := range v.sim.Dipoles() {
		if d.X < 0 || d.Y < 0 || d.X >= size.W || d.Y >= size.H {
			continue
		}
		col := d.X * cols / size.W
		row := d.Y * 2 * rows / size.H / 2
		mark, style := 'N', northStyle
		if d.Polarity() < 0 {
			mark, style = 'S', southStyle
		}
		v.screen.SetContent(col, row, mark, nil, style)
	}
}

func (v *Viewer) drawLegend(cols, y int, rng float64) {
	if cols < 3 {
		return
	}
	v.screen.SetContent(0, y, 'S', nil, southStyle)
	v.screen.SetContent(cols-1, y, 'N', nil, northStyle)
	for i, c := range v.mapper.Legend(rng, cols-2) {
		v.screen.SetContent(i+1, y, ' ', nil, tcell.StyleDefault.Background(rgb(c)))
	}
}

func (v *Viewer) drawStatus(cols, y int, rng float64) {
	st := v.sim.Stats()
	line := fmt.Sprintf(" %s [%s] range %.2f (default %.2f) min %.3f max %.3f active %d  ↑↓ coarse ←→ fine r reset 1 poles q quit",
		v.sim.Name(), v.sim.FieldLabel(), rng, v.rng.Default(), st.Min, st.Max, st.Active)
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, y, r, nil, statusStyle)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
