//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"magfield/internal/core"
	"magfield/internal/palette"
	"magfield/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// RangeControl is the display range as seen by the HUD.
type RangeControl interface {
	core.ParameterProvider
	core.ParameterControlsProvider
	core.FloatParameterSetter
	Value() float64
}

type fieldLabeler interface {
	FieldLabel() string
}

// HUD renders the parameter panel to the right of the field view: the range
// controls, the simulation parameters and a legend bar keyed to the range.
type HUD struct {
	sim        core.Sim
	rng        RangeControl
	mapper     *palette.Mapper
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	panelOffsetX int
	title        string

	legend      *ebiten.Image
	legendRange float64

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width. It
// returns nil when width is not positive.
func NewHUD(sim core.Sim, rng RangeControl, mapper *palette.Mapper, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{sim: sim, rng: rng, mapper: mapper, width: width}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	h.title = buildTitle(sim)
	controls := rng.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.layoutControls()
	return h
}

// Update refreshes the cached parameter snapshot and handles HUD clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.rng.Parameters()
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot.Groups = append(h.snapshot.Groups, provider.Parameters().Groups...)
	}
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the field view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawParameters()
	h.drawLegend()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Field"
	}
	if f, ok := sim.(fieldLabeler); ok && f.FieldLabel() != "" {
		return fmt.Sprintf("%s [%s]", sim.Name(), f.FieldLabel())
	}
	return sim.Name()
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || state.control.Type != core.ParamTypeFloat {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.floatValue = parsed
		state.value = formatFloat(state.control, parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if !h.canAdjust(state, direction) {
		return
	}
	target := clampControl(state.control, state.floatValue+float64(direction)*controlStep(state.control))
	if math.Abs(target-state.floatValue) < 1e-9 {
		return
	}
	if h.rng.SetFloatParameter(state.control.Key, target) {
		state.floatValue = target
		state.value = formatFloat(state.control, target)
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	target := state.floatValue + float64(direction)*controlStep(state.control)
	if state.control.HasMin && direction < 0 && target < state.control.Min {
		return state.floatValue > state.control.Min
	}
	if state.control.HasMax && direction > 0 && target > state.control.Max {
		return state.floatValue < state.control.Max
	}
	return true
}

func controlStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}

func clampControl(ctrl core.ParameterControl, v float64) float64 {
	if ctrl.HasMin && v < ctrl.Min {
		return ctrl.Min
	}
	if ctrl.HasMax && v > ctrl.Max {
		return ctrl.Max
	}
	return v
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, textColor)
		valueColor := textColor
		if !state.hasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
}

// drawParameters lists the snapshot below the controls, skipping the keys
// already shown as controls.
func (h *HUD) drawParameters() {
	face := basicfont.Face7x13
	skip := map[string]bool{}
	for _, c := range h.controls {
		skip[c.control.Key] = true
	}
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing/2
	limit := h.lastHeight - legendReserve
	for _, group := range h.snapshot.Groups {
		if y > limit {
			return
		}
		text.Draw(h.panel, group.Name, face, panelPadding, y, color.RGBA{R: 150, G: 170, B: 200, A: 255})
		y += infoLine
		for _, p := range group.Params {
			if skip[p.Key] {
				continue
			}
			if y > limit {
				return
			}
			text.Draw(h.panel, p.Label, face, panelPadding+8, y, dimColor)
			value := formatParam(p)
			bounds := text.BoundString(face, value)
			text.Draw(h.panel, value, face, h.width-panelPadding-bounds.Dx(), y, textColor)
			y += infoLine
		}
		y += infoLine / 2
	}
}

func (h *HUD) drawLegend() {
	if h.mapper == nil {
		return
	}
	rng := h.rng.Value()
	barWidth := h.width - 2*panelPadding
	if barWidth <= 0 {
		return
	}
	if h.legend == nil || rng != h.legendRange {
		h.legend = render.LegendImage(h.mapper, rng, barWidth, legendHeight)
		h.legendRange = rng
	}
	top := h.lastHeight - legendReserve + infoLine
	face := basicfont.Face7x13
	text.Draw(h.panel, "S", face, panelPadding, top-4, color.RGBA{R: 110, G: 140, B: 255, A: 255})
	north := text.BoundString(face, "N")
	text.Draw(h.panel, "N", face, h.width-panelPadding-north.Dx(), top-4, color.RGBA{R: 255, G: 110, B: 110, A: 255})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(panelPadding), float64(top))
	h.panel.DrawImage(h.legend, op)

	labelY := top + legendHeight + infoLine
	lo := strconv.FormatFloat(-rng, 'f', 2, 64)
	hi := strconv.FormatFloat(rng, 'f', 2, 64)
	text.Draw(h.panel, lo, face, panelPadding, labelY, dimColor)
	mid := text.BoundString(face, "0")
	text.Draw(h.panel, "0", face, h.width/2-mid.Dx()/2, labelY, dimColor)
	hb := text.BoundString(face, hi)
	text.Draw(h.panel, hi, face, h.width-panelPadding-hb.Dx(), labelY, dimColor)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := controlStep(ctrl); {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func formatParam(p core.Parameter) string {
	if p.Type != core.ParamTypeFloat {
		return p.Value
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return p.Value
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	textColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	infoLine       = 15
	legendHeight   = 14
	legendReserve  = 64
	controlsTop    = panelPadding + headerBaseline + 14
)
