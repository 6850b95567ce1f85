//go:build !ebiten

package ui

import (
	"magfield/internal/core"
	"magfield/internal/palette"
)

// RangeControl is the display range as seen by the HUD.
type RangeControl interface {
	core.ParameterProvider
	core.ParameterControlsProvider
	core.FloatParameterSetter
	Value() float64
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, RangeControl, *palette.Mapper, int) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
