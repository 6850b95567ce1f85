// Package colorrange holds the display range that normalizes field samples
// before colour mapping, and the bounded commands that adjust it.
package colorrange

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"magfield/internal/core"
)

const (
	// CoarseStep is applied by the coarse commands.
	CoarseStep = 0.05
	// FineStep is applied by the fine commands.
	FineStep = 0.02
	// MinRange is the floor the range is clamped to after every change.
	MinRange = 0.1

	// ParamKey names the range in parameter snapshots and setters.
	ParamKey = "color_range"
)

// Command is a discrete adjustment requested by the input layer.
type Command int

const (
	None Command = iota
	IncreaseCoarse
	DecreaseCoarse
	IncreaseFine
	DecreaseFine
	ResetToDefault
)

func (c Command) String() string {
	switch c {
	case None:
		return "none"
	case IncreaseCoarse:
		return "increase-coarse"
	case DecreaseCoarse:
		return "decrease-coarse"
	case IncreaseFine:
		return "increase-fine"
	case DecreaseFine:
		return "decrease-fine"
	case ResetToDefault:
		return "reset"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// HeldCommands returns the commands for the arrow keys currently held, in the
// order they apply within one frame: up, down, right, left.
func HeldCommands(up, down, right, left bool) []Command {
	var cmds []Command
	if up {
		cmds = append(cmds, IncreaseCoarse)
	}
	if down {
		cmds = append(cmds, DecreaseCoarse)
	}
	if right {
		cmds = append(cmds, IncreaseFine)
	}
	if left {
		cmds = append(cmds, DecreaseFine)
	}
	return cmds
}

// Controller is the sole writer of the display range. All methods are safe
// for concurrent use.
type Controller struct {
	mu     sync.Mutex
	value  float64
	def    float64
	logger *slog.Logger
}

// New returns a controller whose range and reset target are def, raised to
// MinRange if smaller. A nil logger uses slog.Default.
func New(def float64, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	def = floor(def)
	return &Controller{value: def, def: def, logger: logger}
}

func floor(v float64) float64 {
	if math.IsNaN(v) || v < MinRange {
		return MinRange
	}
	return v
}

// Value returns the current range.
func (c *Controller) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Default returns the range restored by ResetToDefault.
func (c *Controller) Default() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.def
}

// Set replaces the range, clamped to MinRange, and returns the stored value.
func (c *Controller) Set(v float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store(floor(v), "set")
}

func (c *Controller) IncreaseCoarse() float64 { return c.Apply(IncreaseCoarse) }
func (c *Controller) DecreaseCoarse() float64 { return c.Apply(DecreaseCoarse) }
func (c *Controller) IncreaseFine() float64   { return c.Apply(IncreaseFine) }
func (c *Controller) DecreaseFine() float64   { return c.Apply(DecreaseFine) }
func (c *Controller) ResetToDefault() float64 { return c.Apply(ResetToDefault) }

// Apply executes cmd and returns the resulting range. Unknown commands leave
// the range unchanged.
func (c *Controller) Apply(cmd Command) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch cmd {
	case IncreaseCoarse:
		return c.store(c.value+CoarseStep, cmd.String())
	case DecreaseCoarse:
		return c.store(floor(c.value-CoarseStep), cmd.String())
	case IncreaseFine:
		return c.store(c.value+FineStep, cmd.String())
	case DecreaseFine:
		return c.store(floor(c.value-FineStep), cmd.String())
	case ResetToDefault:
		return c.store(c.def, cmd.String())
	default:
		return c.value
	}
}

// store must be called with mu held.
func (c *Controller) store(v float64, reason string) float64 {
	if v != c.value {
		c.logger.Debug("color range changed", "from", c.value, "to", v, "command", reason)
	}
	c.value = v
	return v
}

// ParameterControls exposes the range as an adjustable HUD control.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    ParamKey,
		Label:  "Color range",
		Type:   core.ParamTypeFloat,
		Step:   CoarseStep,
		Min:    MinRange,
		HasMin: true,
	}}
}

// SetFloatParameter sets the range when key is ParamKey.
func (c *Controller) SetFloatParameter(key string, value float64) bool {
	if key != ParamKey {
		return false
	}
	c.Set(value)
	return true
}

// Parameters reports the current and default range.
func (c *Controller) Parameters() core.ParameterSnapshot {
	c.mu.Lock()
	value, def := c.value, c.def
	c.mu.Unlock()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Display",
		Params: []core.Parameter{
			{Key: ParamKey, Label: "Color range", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 2, 64)},
			{Key: "color_range_default", Label: "Default", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(def, 'f', 2, 64)},
		},
	}}}
}
