// Package palette maps signed scalar samples to colours through a piecewise
// linear transfer function over the normalized magnitude.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidTable is wrapped by Table.Validate.
var ErrInvalidTable = errors.New("palette: invalid band table")

// MinBands is the smallest number of bands a table may have.
const MinBands = 6

// Anchor is the pair of colours a band interpolates between.
type Anchor struct {
	From, To colorful.Color
}

// Band is one linear segment of the transfer function over |n| in
// [Start, End]. South colours apply to negative samples, North to positive.
type Band struct {
	Name       string
	Start, End float64
	South      Anchor
	North      Anchor
}

// Color interpolates the band at magnitude mag for the given polarity.
func (b Band) Color(mag float64, north bool) colorful.Color {
	a := b.South
	if north {
		a = b.North
	}
	t := (mag - b.Start) / (b.End - b.Start)
	if t <= 0 {
		return a.From
	}
	if t >= 1 {
		return a.To
	}
	return a.From.BlendRgb(a.To, t)
}

// Table is an ordered list of bands covering [0, 1].
type Table struct {
	Name  string
	Bands []Band
}

// Validate checks that the bands cover [0, 1] in order without gaps or
// overlaps, that adjacent bands share their boundary colours, and that both
// polarities start from the same zero colour.
func (t Table) Validate() error {
	if len(t.Bands) < MinBands {
		return fmt.Errorf("%w: %q has %d bands, need at least %d", ErrInvalidTable, t.Name, len(t.Bands), MinBands)
	}
	if t.Bands[0].Start != 0 {
		return fmt.Errorf("%w: %q starts at %v", ErrInvalidTable, t.Name, t.Bands[0].Start)
	}
	if last := t.Bands[len(t.Bands)-1]; last.End != 1 {
		return fmt.Errorf("%w: %q ends at %v", ErrInvalidTable, t.Name, last.End)
	}
	if t.Bands[0].South.From != t.Bands[0].North.From {
		return fmt.Errorf("%w: %q polarities disagree at zero", ErrInvalidTable, t.Name)
	}
	for i, b := range t.Bands {
		if !(b.Start < b.End) {
			return fmt.Errorf("%w: %q band %d is empty [%v, %v]", ErrInvalidTable, t.Name, i, b.Start, b.End)
		}
		if i == 0 {
			continue
		}
		prev := t.Bands[i-1]
		if prev.End != b.Start {
			return fmt.Errorf("%w: %q bands %d and %d do not meet (%v vs %v)", ErrInvalidTable, t.Name, i-1, i, prev.End, b.Start)
		}
		if prev.South.To != b.South.From || prev.North.To != b.North.From {
			return fmt.Errorf("%w: %q seam between bands %d and %d", ErrInvalidTable, t.Name, i-1, i)
		}
	}
	return nil
}

// band returns the index of the band containing mag. Boundaries belong to the
// upper band; 1 belongs to the last.
func (t Table) band(mag float64) int {
	for i, b := range t.Bands {
		if mag < b.End {
			return i
		}
	}
	return len(t.Bands) - 1
}

// Stop is one breakpoint of a table: the magnitude and the south and north
// colours at it, as hex strings.
type Stop struct {
	At    float64
	South string
	North string
}

// BuildTable turns ordered stops into bands. Adjacent bands share the colour
// of their common stop. Names label the bands in order and may be shorter
// than the band count.
func BuildTable(name string, stops []Stop, names ...string) (Table, error) {
	t := Table{Name: name}
	if len(stops) < 2 {
		return t, fmt.Errorf("%w: %q needs at least two stops", ErrInvalidTable, name)
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		b := Band{
			Start: lo.At,
			End:   hi.At,
		}
		var err error
		if b.South.From, err = colorful.Hex(lo.South); err != nil {
			return t, fmt.Errorf("%w: %q stop %d: %v", ErrInvalidTable, name, i-1, err)
		}
		if b.South.To, err = colorful.Hex(hi.South); err != nil {
			return t, fmt.Errorf("%w: %q stop %d: %v", ErrInvalidTable, name, i, err)
		}
		if b.North.From, err = colorful.Hex(lo.North); err != nil {
			return t, fmt.Errorf("%w: %q stop %d: %v", ErrInvalidTable, name, i-1, err)
		}
		if b.North.To, err = colorful.Hex(hi.North); err != nil {
			return t, fmt.Errorf("%w: %q stop %d: %v", ErrInvalidTable, name, i, err)
		}
		if i-1 < len(names) {
			b.Name = names[i-1]
		}
		t.Bands = append(t.Bands, b)
	}
	return t, t.Validate()
}

var (
	tablesMu sync.RWMutex
	tables   = map[string]Table{}
)

// Register validates t and stores it under t.Name.
func Register(t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	tablesMu.Lock()
	defer tablesMu.Unlock()
	tables[t.Name] = t
	return nil
}

// Lookup returns the table registered under name.
func Lookup(name string) (Table, bool) {
	tablesMu.RLock()
	defer tablesMu.RUnlock()
	t, ok := tables[name]
	return t, ok
}

// Names lists the registered tables in sorted order.
func Names() []string {
	tablesMu.RLock()
	defer tablesMu.RUnlock()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
