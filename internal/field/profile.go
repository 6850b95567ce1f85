package field

import (
	"sort"
	"sync"
)

// Profile holds the constants of a synthesis pass. Scale is a visualization
// gain, not a physical unit.
type Profile struct {
	Name string

	// NearThreshold is the squared distance (grid units²) at or below which a
	// dipole emits its pole indicator instead of the inverse-cube term.
	NearThreshold float64
	Scale         float64
	PoleMagnitude float64
	Clamp         float64
	// ActiveEps is the magnitude above which a cell counts as active in Stats.
	ActiveEps float64
}

// Built-in profile names.
const (
	ProfileBasic = "basic"
	ProfileHiRes = "hires"
)

var (
	profilesMu sync.RWMutex
	profiles   = map[string]Profile{}
)

func init() {
	RegisterProfile(Profile{
		Name:          ProfileBasic,
		NearThreshold: 4.0,
		Scale:         60,
		PoleMagnitude: 3.0,
		Clamp:         4.0,
		ActiveEps:     0.01,
	})
	RegisterProfile(Profile{
		Name:          ProfileHiRes,
		NearThreshold: 2.25,
		Scale:         90,
		PoleMagnitude: 3.5,
		Clamp:         5.0,
		ActiveEps:     0.01,
	})
}

// DefaultProfile returns the basic profile.
func DefaultProfile() Profile {
	p, _ := LookupProfile(ProfileBasic)
	return p
}

// RegisterProfile adds or replaces a profile under p.Name.
func RegisterProfile(p Profile) {
	if p.Name == "" {
		return
	}
	profilesMu.Lock()
	defer profilesMu.Unlock()
	profiles[p.Name] = p
}

// LookupProfile returns the profile registered under name.
func LookupProfile(name string) (Profile, bool) {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames lists the registered profiles in sorted order.
func ProfileNames() []string {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
