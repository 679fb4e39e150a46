// Package style maps named visual styles to rendering parameters.
//
// A style decides how transparent poster layers are and whether their outlines
// get a touch of positional noise. Resolution never fails: names outside the
// table fall back to the "minimal" profile.
package style

// Style names as shown in the UI menu.
const (
	Minimal    = "minimal"
	Vivid      = "vivid"
	NoiseTouch = "noise touch"
)

// Default is the style used for unknown names.
const Default = Minimal

// Profile holds the alpha range layers are drawn from and the jitter switch.
// AlphaMin <= AlphaMax always holds.
type Profile struct {
	Name     string  `json:"name"`
	AlphaMin float64 `json:"alpha_min"`
	AlphaMax float64 `json:"alpha_max"`
	Jitter   bool    `json:"jitter"`
}

var profiles = []Profile{
	{Name: Minimal, AlphaMin: 0.25, AlphaMax: 0.50},
	{Name: Vivid, AlphaMin: 0.50, AlphaMax: 0.90},
	{Name: NoiseTouch, AlphaMin: 0.30, AlphaMax: 0.70, Jitter: true},
}

// Lookup returns the profile for name and whether it exists.
func Lookup(name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Resolve returns the profile for name, or the minimal profile when name is
// not a known style.
func Resolve(name string) Profile {
	if p, ok := Lookup(name); ok {
		return p
	}
	p, _ := Lookup(Default)
	return p
}

// Names returns the style names in menu order.
func Names() []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name
	}
	return out
}

// All returns every profile in menu order.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// Contains reports whether alpha lies within the profile's range.
func (p Profile) Contains(alpha float64) bool {
	return alpha >= p.AlphaMin && alpha <= p.AlphaMax
}
