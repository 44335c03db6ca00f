package nav

// Surface is the presentation boundary driven by the Controller. The
// Controller never renders; it tells the surface what changed and the surface
// reads snapshots back when it draws.
type Surface interface {
	// Show makes region the only visible region
	Show(region Region)
	// ScrollTo brings the focused row of region into view
	ScrollTo(region Region, index int)
	FocusSearch(focused bool)
	ReplaceLocation(loc Location)
	// Report surfaces a non-fatal error such as a playback failure
	Report(err error)
}

// NopSurface discards every call
type NopSurface struct{}

func (NopSurface) Show(Region)              {}
func (NopSurface) ScrollTo(Region, int)     {}
func (NopSurface) FocusSearch(bool)         {}
func (NopSurface) ReplaceLocation(Location) {}
func (NopSurface) Report(error)             {}
