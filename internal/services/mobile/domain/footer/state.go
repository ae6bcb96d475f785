package footer

import "slices"

// Slot names the mobile skin template reads.
const (
	SlotMobileView    = "mobileview"
	SlotSiteHeading   = "footer-site-heading-html"
	SlotDesktopToggle = "desktop-toggle"
	SlotLicense       = "mobile-license"
	SlotPrivacy       = "privacy"
	SlotTermsOfUse    = "terms-use"
)

// GroupPlaces is the footer link group holding navigation links.
const GroupPlaces = "places"

// LinkGroup is an ordered list of slot names rendered together.
type LinkGroup struct {
	Name  string
	Slots []string
}

// State is the footer being assembled: slot markup plus the link groups
// that decide which slots are shown and in what order.
type State struct {
	Slots map[string]string
	Links []LinkGroup
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{Slots: make(map[string]string, len(s.Slots))}
	for k, v := range s.Slots {
		out.Slots[k] = v
	}
	if s.Links != nil {
		out.Links = make([]LinkGroup, len(s.Links))
		for i, g := range s.Links {
			out.Links[i] = LinkGroup{Name: g.Name, Slots: slices.Clone(g.Slots)}
		}
	}
	return out
}

// Set stores markup for a slot.
func (s *State) Set(slot, markup string) {
	if s.Slots == nil {
		s.Slots = map[string]string{}
	}
	s.Slots[slot] = markup
}

// Group returns the slot names of a link group.
func (s State) Group(name string) []string {
	for _, g := range s.Links {
		if g.Name == name {
			return g.Slots
		}
	}
	return nil
}

// Append adds slot to the end of a link group, creating the group last if
// it does not exist.
func (s *State) Append(group, slot string) {
	for i := range s.Links {
		if s.Links[i].Name == group {
			s.Links[i].Slots = append(s.Links[i].Slots, slot)
			return
		}
	}
	s.Links = append(s.Links, LinkGroup{Name: group, Slots: []string{slot}})
}
