package ui

import "maps"

// Panel is the visible state of the now-playing display.
type Panel struct {
	Texts  map[RegionID]string `json:"texts"`
	Active map[ControlID]bool  `json:"active"`
	Icons  map[ControlID]Icon  `json:"icons"`
	Error  string              `json:"error,omitempty"`
}

// NewPanel returns an empty panel.
func NewPanel() Panel {
	return Panel{
		Texts:  make(map[RegionID]string),
		Active: make(map[ControlID]bool),
		Icons:  make(map[ControlID]Icon),
	}
}

// Clone returns a deep copy.
func (p Panel) Clone() Panel {
	return Panel{
		Texts:  maps.Clone(p.Texts),
		Active: maps.Clone(p.Active),
		Icons:  maps.Clone(p.Icons),
		Error:  p.Error,
	}
}

// Text returns the content of a region.
func (p Panel) Text(id RegionID) string {
	return p.Texts[id]
}

// IsActive reports whether a control is marked active.
func (p Panel) IsActive(id ControlID) bool {
	return p.Active[id]
}

// Icon returns the icon of a control, or "" if none was set.
func (p Panel) Icon(id ControlID) Icon {
	return p.Icons[id]
}

// HasError reports whether the error banner is visible.
func (p Panel) HasError() bool {
	return p.Error != ""
}

// Empty reports whether nothing has been rendered yet.
func (p Panel) Empty() bool {
	return len(p.Texts) == 0 && len(p.Active) == 0 && len(p.Icons) == 0 && p.Error == ""
}

// Equal reports whether two panels show the same thing.
func (p Panel) Equal(o Panel) bool {
	return p.Error == o.Error &&
		maps.Equal(p.Texts, o.Texts) &&
		maps.Equal(p.Active, o.Active) &&
		maps.Equal(p.Icons, o.Icons)
}
