package domain

// A named location whose coordinates are published as a flare label.
type Site struct {
	SiteID      int
	Name        string
	Coordinates Coordinates
}

// A Site together with the label computed for a given set of options.
type LabeledSite struct {
	Site
	Label string
}
