package dto

type SiteResponse struct {
	SiteID int     `json:"site_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Label  string  `json:"label"`
}

type ListSitesResponse struct {
	Sites []SiteResponse `json:"sites"`
}
