package dto

type EncodeResponse struct {
	Token string `json:"token"`
}

type DecodeResponse struct {
	Token  string  `json:"token"`
	Number float64 `json:"number"`
}

type LabelResponse struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}
