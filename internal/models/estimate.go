package models

// Estimate is the subset of the estimates table the API and the
// operator scripts care about. The full schema lives in Supabase.
type Estimate struct {
	EstimateNumber string `json:"estimate_number"`
	Division       string `json:"division"`
	Status         string `json:"status"`
}

// DivisionCount is one row of the division distribution report.
type DivisionCount struct {
	Division string  `json:"division"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}
