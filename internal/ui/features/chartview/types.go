package chartview

import "github.com/leapstack-labs/samplechart/pkg/core"

// Signals are the datastar signals posted by the page.
type Signals struct {
	SampleSize string `json:"sampleSize"`
}

// PointsResponse is the body of GET /api/points.
type PointsResponse struct {
	SampleSize string       `json:"sampleSize"`
	HasData    bool         `json:"hasData"`
	Points     []core.Point `json:"points"`
	Bounds     core.Bounds  `json:"bounds"`
	Error      string       `json:"error,omitempty"`
	FetchID    string       `json:"fetchId,omitempty"`
}
