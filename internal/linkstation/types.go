// Package linkstation selects the link station offering a device the most
// power. It validates untyped request payloads, scores every candidate
// station and builds the user-facing outcome.
package linkstation

import (
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-linkstation/internal/geometry"
)

// DevicePoint is the planar location of a device.
type DevicePoint struct {
	X float64 `json:"x" doc:"Device x coordinate" example:"15"`
	Y float64 `json:"y" doc:"Device y coordinate" example:"10"`
}

// Point returns the device location as an orb.Point.
func (d DevicePoint) Point() orb.Point { return orb.Point{d.X, d.Y} }

// LinkStationPoint is a candidate link station with its reach radius.
type LinkStationPoint struct {
	X float64 `json:"x" doc:"Station x coordinate" example:"10"`
	Y float64 `json:"y" doc:"Station y coordinate" example:"0"`
	R float64 `json:"r" doc:"Station reach radius" example:"12"`
}

// Point returns the station location as an orb.Point.
func (s LinkStationPoint) Point() orb.Point { return orb.Point{s.X, s.Y} }

// PowerResult is the winning station and the power it offers.
type PowerResult struct {
	Power   float64          `json:"power" doc:"Power offered at the device point"`
	Station LinkStationPoint `json:"station" doc:"Winning link station"`
}

// Request is a validated find request.
type Request struct {
	Device   DevicePoint
	Stations []LinkStationPoint
}

// Power returns the power station s offers device d.
func Power(d DevicePoint, s LinkStationPoint) float64 {
	return geometry.Power(d.Point(), s.Point(), s.R)
}
