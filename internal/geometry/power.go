// Package geometry evaluates the planar distance between a device and a link
// station and the signal power the station offers at that distance.
package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Power returns the power a station at station with the given reach offers a
// device at device: (reach - distance)^2 inside the reach, 0 outside it.
func Power(device, station orb.Point, reach float64) float64 {
	d := Distance(device, station)
	if d > reach {
		return 0
	}
	gap := reach - d
	return gap * gap
}
