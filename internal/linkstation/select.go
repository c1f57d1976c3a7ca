package linkstation

import (
	"gonum.org/v1/gonum/floats"

	"github.com/joeblew999/plat-linkstation/internal/apperr"
)

// Powers returns the power each station offers the device, in input order.
func Powers(device DevicePoint, stations []LinkStationPoint) []float64 {
	out := make([]float64, len(stations))
	for i, s := range stations {
		out[i] = Power(device, s)
	}
	return out
}

// FindBestStation returns the station offering device the most power. On
// ties the earliest station wins. ok is false when no station reaches the
// device. An empty station list is a NoCandidates error.
func FindBestStation(device DevicePoint, stations []LinkStationPoint) (PowerResult, bool, error) {
	if len(stations) == 0 {
		return PowerResult{}, false, apperr.NoCandidatesError()
	}
	powers := Powers(device, stations)
	best := floats.MaxIdx(powers)
	if powers[best] <= 0 {
		return PowerResult{}, false, nil
	}
	return PowerResult{Power: powers[best], Station: stations[best]}, true, nil
}
