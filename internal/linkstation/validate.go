package linkstation

import (
	"errors"

	"github.com/joeblew999/plat-linkstation/internal/apperr"
)

// Validation messages, in the order the checks run.
const (
	MsgMissingPayload       = "Please provide device point & link station points."
	MsgMissingDevicePoint   = "Please provide a device point (x, y)."
	MsgInvalidDevicePoint   = "Invalid device point: "
	MsgMissingStationPoints = "Please provide link station points (x, y, r)"
	MsgInvalidStationPoint  = "Invalid link station point: "
)

var errNotJSON = errors.New("payload is not valid JSON")

// Validate checks a raw payload and returns the decoded request. Checks run
// in a fixed order and the first failing one determines the error.
func Validate(p Payload) (Request, error) {
	kind, obj, _ := classify(p)
	switch kind {
	case kindInvalid:
		return Request{}, apperr.Malformed(errNotJSON)
	case kindEmpty:
		return Request{}, apperr.Invalid(MsgMissingPayload)
	}

	rawDevice, ok := obj["devicePoint"]
	if !ok {
		return Request{}, apperr.Invalid(MsgMissingDevicePoint)
	}
	device, ok := ParseDevicePoint(rawDevice)
	if !ok {
		return Request{}, apperr.Invalid(MsgInvalidDevicePoint + render(rawDevice))
	}

	rawStations := obj["linkStationPoints"]
	skind, _, elems := classify(rawStations)
	switch skind {
	case kindEmpty:
		return Request{}, apperr.Invalid(MsgMissingStationPoints)
	case kindArray:
	default:
		return Request{}, apperr.Invalid(MsgInvalidStationPoint + render(rawStations))
	}

	stations := make([]LinkStationPoint, 0, len(elems))
	for _, raw := range elems {
		s, ok := ParseLinkStationPoint(raw)
		if !ok {
			return Request{}, apperr.Invalid(MsgInvalidStationPoint + render(raw))
		}
		stations = append(stations, s)
	}
	return Request{Device: device, Stations: stations}, nil
}
