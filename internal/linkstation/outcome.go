package linkstation

import (
	"math"
	"strconv"
)

// Outcome statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome is the response to a valid find request.
type Outcome struct {
	Status  string       `json:"status" enum:"success,error" doc:"success when a station was found"`
	Message string       `json:"message" doc:"Human-readable result"`
	Result  *PowerResult `json:"-"`
}

// Found reports whether a station reaches the device.
func (o Outcome) Found() bool { return o.Result != nil }

// NewOutcome builds the outcome for device from a selection result.
func NewOutcome(device DevicePoint, res PowerResult, ok bool) Outcome {
	if !ok {
		return Outcome{
			Status:  StatusError,
			Message: "No link station within reach for point " + FormatPoint(device.X, device.Y),
		}
	}
	return Outcome{
		Status: StatusSuccess,
		Message: "Best link station for point " + FormatPoint(device.X, device.Y) +
			" is " + FormatPoint(res.Station.X, res.Station.Y) +
			" with power " + FormatPower(res.Power),
		Result: &res,
	}
}

// Evaluate validates p, selects the best station and builds the outcome.
func Evaluate(p Payload) (Outcome, error) {
	req, err := Validate(p)
	if err != nil {
		return Outcome{}, err
	}
	res, ok, err := FindBestStation(req.Device, req.Stations)
	if err != nil {
		return Outcome{}, err
	}
	return NewOutcome(req.Device, res, ok), nil
}

// FormatNumber renders v in its shortest form: 15, -5, 0.5.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPoint renders a coordinate pair as "x,y".
func FormatPoint(x, y float64) string {
	return FormatNumber(x) + "," + FormatNumber(y)
}

// FormatPower renders integral powers unchanged and rounds the rest to two
// decimals. Only presentation is rounded.
func FormatPower(p float64) string {
	if p == math.Trunc(p) {
		return FormatNumber(p)
	}
	return FormatNumber(math.Round(p*100) / 100)
}
