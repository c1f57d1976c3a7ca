package linkstation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStationsJSON = `[{"x":0,"y":0,"r":10},{"x":20,"y":20,"r":5},{"x":10,"y":0,"r":12}]`

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		device string
		status string
		msg    string
	}{
		{`{"x":15,"y":10}`, StatusSuccess, "Best link station for point 15,10 is 10,0 with power 0.67"},
		{`{"x":10,"y":15}`, StatusError, "No link station within reach for point 10,15"},
		{`{"x":-5,"y":-10}`, StatusError, "No link station within reach for point -5,-10"},
		{`{"x":0,"y":0}`, StatusSuccess, "Best link station for point 0,0 is 0,0 with power 100"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			out, err := Evaluate(Payload(`{"devicePoint":` + tt.device + `,"linkStationPoints":` + sampleStationsJSON + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.msg, out.Message)
			assert.Equal(t, tt.status == StatusSuccess, out.Found())
		})
	}
}

func TestEvaluateValidationError(t *testing.T) {
	_, err := Evaluate(Payload(`{}`))
	require.Error(t, err)
	assert.Equal(t, MsgMissingPayload, err.Error())
}

func TestFormatPower(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{0.6718427000252355, "0.67"},
		{2.5, "2.5"},
		{1.005, "1"},
		{0.999, "1"},
		{12.3456, "12.35"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPower(tt.in), tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "15", FormatNumber(15))
	assert.Equal(t, "-5", FormatNumber(-5))
	assert.Equal(t, "0.5", FormatNumber(0.5))
	assert.Equal(t, "0", FormatNumber(math.Copysign(0, -1)))
	assert.Equal(t, "1.5,-2", FormatPoint(1.5, -2))
}
