package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(orb.Point{0, 0}, orb.Point{3, 4}))
	assert.Equal(t, 0.0, Distance(orb.Point{7, -2}, orb.Point{7, -2}))
	assert.InDelta(t, math.Sqrt(125), Distance(orb.Point{15, 10}, orb.Point{10, 0}), 1e-12)
}

func TestDistanceSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := orb.Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		b := orb.Point{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		assert.Equal(t, Distance(a, b), Distance(b, a))
	}
}

func TestPower(t *testing.T) {
	tests := []struct {
		name    string
		device  orb.Point
		station orb.Point
		reach   float64
		want    float64
	}{
		{"same point", orb.Point{0, 0}, orb.Point{0, 0}, 10, 100},
		{"inside", orb.Point{0, 0}, orb.Point{3, 4}, 10, 25},
		{"on boundary", orb.Point{0, 0}, orb.Point{3, 4}, 5, 0},
		{"outside", orb.Point{0, 0}, orb.Point{30, 40}, 10, 0},
		{"zero reach", orb.Point{1, 1}, orb.Point{1, 1}, 0, 0},
		{"negative reach", orb.Point{1, 1}, orb.Point{1, 1}, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Power(tt.device, tt.station, tt.reach))
		})
	}
}

func TestPowerExample(t *testing.T) {
	// (12 - sqrt(125))^2
	p := Power(orb.Point{15, 10}, orb.Point{10, 0}, 12)
	assert.InDelta(t, 0.6718, p, 1e-4)
	assert.Equal(t, 0.0, Power(orb.Point{15, 10}, orb.Point{0, 0}, 10))
	assert.Equal(t, 0.0, Power(orb.Point{15, 10}, orb.Point{20, 20}, 5))
}

func TestPowerNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		device := orb.Point{rng.Float64()*100 - 50, rng.Float64()*100 - 50}
		station := orb.Point{rng.Float64()*100 - 50, rng.Float64()*100 - 50}
		reach := rng.Float64() * 40
		p := Power(device, station, reach)
		assert.GreaterOrEqual(t, p, 0.0)
		if Distance(device, station) >= reach {
			assert.Equal(t, 0.0, p)
		}
		if Distance(device, station) < reach {
			assert.Greater(t, p, 0.0)
		}
	}
}
