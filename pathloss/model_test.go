package pathloss_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/emfsim/pathloss"
	"github.com/wiless/vlib"
)

func newModel(t *testing.T) pathloss.KappaModel {
	t.Helper()
	m, err := pathloss.NewKappaModel(1.8375e9, 3.2, 33)
	require.NoError(t, err)
	return m
}

func TestKappaDerivation(t *testing.T) {
	m := newModel(t)
	want := math.Pow(4.0*math.Pi*1.8375e9/pathloss.SpeedOfLight, 2)
	assert.InEpsilon(t, want, m.Kappa, 1e-12)
}

func TestAttenuationColocated(t *testing.T) {
	m := newModel(t)
	// d2D = 0 leaves the squared 3-D distance at h^2 = 1089.
	want := math.Pow(1089, -1.6) / m.Kappa
	assert.InEpsilon(t, want, m.Attenuation(0), 1e-12)
}

func TestReceivedPowerPositiveAndMonotonic(t *testing.T) {
	m := newModel(t)
	const txW = 1883.6
	prev := math.Inf(1)
	for d := 0.0; d <= 8000; d += 250 {
		pr := m.ReceivedPowerW(txW, d)
		assert.Greater(t, pr, 0.0, "d=%v", d)
		assert.Less(t, pr, prev, "d=%v", d)
		prev = pr
	}
}

func TestAttenuationBetweenUsesPlanarDistance(t *testing.T) {
	m := newModel(t)
	var src, dest vlib.Location3D
	src.SetXY(300, -400)
	src.SetHeight(33)
	dest.SetXY(0, 0)
	dest.SetHeight(1.5)
	// Z components differ; only the 500 m planar separation counts.
	assert.InEpsilon(t, m.Attenuation(500), m.AttenuationBetween(src, dest), 1e-12)
}

func TestLossInDbMatchesLinear(t *testing.T) {
	m := newModel(t)
	for _, d := range []float64{0, 10, 100, 1000, 5000} {
		want := -10.0 * math.Log10(m.Attenuation(d))
		assert.InEpsilon(t, want, m.LossInDb(d), 1e-12, "d=%v", d)
	}
}

func TestNewKappaModelValidation(t *testing.T) {
	cases := []struct {
		name          string
		fc, alpha, hM float64
	}{
		{"zero frequency", 0, 3.2, 33},
		{"negative frequency", -1e9, 3.2, 33},
		{"zero exponent", 1.8375e9, 0, 33},
		{"zero height", 1.8375e9, 3.2, 0},
		{"negative height", 1.8375e9, 3.2, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := pathloss.NewKappaModel(c.fc, c.alpha, c.hM)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pathloss.ErrInvalidConfig))
		})
	}
}
