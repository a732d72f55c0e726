// Package pathloss implements the distance power-law attenuation model
// used by the exposure engine.
package pathloss

import (
	"errors"
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// ErrInvalidConfig is wrapped by all model construction failures.
var ErrInvalidConfig = errors.New("pathloss: invalid model config")

// SpeedOfLight in m/s.
const SpeedOfLight = 3.0e8

// KappaModel is the kappa-referenced power-law model
//
//	l(d) = (1/kappa) * (d^2 + h^2)^(-alpha/2),  kappa = (4*pi*f/c)^2
//
// Planar separation d and the antenna height h are in metres. The h^2
// term converts the planar separation into an effective 3-D distance,
// so the attenuation stays finite at d = 0 as long as h > 0.
type KappaModel struct {
	FcHz    float64
	Kappa   float64
	Alpha   float64
	HeightM float64
}

// NewKappaModel derives kappa from the carrier frequency once and
// returns a ready model. Alpha and the height are carried explicitly in
// the model value so a test can pin any of them in isolation.
func NewKappaModel(fcHz, alpha, heightM float64) (KappaModel, error) {
	if fcHz <= 0 {
		return KappaModel{}, fmt.Errorf("%w: carrier frequency %v Hz", ErrInvalidConfig, fcHz)
	}
	if alpha <= 0 {
		return KappaModel{}, fmt.Errorf("%w: path-loss exponent %v", ErrInvalidConfig, alpha)
	}
	if heightM <= 0 {
		return KappaModel{}, fmt.Errorf("%w: antenna height %v m", ErrInvalidConfig, heightM)
	}
	k := 4.0 * math.Pi * fcHz / SpeedOfLight
	return KappaModel{FcHz: fcHz, Kappa: k * k, Alpha: alpha, HeightM: heightM}, nil
}

// Attenuation returns the linear path-loss factor at planar distance
// d2D metres.
func (p KappaModel) Attenuation(d2D float64) float64 {
	d3sq := d2D*d2D + p.HeightM*p.HeightM
	return math.Pow(d3sq, -p.Alpha/2.0) / p.Kappa
}

// AttenuationBetween is Attenuation over the planar separation of two
// locations; Z components are ignored, the model height applies.
func (p KappaModel) AttenuationBetween(src, dest vlib.Location3D) float64 {
	return p.Attenuation(src.Distance2DFrom(dest))
}

// ReceivedPowerW returns txPowerW attenuated by the model at planar
// distance d2D.
func (p KappaModel) ReceivedPowerW(txPowerW, d2D float64) float64 {
	return txPowerW * p.Attenuation(d2D)
}

// LossInDb returns the attenuation as a positive dB loss, for
// comparison against dB-domain channel models.
func (p KappaModel) LossInDb(d2D float64) float64 {
	return -vlib.Db(p.Attenuation(d2D))
}
