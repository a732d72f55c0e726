package emfsim

import (
	"errors"
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// ErrInvalidConfig is wrapped by PhyConfig validation failures.
var ErrInvalidConfig = errors.New("emfsim: invalid phy config")

// PhyConfig holds the physical-layer constants of the exposure model.
// It is built once at startup and passed by value; derived quantities
// are recomputed from the fields so a modified copy stays consistent.
type PhyConfig struct {
	SpeedOfLight  float64 // m/s
	FcHz          float64 // carrier frequency in Hz
	TxPowerDBm    float64
	NoiseFloorDBm float64
	AlphaPL       float64 // path-loss exponent
	BSHeightM     float64 // mast height shared by every station
}

// DefaultPhyConfig returns the reference urban-macro parameter set:
// 1837.5 MHz carrier, 62.75 dBm EIRP, -96.21 dBm noise floor,
// alpha 3.2, 33 m masts.
func DefaultPhyConfig() PhyConfig {
	return PhyConfig{
		SpeedOfLight:  3.0e8,
		FcHz:          1.8375e9,
		TxPowerDBm:    62.75,
		NoiseFloorDBm: -96.21,
		AlphaPL:       3.2,
		BSHeightM:     33.0,
	}
}

// Kappa is the free-space reference term (4*pi*f/c)^2.
func (p PhyConfig) Kappa() float64 {
	k := 4.0 * math.Pi * p.FcHz / p.SpeedOfLight
	return k * k
}

// TxPowerW is the transmit power in watts. 0 dBm = 1 mW, hence the
// -30 before the exponent.
func (p PhyConfig) TxPowerW() float64 {
	return vlib.InvDb(p.TxPowerDBm - 30)
}

// NoiseFloorW is the noise floor in watts.
func (p PhyConfig) NoiseFloorW() float64 {
	return vlib.InvDb(p.NoiseFloorDBm - 30)
}

// Validate fails fast on parameters the propagation model cannot work
// with; dBm powers are unrestricted since any real value is a valid
// power.
func (p PhyConfig) Validate() error {
	if p.SpeedOfLight <= 0 {
		return fmt.Errorf("%w: speed of light %v", ErrInvalidConfig, p.SpeedOfLight)
	}
	if p.FcHz <= 0 {
		return fmt.Errorf("%w: carrier frequency %v Hz", ErrInvalidConfig, p.FcHz)
	}
	if p.AlphaPL <= 0 {
		return fmt.Errorf("%w: path-loss exponent %v", ErrInvalidConfig, p.AlphaPL)
	}
	if p.BSHeightM <= 0 {
		return fmt.Errorf("%w: antenna height %v m", ErrInvalidConfig, p.BSHeightM)
	}
	return nil
}
