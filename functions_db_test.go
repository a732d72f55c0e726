package emfsim_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	CM "github.com/wiless/channelmodel"
	"github.com/wiless/emfsim"
	"github.com/wiless/emfsim/deployment"
	"github.com/wiless/vlib"
)

// flatLossModel is a minimal dB-domain channel model: a fixed loss on
// every link, except links from a station at X==failX which report an
// error. A NaN failX disables the error path.
type flatLossModel struct {
	lossDb float64
	failX  float64
}

var _ CM.PLModel = flatLossModel{}

func (f flatLossModel) Init(fGHz float64)             {}
func (f flatLossModel) IsSupported(fGHz float64) bool { return true }

func (f flatLossModel) PLbetween(node1, node2 vlib.Location3D) (float64, bool, error) {
	if node1.X == f.failX {
		return 0, false, errors.New("link outside model validity range")
	}
	return f.lossDb, false, nil
}

func (f flatLossModel) PLbetweenIndoor(node1, node2 vlib.Location3D, dIn float64) (float64, bool, error) {
	return f.PLbetween(node1, node2)
}

func (f flatLossModel) IsLOS(dist float64) bool                { return true }
func (f flatLossModel) PLnlos(dist float64) (float64, error)   { return f.lossDb, nil }
func (f flatLossModel) PLlos(dist float64) (float64, error)    { return f.lossDb, nil }
func (f flatLossModel) PL(dist float64) (float64, bool, error) { return f.lossDb, false, nil }
func (f flatLossModel) O2ILossDb(fGHz, d2Din float64) float64  { return 0 }
func (f flatLossModel) O2ICarLossDb() float64                  { return 0 }
func (f flatLossModel) Env() string                            { return "Flat" }
func (f flatLossModel) IsShadowLoss() bool                     { return false }

func TestEvaluateCoverageDbFlatLoss(t *testing.T) {
	phy := emfsim.DefaultPhyConfig()
	sys := newTestSystem(t)
	top := topoAt([2]float64{0, 0}, [2]float64{900, 0})

	model := flatLossModel{lossDb: 120, failX: math.NaN()}
	m := sys.EvaluateCoverageDb(model, top, vlib.Location3D{})

	// Pr[W] = 10^((Pt_dBm - PL_dB - 30)/10), identical on every link.
	wantPr := vlib.InvDb(phy.TxPowerDBm - 120 - 30)
	require.InEpsilon(t, wantPr, m.StationRxPowerW[0], 1e-12)
	require.InEpsilon(t, wantPr, m.StationRxPowerW[1], 1e-12)
	assert.InEpsilon(t, 2*wantPr, m.TotalRxPowerW, 1e-12)

	// Equal powers, first station wins.
	assert.Equal(t, 0, m.BestStationID)
	assert.InEpsilon(t, wantPr, m.InterferenceW, 1e-12)

	wantSinr := wantPr / (wantPr + phy.NoiseFloorW() + 1e-20)
	assert.InEpsilon(t, wantSinr, m.SINRLinear, 1e-12)
	assert.InEpsilon(t, phy.Kappa()/(4*math.Pi)*2*wantPr, m.FluxWm2, 1e-12)
}

func TestEvaluateCoverageDbModelError(t *testing.T) {
	sys := newTestSystem(t)
	top := topoAt([2]float64{250, 0}, [2]float64{900, 0})

	model := flatLossModel{lossDb: 120, failX: 250}
	m := sys.EvaluateCoverageDb(model, top, vlib.Location3D{})

	// The failing link takes the substitute loss, which underflows to
	// zero received power, and serving moves to the healthy station.
	assert.Equal(t, 0.0, m.StationRxPowerW[0])
	assert.Equal(t, 1, m.BestStationID)
	assert.Equal(t, m.StationRxPowerW[1], m.BestRxPowerW)
	assert.Equal(t, m.BestRxPowerW, m.TotalRxPowerW)
	assert.Equal(t, 0.0, m.InterferenceW)
}

func TestEvaluateCoverageDbOtherLoss(t *testing.T) {
	sys := newTestSystem(t)
	top := topoAt([2]float64{0, 0})
	model := flatLossModel{lossDb: 120, failX: math.NaN()}

	base := sys.EvaluateCoverageDb(model, top, vlib.Location3D{})

	sys.OtherLossFn = func(st deployment.Station, user vlib.Location3D) float64 { return 10 }
	lossy := sys.EvaluateCoverageDb(model, top, vlib.Location3D{})

	// 10 dB extra link loss scales every received power by exactly 0.1.
	assert.InEpsilon(t, 0.1*base.TotalRxPowerW, lossy.TotalRxPowerW, 1e-12)
	assert.InEpsilon(t, 0.1*base.FluxWm2, lossy.FluxWm2, 1e-12)
}
