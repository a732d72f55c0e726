package emfsim

import (
	"math"

	log "github.com/sirupsen/logrus"
	CM "github.com/wiless/channelmodel"
	"github.com/wiless/emfsim/deployment"
	"github.com/wiless/emfsim/pathloss"
	"github.com/wiless/vlib"
)

// DEFAULTERR_PL is the loss substituted when an external path-loss
// model fails for a link.
var DEFAULTERR_PL float64 = 999999

// epsW stabilises the SINR denominator when a user is so far from the
// cluster that interference and noise are both negligible.
const epsW = 1e-20

// WSystem evaluates coverage metrics for one wireless system. The
// zero value is not usable; build it with NewWSystem.
type WSystem struct {
	Phy PhyConfig
	PL  pathloss.KappaModel

	// OtherLossFn, when set, adds an extra per-link loss in dB on top
	// of the propagation model (body loss, indoor penetration, ...).
	OtherLossFn func(st deployment.Station, user vlib.Location3D) float64
}

// NewWSystem validates the configuration and derives the power-law
// model from it.
func NewWSystem(phy PhyConfig) (WSystem, error) {
	if err := phy.Validate(); err != nil {
		return WSystem{}, err
	}
	pl, err := pathloss.NewKappaModel(phy.FcHz, phy.AlphaPL, phy.BSHeightM)
	if err != nil {
		return WSystem{}, err
	}
	return WSystem{Phy: phy, PL: pl}, nil
}

// EvaluateCoverage computes the coverage metric at user in one pass
// over all stations: per-station received power, aggregate and
// strongest power, serving station (first station wins on an exact
// power tie), interference, SINR and flux density.
//
// A nil or empty topology yields the degenerate zero result described
// on CoverageMetric.
func (w WSystem) EvaluateCoverage(top *deployment.Topology, user vlib.Location3D) CoverageMetric {
	var m CoverageMetric
	m.User = user
	m.BestStationID = -1

	n := 0
	if top != nil {
		n = len(top.Stations)
	}
	m.StationIDs = vlib.NewVectorI(n)
	m.StationRxPowerW = vlib.NewVectorF(n)

	txW := w.Phy.TxPowerW()
	for i := 0; i < n; i++ {
		st := top.Stations[i]
		prW := w.PL.ReceivedPowerW(txW, st.Location.Distance2DFrom(user))
		if w.OtherLossFn != nil {
			prW *= vlib.InvDb(-w.OtherLossFn(st, user))
		}
		m.StationIDs[i] = st.ID
		m.StationRxPowerW[i] = prW
		m.TotalRxPowerW += prW
		if prW > m.BestRxPowerW {
			m.BestRxPowerW = prW
			m.BestStationID = st.ID
		}
	}

	w.deriveAggregates(&m)
	return m
}

// EvaluateCoverageDb computes the same metric with an external
// dB-domain channel model (3GPP RMa/UMa and friends) in place of the
// built-in power law, for cross-model exposure comparison.
func (w WSystem) EvaluateCoverageDb(model CM.PLModel, top *deployment.Topology, user vlib.Location3D) CoverageMetric {
	var m CoverageMetric
	m.User = user
	m.BestStationID = -1

	n := 0
	if top != nil {
		n = len(top.Stations)
	}
	m.StationIDs = vlib.NewVectorI(n)
	m.StationRxPowerW = vlib.NewVectorF(n)

	fGHz := w.Phy.FcHz / 1.0e9
	if n > 0 && !model.IsSupported(fGHz) {
		log.Warnf("path-loss model does not support %3.2f GHz", fGHz)
	}
	for i := 0; i < n; i++ {
		st := top.Stations[i]
		plDb, _, plerr := model.PLbetween(st.Location, user)
		if plerr != nil {
			log.Warnf("PathLoss Error : %v, setting to FIXED %v", plerr, DEFAULTERR_PL)
			plDb = DEFAULTERR_PL
		}
		if w.OtherLossFn != nil {
			plDb += w.OtherLossFn(st, user)
		}
		rxDbm := w.Phy.TxPowerDBm - plDb
		prW := vlib.InvDb(rxDbm - 30)

		m.StationIDs[i] = st.ID
		m.StationRxPowerW[i] = prW
		m.TotalRxPowerW += prW
		if prW > m.BestRxPowerW {
			m.BestRxPowerW = prW
			m.BestStationID = st.ID
		}
	}

	w.deriveAggregates(&m)
	return m
}

// deriveAggregates fills the post-pass quantities. Interference is
// total minus strongest, never negative since the strongest power is
// one addend of the total.
func (w WSystem) deriveAggregates(m *CoverageMetric) {
	m.InterferenceW = m.TotalRxPowerW - m.BestRxPowerW
	m.SINRLinear = m.BestRxPowerW / (m.InterferenceW + w.Phy.NoiseFloorW() + epsW)
	if m.SINRLinear > 0 {
		m.SINRDb = vlib.Db(m.SINRLinear)
	} else {
		m.SINRDb = math.Inf(-1)
	}
	// Equation-8 style conversion: exposure is cumulative over every
	// emitter, so the flux uses the total received power.
	m.FluxWm2 = w.PL.Kappa / (4.0 * math.Pi) * m.TotalRxPowerW
}
