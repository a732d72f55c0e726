// Package emfsim models downlink coverage and electromagnetic-field
// exposure over a clustered base-station deployment. One coverage
// query walks every station once and derives the serving station,
// SINR and the cumulative flux density at the queried position.
package emfsim

import (
	"github.com/wiless/vlib"
)

// CoverageMetric is the outcome of one coverage query at a single user
// position. It carries the per-station received powers out-of-band so
// stations themselves stay immutable between queries.
//
// For an empty station set every power is zero, SINRLinear is 0 and
// SINRDb is -Inf; that is the documented degenerate result, not an
// error.
type CoverageMetric struct {
	User vlib.Location3D

	StationIDs      vlib.VectorI
	StationRxPowerW vlib.VectorF

	TotalRxPowerW float64
	BestRxPowerW  float64
	BestStationID int // -1 when no station was evaluated
	InterferenceW float64
	SINRLinear    float64
	SINRDb        float64
	FluxWm2       float64
}

// RxPowerOf returns the received power from station id at the queried
// position, and whether the station was part of the query.
func (c CoverageMetric) RxPowerOf(id int) (float64, bool) {
	for i, sid := range c.StationIDs {
		if sid == id {
			return c.StationRxPowerW[i], true
		}
	}
	return 0, false
}

// Covered reports whether the position clears the given SINR threshold
// in dB.
func (c CoverageMetric) Covered(thresholdDb float64) bool {
	return c.SINRDb > thresholdDb
}

// DisplayPoint is a pointer position in renderer/display units. It is
// a distinct type from the physical metre coordinates on purpose; the
// conversion happens once, at the presentation boundary.
type DisplayPoint struct {
	X, Y float64
}

// ToPhysical scales the display position into metres.
func (p DisplayPoint) ToPhysical(metersPerUnit float64) vlib.Location3D {
	var loc vlib.Location3D
	loc.SetXY(p.X*metersPerUnit, p.Y*metersPerUnit)
	return loc
}
