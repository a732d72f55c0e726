// Package deployment generates the base-station topology of one
// simulation run. The primary layout is a clustered Gaussian drop
// approximating an inhomogeneous city-centre deployment; the classic
// circular, rectangular and annular drops are kept for drivers and
// tests that need a reference layout.
package deployment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
)

// ErrInvalidConfig is wrapped by every topology configuration failure.
var ErrInvalidConfig = errors.New("deployment: invalid topology config")

// Station is one base station. Positions are in metres and immutable
// after Generate; per-query received powers travel in the coverage
// result, never in the station.
type Station struct {
	ID       int
	Location vlib.Location3D
}

// GenParams configures a clustered Gaussian drop. Centre and SigmaPx
// are in display units; MetersPerPx scales both axes into metres.
type GenParams struct {
	NCount      int
	Centre      vlib.Location3D
	SigmaPx     float64
	MetersPerPx float64
	HeightM     float64
}

// DefaultGenParams is the urban-cluster parameter set: 75 stations,
// 60 px spread at 20 m per display unit (1200 m), 33 m masts.
func DefaultGenParams() GenParams {
	return GenParams{NCount: 75, SigmaPx: 60, MetersPerPx: 20, HeightM: 33}
}

// SigmaMeters is the cluster spread in metres.
func (p GenParams) SigmaMeters() float64 { return p.SigmaPx * p.MetersPerPx }

func (p GenParams) validate() error {
	if p.NCount <= 0 {
		return fmt.Errorf("%w: NCount %d", ErrInvalidConfig, p.NCount)
	}
	if p.SigmaPx <= 0 {
		return fmt.Errorf("%w: SigmaPx %v", ErrInvalidConfig, p.SigmaPx)
	}
	if p.MetersPerPx <= 0 {
		return fmt.Errorf("%w: MetersPerPx %v", ErrInvalidConfig, p.MetersPerPx)
	}
	if p.HeightM <= 0 {
		return fmt.Errorf("%w: HeightM %v", ErrInvalidConfig, p.HeightM)
	}
	return nil
}

// Topology owns the station set of one run. Stations are created once
// and never mutated afterwards, so a single Topology may serve
// concurrent coverage queries.
type Topology struct {
	Params   GenParams
	Stations []Station
}

// Generate draws NCount positions from a circularly symmetric Gaussian
// centred at Centre and scales them into metres. Gaussian tails may
// place stations arbitrarily far out; no extent clamp is applied.
func Generate(p GenParams, rnd *rand.Rand) (*Topology, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	points := GaussianPoints(p.Centre.Cmplx(), p.SigmaPx, p.NCount, rnd)
	points = points.ScaleC(complex(p.MetersPerPx, 0))

	top := &Topology{Params: p, Stations: make([]Station, p.NCount)}
	for i, pos := range points {
		st := &top.Stations[i]
		st.ID = i
		st.Location.SetXY(real(pos), imag(pos))
		st.Location.SetHeight(p.HeightM)
	}
	log.Debugf("deployed %d stations, spread %.0f m", p.NCount, p.SigmaMeters())
	return top, nil
}

// GenerateAuto is Generate with a wall-clock seed, for callers that do
// not need reproducibility.
func GenerateAuto(p GenParams) (*Topology, error) {
	return Generate(p, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Locations returns the planar station positions in metres.
func (t *Topology) Locations() vlib.VectorC {
	result := vlib.NewVectorC(len(t.Stations))
	for i, st := range t.Stations {
		result[i] = st.Location.Cmplx()
	}
	return result
}

// Locations3D returns the station positions including mast height.
func (t *Topology) Locations3D() []vlib.Location3D {
	result := make([]vlib.Location3D, len(t.Stations))
	for i, st := range t.Stations {
		result[i] = st.Location
	}
	return result
}

// StationIDs returns the station identifiers in deployment order.
func (t *Topology) StationIDs() vlib.VectorI {
	result := vlib.NewVectorI(len(t.Stations))
	for i, st := range t.Stations {
		result[i] = st.ID
	}
	return result
}

// UnmarshalJSON decodes through an untyped map so snapshots written by
// loosely typed front ends (float station IDs etc.) still load.
func (t *Topology) UnmarshalJSON(jsondata []byte) error {
	dec := json.NewDecoder(bytes.NewBuffer(jsondata))
	customobject := make(map[string]interface{})
	if err := dec.Decode(&customobject); err != nil {
		return err
	}
	if err := ms.Decode(customobject["Params"], &t.Params); err != nil {
		return err
	}
	var stations []Station
	if err := ms.Decode(customobject["Stations"], &stations); err != nil {
		return err
	}
	t.Stations = stations
	return nil
}

type DropType int

var DropTypes = [...]string{
	"Gaussian",
	"Circular",
	"Rectangular",
	"Annular",
}

func (c DropType) String() string {
	if int(c) >= len(DropTypes) {
		return "Unknown-DropType"
	}
	return DropTypes[c]
}

const (
	Gaussian DropType = iota
	Circular
	Rectangular
	Annular
)

const ORIGIN = complex(0, 0)

// DropParameter describes one point drop for the generic Drop entry.
type DropParameter struct {
	Centre vlib.Location3D
	Type   DropType

	// Radius in the drop's own units; outer radius for Annular,
	// side length for Rectangular, sigma for Gaussian.
	Radius      float64 `json:"radius"`
	InnerRadius float64

	RotationDegree float64

	NCount int
}

// Drop dispatches a DropParameter to the matching point generator.
func (d DropParameter) Drop(rnd *rand.Rand) (vlib.VectorC, error) {
	if d.NCount <= 0 {
		return nil, fmt.Errorf("%w: NCount %d", ErrInvalidConfig, d.NCount)
	}
	switch d.Type {
	case Gaussian:
		return GaussianPoints(d.Centre.Cmplx(), d.Radius, d.NCount, rnd), nil
	case Circular:
		return CircularPoints(d.Centre.Cmplx(), d.Radius, d.NCount, rnd), nil
	case Rectangular:
		return RectangularNPoints(d.Centre.Cmplx(), d.Radius, d.Radius, d.RotationDegree, d.NCount, rnd), nil
	case Annular:
		return AnnularRingPoints(d.Centre.Cmplx(), d.InnerRadius, d.Radius, d.NCount, rnd), nil
	default:
		return nil, fmt.Errorf("%w: unknown DropType %d", ErrInvalidConfig, int(d.Type))
	}
}

// GaussianPoints draws N points with independent N(0,sigma^2) offsets
// per axis around centre.
func GaussianPoints(centre complex128, sigma float64, N int, rnd *rand.Rand) vlib.VectorC {
	result := vlib.NewVectorC(N)
	for i := 0; i < N; i++ {
		result[i] = complex(rnd.NormFloat64()*sigma, rnd.NormFloat64()*sigma) + centre
	}
	return result
}

// RandPoint returns one point uniformly distributed on the disc.
func RandPoint(centre complex128, radius float64, rnd *rand.Rand) complex128 {
	r := math.Sqrt(rnd.Float64()) * radius
	theta := rnd.Float64() * 360

	point := complex(r, 0) * vlib.GetEJtheta(theta)
	return point + centre
}

func CircularPoints(centre complex128, radius float64, N int, rnd *rand.Rand) vlib.VectorC {
	result := vlib.NewVectorC(N)
	for i := 0; i < N; i++ {
		result[i] = RandPoint(centre, radius, rnd)
	}
	return result
}

// AnnularPoint returns one point uniformly distributed on the ring
// between innerRadius and outerRadius.
func AnnularPoint(centre complex128, innerRadius, outerRadius float64, rnd *rand.Rand) complex128 {
	if outerRadius < innerRadius {
		innerRadius, outerRadius = outerRadius, innerRadius
	}
	span := math.Pow(outerRadius, 2) - math.Pow(innerRadius, 2)
	r := math.Sqrt(rnd.Float64()*span + math.Pow(innerRadius, 2))
	theta := rnd.Float64() * 360

	point := complex(r, 0) * vlib.GetEJtheta(theta)
	return point + centre
}

func AnnularRingPoints(centre complex128, innerRadius, outerRadius float64, N int, rnd *rand.Rand) vlib.VectorC {
	result := vlib.NewVectorC(N)
	for i := 0; i < N; i++ {
		result[i] = AnnularPoint(centre, innerRadius, outerRadius, rnd)
	}
	return result
}

func RectangularPoint(centre complex128, width, height, angleInDegree float64, rnd *rand.Rand) complex128 {
	dx := rnd.Float64()*width - width/2.0
	dy := rnd.Float64()*height - height/2.0
	// Rotate the offset about the rectangle's own centre, then place.
	return complex(dx, dy)*vlib.GetEJtheta(angleInDegree) + centre
}

func RectangularNPoints(centre complex128, width, height, angleInDegree float64, N int, rnd *rand.Rand) vlib.VectorC {
	result := vlib.NewVectorC(N)
	for i := 0; i < N; i++ {
		result[i] = RectangularPoint(centre, width, height, angleInDegree, rnd)
	}
	return result
}
