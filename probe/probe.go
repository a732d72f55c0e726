// Probe driver: evaluates one pointer query the way a renderer would
// and exports the station layout plus per-station powers for drawing.
package main

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/emfsim"
	"github.com/wiless/emfsim/deployment"
	"github.com/wiless/vlib"
)

func main() {
	var seedvalue int64 = 0 // fixed seed for a reproducible layout
	rnd := rand.New(rand.NewSource(seedvalue))

	gp := deployment.DefaultGenParams()
	top, err := deployment.Generate(gp, rnd)
	if err != nil {
		log.Fatal(err)
	}

	sys, err := emfsim.NewWSystem(emfsim.DefaultPhyConfig())
	if err != nil {
		log.Fatal(err)
	}

	// The pointer position arrives in display units; conversion to
	// metres happens here at the boundary, not inside the engine.
	pointer := emfsim.DisplayPoint{X: 40, Y: -25}
	user := pointer.ToPhysical(gp.MetersPerPx)

	m := sys.EvaluateCoverage(top, user)
	serving := top.Locations3D()[m.BestStationID]
	log.Infof("serving station  BS-%d at (%.0f, %.0f) m", m.BestStationID, serving.X, serving.Y)
	log.Infof("SINR             %7.2f dB", m.SINRDb)
	log.Infof("flux density     %.3e W/m2", m.FluxWm2)
	log.Infof("best / total rx  %.3e / %.3e W", m.BestRxPowerW, m.TotalRxPowerW)

	vlib.SaveStructure(top, "topology.json", true)
	vlib.SaveStructure(m, "probe.json", true)
}
