// Monte Carlo verification driver: sweeps a user from the cluster
// centre outwards and checks the empirical coverage and exposure
// statistics of repeated topology draws.
package main

import (
	"math/rand"
	"os"

	"github.com/fatih/color"
	"github.com/jszwec/csvutil"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/d3"
	"github.com/wiless/emfsim"
	"github.com/wiless/emfsim/deployment"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/stat"
)

// SweepRecord is one row of the verification CSV: the summary
// statistics of NTrials independent topology draws at one user
// distance from the cluster centre.
type SweepRecord struct {
	UserDistM    float64 `csv:"userdist_m"`
	MeanFluxWm2  float64 `csv:"mean_flux_wm2"`
	VarFluxWm2   float64 `csv:"var_flux_wm2"`
	MeanSINRDb   float64 `csv:"mean_sinr_db"`
	VarSINRDb    float64 `csv:"var_sinr_db"`
	CoverageProb float64 `csv:"coverage_prob"`
}

func main() {
	cfg := ReadAppConfig()

	phy := emfsim.DefaultPhyConfig()
	sys, err := emfsim.NewWSystem(phy)
	if err != nil {
		log.Fatal(err)
	}

	gp := deployment.DefaultGenParams()
	gp.NCount = cfg.NStations
	gp.SigmaPx = cfg.SigmaPx
	gp.MetersPerPx = cfg.MetersPerPx
	gp.HeightM = cfg.HeightM

	log.Infof("Physics Config: F=%.4f GHz, Pt=%.0f W, Noise=%.2f dBm",
		phy.FcHz/1e9, phy.TxPowerW(), phy.NoiseFloorDBm)
	log.Infof("Topology: %d stations, spread %.0f m, %d trials per step",
		gp.NCount, gp.SigmaMeters(), cfg.NTrials)

	records := make([]SweepRecord, 0, cfg.NSteps)
	bar := progressbar.Default(int64(cfg.NSteps*cfg.NTrials), "Monte Carlo")

	step := cfg.MaxUserDistM / float64(cfg.NSteps-1)
	trial := int64(0)
	for s := 0; s < cfg.NSteps; s++ {
		userdist := float64(s) * step
		var user vlib.Location3D
		user.SetXY(userdist, 0)

		flux := make([]float64, cfg.NTrials)
		sinrDb := make([]float64, cfg.NTrials)
		covered := 0
		for t := 0; t < cfg.NTrials; t++ {
			rnd := rand.New(rand.NewSource(cfg.Seed + trial))
			trial++

			top, err := deployment.Generate(gp, rnd)
			if err != nil {
				log.Fatal(err)
			}
			m := sys.EvaluateCoverage(top, user)
			flux[t] = m.FluxWm2
			sinrDb[t] = m.SINRDb
			if m.Covered(cfg.CoverageThDb) {
				covered++
			}
			bar.Add(1)
		}

		records = append(records, SweepRecord{
			UserDistM:    userdist,
			MeanFluxWm2:  stat.Mean(flux, nil),
			VarFluxWm2:   stat.Variance(flux, nil),
			MeanSINRDb:   stat.Mean(sinrDb, nil),
			VarSINRDb:    stat.Variance(sinrDb, nil),
			CoverageProb: float64(covered) / float64(cfg.NTrials),
		})
	}

	buf, err := csvutil.Marshal(records)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(cfg.OutFile, buf, 0644); err != nil {
		log.Fatal(err)
	}

	d3.ForEach(records, func(r SweepRecord) {
		log.Debugf("d=%6.0f m  flux=%.3e W/m2  sinr=%6.2f dB  cov=%.2f",
			r.UserDistM, r.MeanFluxWm2, r.MeanSINRDb, r.CoverageProb)
	})

	first, last := records[0], records[len(records)-1]
	color.Cyan("saved %d sweep rows to %s", len(records), cfg.OutFile)
	color.Green("centre : flux %.3e W/m2, coverage %.2f", first.MeanFluxWm2, first.CoverageProb)
	color.Yellow("edge   : flux %.3e W/m2, coverage %.2f", last.MeanFluxWm2, last.CoverageProb)
}
