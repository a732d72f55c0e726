package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AppConfig holds the Monte Carlo sweep parameters.
type AppConfig struct {
	NTrials      int
	NStations    int
	SigmaPx      float64
	MetersPerPx  float64
	HeightM      float64
	MaxUserDistM float64
	NSteps       int
	Seed         int64
	CoverageThDb float64
	OutFile      string
}

// ReadAppConfig loads verify.{yaml,json,toml} from the working
// directory when present; every parameter has a default so the driver
// runs without any file.
func ReadAppConfig() AppConfig {
	viper.AddConfigPath(".")
	viper.SetConfigName("verify")

	viper.SetDefault("NTrials", 200)
	viper.SetDefault("NStations", 75)
	viper.SetDefault("SigmaPx", 60.0)
	viper.SetDefault("MetersPerPx", 20.0)
	viper.SetDefault("HeightM", 33.0)
	viper.SetDefault("MaxUserDistM", 4000.0)
	viper.SetDefault("NSteps", 50)
	viper.SetDefault("Seed", 0)
	viper.SetDefault("CoverageThDb", -3.0)
	viper.SetDefault("OutFile", "verify.csv")

	if err := viper.ReadInConfig(); err != nil {
		log.Infof("no config file found, using defaults (%v)", err)
	}

	var cfg AppConfig
	cfg.NTrials = viper.GetInt("NTrials")
	cfg.NStations = viper.GetInt("NStations")
	cfg.SigmaPx = viper.GetFloat64("SigmaPx")
	cfg.MetersPerPx = viper.GetFloat64("MetersPerPx")
	cfg.HeightM = viper.GetFloat64("HeightM")
	cfg.MaxUserDistM = viper.GetFloat64("MaxUserDistM")
	cfg.NSteps = viper.GetInt("NSteps")
	cfg.Seed = viper.GetInt64("Seed")
	cfg.CoverageThDb = viper.GetFloat64("CoverageThDb")
	cfg.OutFile = viper.GetString("OutFile")
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func (c AppConfig) validate() error {
	if c.NTrials < 1 {
		return fmt.Errorf("NTrials must be at least 1, got %d", c.NTrials)
	}
	// The sweep places NSteps user positions from 0 to MaxUserDistM
	// inclusive, so the step divisor is NSteps-1.
	if c.NSteps < 2 {
		return fmt.Errorf("NSteps must be at least 2, got %d", c.NSteps)
	}
	if c.MaxUserDistM <= 0 {
		return fmt.Errorf("MaxUserDistM must be positive, got %v", c.MaxUserDistM)
	}
	return nil
}
