package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() AppConfig {
	return AppConfig{
		NTrials:      200,
		NStations:    75,
		SigmaPx:      60,
		MetersPerPx:  20,
		HeightM:      33,
		MaxUserDistM: 4000,
		NSteps:       50,
		CoverageThDb: -3,
		OutFile:      "verify.csv",
	}
}

func TestAppConfigValidate(t *testing.T) {
	require.NoError(t, defaultTestConfig().validate())

	cases := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"zero trials", func(c *AppConfig) { c.NTrials = 0 }},
		{"zero steps", func(c *AppConfig) { c.NSteps = 0 }},
		{"single step", func(c *AppConfig) { c.NSteps = 1 }},
		{"zero distance", func(c *AppConfig) { c.MaxUserDistM = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			c.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
