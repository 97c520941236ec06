// Package bingo ties the layout, element pattern, and analysis packages
// into an interactive station designer: generate a tile layout, expand
// it to antenna positions, and evaluate the resulting beam pattern.
package bingo

import (
	"encoding/json"
	"math"

	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
)

// SpeedOfLight in meters per second.
const SpeedOfLight = 299792458.0

// DefaultFreqGHz is the nominal operating frequency.
const DefaultFreqGHz = 1.0

// Lambda returns the wavelength in meters at freqGHz.
func Lambda(freqGHz float64) float64 {
	return SpeedOfLight / (freqGHz * 1e9)
}

// WaveNumber returns k = 2*pi/lambda at freqGHz.
func WaveNumber(freqGHz float64) float64 {
	return 2 * math.Pi / Lambda(freqGHz)
}

// Settings holds the analysis parameters.
type Settings struct {
	FreqGHz           float64 `json:"freqGHz" mapstructure:"freqGHz"`
	UsePowerIntensity bool    `json:"usePowerIntensity" mapstructure:"usePowerIntensity"`
	SLLConeDeg        float64 `json:"sllConeDeg" mapstructure:"sllConeDeg"`
	EEPercentage      float64 `json:"eePercentage" mapstructure:"eePercentage"`
	Workers           int     `json:"workers" mapstructure:"workers"`
}

func (s *Settings) SetDefault() {
	s.FreqGHz = DefaultFreqGHz
	s.UsePowerIntensity = true
	s.SLLConeDeg = 10
	s.EEPercentage = 50
	s.Workers = 0
}

func NewSettings() *Settings {
	result := new(Settings)
	result.SetDefault()
	return result
}

// Set overrides fields from a JSON string.
func (s *Settings) Set(str string) {
	err := json.Unmarshal([]byte(str), s)
	if err != nil {
		log.Print("Error ", err)
	}
}

// FromMap overrides fields from a generic map, typically a decoded
// config section.
func (s *Settings) FromMap(m map[string]interface{}) error {
	return ms.Decode(m, s)
}

// WaveNumber returns k for the configured frequency.
func (s Settings) WaveNumber() float64 {
	return WaveNumber(s.FreqGHz)
}
