package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	bingo "github.com/Geovannisz/LayoutGeneratorBINGO-sub000"
)

// ReadAppConfig reads the analysis parameters for the app.
func ReadAppConfig() {
	viper.AddConfigPath(indir)
	viper.SetConfigName("config")

	err := viper.ReadInConfig()
	if err != nil {
		log.Print("ReadInConfig ", err)
	}
	// Set all the default values
	{
		viper.SetDefault("FreqGHz", bingo.DefaultFreqGHz)
		viper.SetDefault("UsePowerIntensity", true)
		viper.SetDefault("SLLConeDeg", 10.0)
		viper.SetDefault("EEPercentage", 50.0)
		viper.SetDefault("Workers", 0)
	}

	// Load from the external configuration files
	settings.FreqGHz = viper.GetFloat64("FreqGHz")
	settings.UsePowerIntensity = viper.GetBool("UsePowerIntensity")
	settings.SLLConeDeg = viper.GetFloat64("SLLConeDeg")
	settings.EEPercentage = viper.GetFloat64("EEPercentage")
	settings.Workers = viper.GetInt("Workers")

	log.Println(viper.AllSettings())
}
