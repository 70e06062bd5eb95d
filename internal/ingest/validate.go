package ingest

import (
	"github.com/lox/inmetdash/internal/models"
)

const (
	FlagTempOutOfRange     = "temp_out_of_range"
	FlagHumidityInvalid    = "humidity_invalid"
	FlagWindDirInvalid     = "wind_dir_invalid"
	FlagWindSpeedUnlikely  = "wind_speed_unlikely"
	FlagPressureOutOfRange = "pressure_out_of_range"
	FlagRadiationNegative  = "radiation_negative"
	FlagRainNegative       = "rain_negative"
)

// ValidateObservation returns quality flags for implausible readings.
// Flagged rows are kept; the flags only feed logs and metrics.
func ValidateObservation(obs *models.Observation) []string {
	var flags []string

	if obs.TempIns.Valid {
		if obs.TempIns.Float64 < -10 || obs.TempIns.Float64 > 50 {
			flags = append(flags, FlagTempOutOfRange)
		}
	}

	if obs.HumidityIns.Valid {
		if obs.HumidityIns.Float64 < 0 || obs.HumidityIns.Float64 > 100 {
			flags = append(flags, FlagHumidityInvalid)
		}
	}

	if obs.WindDir < 0 || obs.WindDir > 360 {
		flags = append(flags, FlagWindDirInvalid)
	}

	// m/s; anything past hurricane force at a surface station is a sensor fault
	if obs.WindSpeed < 0 || obs.WindSpeed > 60 {
		flags = append(flags, FlagWindSpeedUnlikely)
	}

	// station-level pressure, so high-altitude sites sit well below 1000 hPa
	if obs.PressureIns.Valid {
		if obs.PressureIns.Float64 < 700 || obs.PressureIns.Float64 > 1100 {
			flags = append(flags, FlagPressureOutOfRange)
		}
	}

	if obs.Radiation.Valid && obs.Radiation.Float64 < 0 {
		flags = append(flags, FlagRadiationNegative)
	}

	if obs.Rain.Valid && obs.Rain.Float64 < 0 {
		flags = append(flags, FlagRainNegative)
	}

	return flags
}
