package models

import (
	"database/sql"
	"time"
)

// Observation is one hourly record from an INMET automatic station export.
// Wind speed and direction are always present; rows without them never
// make it past ingest.
type Observation struct {
	ObservedAt time.Time
	Month      int
	MonthName  string

	TempIns     sql.NullFloat64
	TempMax     sql.NullFloat64
	TempMin     sql.NullFloat64
	HumidityIns sql.NullFloat64
	HumidityMax sql.NullFloat64
	HumidityMin sql.NullFloat64
	PressureIns sql.NullFloat64
	PressureMax sql.NullFloat64
	PressureMin sql.NullFloat64
	WindSpeed   float64
	WindDir     float64
	WindGust    sql.NullFloat64
	Radiation   sql.NullFloat64
	Rain        sql.NullFloat64

	// Raw holds the trimmed cell text for every CSV column, keyed by column name.
	Raw map[string]string
}

// Value returns the measurement for m, or false when the cell was empty.
func (o Observation) Value(m Measure) (float64, bool) {
	var v sql.NullFloat64
	switch m {
	case TempIns:
		v = o.TempIns
	case TempMax:
		v = o.TempMax
	case TempMin:
		v = o.TempMin
	case HumidityIns:
		v = o.HumidityIns
	case HumidityMax:
		v = o.HumidityMax
	case HumidityMin:
		v = o.HumidityMin
	case PressureIns:
		v = o.PressureIns
	case PressureMax:
		v = o.PressureMax
	case PressureMin:
		v = o.PressureMin
	case WindSpeed:
		return o.WindSpeed, true
	case WindDir:
		return o.WindDir, true
	case WindGust:
		v = o.WindGust
	case Radiation:
		v = o.Radiation
	case Rain:
		v = o.Rain
	}
	return v.Float64, v.Valid
}

// SetValue stores a parsed measurement. Wind speed and direction ignore
// invalid values; callers drop those rows instead.
func (o *Observation) SetValue(m Measure, v sql.NullFloat64) {
	switch m {
	case TempIns:
		o.TempIns = v
	case TempMax:
		o.TempMax = v
	case TempMin:
		o.TempMin = v
	case HumidityIns:
		o.HumidityIns = v
	case HumidityMax:
		o.HumidityMax = v
	case HumidityMin:
		o.HumidityMin = v
	case PressureIns:
		o.PressureIns = v
	case PressureMax:
		o.PressureMax = v
	case PressureMin:
		o.PressureMin = v
	case WindSpeed:
		o.WindSpeed = v.Float64
	case WindDir:
		o.WindDir = v.Float64
	case WindGust:
		o.WindGust = v
	case Radiation:
		o.Radiation = v
	case Rain:
		o.Rain = v
	}
}

// MonthlyAggregate holds per-month means over the whole dataset.
type MonthlyAggregate struct {
	Month       int
	MonthName   string
	WindSpeed   float64
	Temperature sql.NullFloat64
	Humidity    sql.NullFloat64
	Count       int
}
