package models

// Measure identifies one numeric column of the station export.
type Measure int

const (
	TempIns Measure = iota
	TempMax
	TempMin
	HumidityIns
	HumidityMax
	HumidityMin
	PressureIns
	PressureMax
	PressureMin
	WindSpeed
	WindDir
	WindGust
	Radiation
	Rain
)

// Measures lists every numeric column in file order.
var Measures = []Measure{
	TempIns, TempMax, TempMin,
	HumidityIns, HumidityMax, HumidityMin,
	PressureIns, PressureMax, PressureMin,
	WindSpeed, WindDir, WindGust,
	Radiation, Rain,
}

var measureColumns = [...]string{
	TempIns:     "Temp. Ins. (C)",
	TempMax:     "Temp. Max. (C)",
	TempMin:     "Temp. Min. (C)",
	HumidityIns: "Umi. Ins. (%)",
	HumidityMax: "Umi. Max. (%)",
	HumidityMin: "Umi. Min. (%)",
	PressureIns: "Pressao Ins. (hPa)",
	PressureMax: "Pressao Max. (hPa)",
	PressureMin: "Pressao Min. (hPa)",
	WindSpeed:   "Vel. Vento (m/s)",
	WindDir:     "Dir. Vento (m/s)", // sic, INMET labels direction with the speed unit
	WindGust:    "Raj. Vento (m/s)",
	Radiation:   "Radiacao (KJ/m²)",
	Rain:        "Chuva (mm)",
}

// Column returns the CSV header for the measure.
func (m Measure) Column() string {
	if m < 0 || int(m) >= len(measureColumns) {
		return ""
	}
	return measureColumns[m]
}

func (m Measure) String() string { return m.Column() }

// Fixed column names for the date and time fields, and the derived columns
// appended to the table projection.
const (
	ColumnDate      = "Data"
	ColumnTime      = "Hora (UTC)"
	ColumnDatetime  = "Datetime"
	ColumnMonth     = "Mes"
	ColumnMonthName = "Mes_nome"
)

var monthNames = [12]string{
	"Janeiro",
	"Fevereiro",
	"Março",
	"Abril",
	"Maio",
	"Junho",
	"Julho",
	"Agosto",
	"Setembro",
	"Outubro",
	"Novembro",
	"Dezembro",
}

// MonthName maps a month number (1-12) to its Portuguese name.
func MonthName(month int) (string, bool) {
	if month < 1 || month > 12 {
		return "", false
	}
	return monthNames[month-1], true
}

// MonthNumber is the inverse of MonthName.
func MonthNumber(name string) (int, bool) {
	for i, n := range monthNames {
		if n == name {
			return i + 1, true
		}
	}
	return 0, false
}

// Selection is the month filter chosen in the dashboard: AllMonths or one
// month name. Anything else matches no rows.
type Selection string

// AllMonths is the dropdown sentinel that selects every row.
const AllMonths Selection = "Todos"

// IsAll reports whether the selection covers the whole dataset. The
// English "all" and an empty value are accepted as aliases.
func (s Selection) IsAll() bool {
	return s == AllMonths || s == "all" || s == ""
}

func (s Selection) String() string {
	if s == "" {
		return string(AllMonths)
	}
	return string(s)
}
