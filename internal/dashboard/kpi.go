package dashboard

import (
	"strconv"
	"strings"

	"github.com/lox/inmetdash/internal/models"
)

// NoData is shown in place of a KPI whose mean is undefined.
const NoData = "--"

// KPI is one summary scalar. Value is rounded to Decimals places and only
// meaningful when Valid is set.
type KPI struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	Value    float64 `json:"value"`
	Valid    bool    `json:"valid"`
	Decimals int     `json:"decimals"`
	Text     string  `json:"text"`
}

type kpiSpec struct {
	id       string
	label    string
	measure  models.Measure
	unit     string
	decimals int
}

var kpiSpecs = []kpiSpec{
	{"kpi-vento", "Velocidade Média", models.WindSpeed, "m/s", 2},
	{"kpi-temp", "Temperatura Média", models.TempIns, "°C", 1},
	{"kpi-umi", "Umidade Média", models.HumidityIns, "%", 1},
	{"kpi-press", "Pressão Média", models.PressureIns, "hPa", 1},
	{"kpi-dir", "Direção Média", models.WindDir, "°", 1},
}

func computeKPIs(rows []models.Observation) []KPI {
	kpis := make([]KPI, 0, len(kpiSpecs))
	for _, spec := range kpiSpecs {
		k := KPI{
			ID:       spec.id,
			Label:    spec.label,
			Unit:     spec.unit,
			Decimals: spec.decimals,
			Text:     NoData,
		}
		if m, ok := meanOf(rows, spec.measure); ok {
			s := formatRounded(m, spec.decimals)
			k.Value, _ = strconv.ParseFloat(s, 64)
			k.Valid = true
			k.Text = s + " " + spec.unit
		}
		kpis = append(kpis, k)
	}
	return kpis
}

// meanOf averages the non-missing values of m.
func meanOf(rows []models.Observation, m models.Measure) (float64, bool) {
	sum, n := 0.0, 0
	for _, o := range rows {
		if v, ok := o.Value(m); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// formatRounded rounds to at most decimals places and prints the shortest
// form that keeps one fractional digit: 3.5, 3.46, 25.0.
func formatRounded(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
