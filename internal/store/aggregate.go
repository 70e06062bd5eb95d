package store

import (
	"database/sql"
	"sort"

	"github.com/lox/inmetdash/internal/models"
)

// AggregateView holds per-month means computed once over the full store.
// It never changes with the dashboard's month filter.
type AggregateView struct {
	rows []models.MonthlyAggregate
}

type monthAccumulator struct {
	windSum float64
	windN   int
	tempSum float64
	tempN   int
	humSum  float64
	humN    int
}

// Aggregate groups observations by month number and averages wind speed,
// temperature and humidity. Missing readings are skipped, so a month whose
// temperatures are all empty gets an invalid Temperature.
func Aggregate(obs []models.Observation) *AggregateView {
	acc := make(map[int]*monthAccumulator)
	for _, o := range obs {
		a := acc[o.Month]
		if a == nil {
			a = &monthAccumulator{}
			acc[o.Month] = a
		}
		a.windSum += o.WindSpeed
		a.windN++
		if o.TempIns.Valid {
			a.tempSum += o.TempIns.Float64
			a.tempN++
		}
		if o.HumidityIns.Valid {
			a.humSum += o.HumidityIns.Float64
			a.humN++
		}
	}

	months := make([]int, 0, len(acc))
	for m := range acc {
		months = append(months, m)
	}
	sort.Ints(months)

	view := &AggregateView{rows: make([]models.MonthlyAggregate, 0, len(months))}
	for _, m := range months {
		a := acc[m]
		name, _ := models.MonthName(m)
		view.rows = append(view.rows, models.MonthlyAggregate{
			Month:       m,
			MonthName:   name,
			WindSpeed:   a.windSum / float64(a.windN),
			Temperature: mean(a.tempSum, a.tempN),
			Humidity:    mean(a.humSum, a.humN),
			Count:       a.windN,
		})
	}
	return view
}

// Rows returns the monthly aggregates ordered by month number.
func (v *AggregateView) Rows() []models.MonthlyAggregate {
	return v.rows
}

func mean(sum float64, n int) sql.NullFloat64 {
	if n == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: sum / float64(n), Valid: true}
}
