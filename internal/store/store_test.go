package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lox/inmetdash/internal/ingest"
	"github.com/lox/inmetdash/internal/models"
)

func observation(t *testing.T, month int, day int, wind float64, temp, hum sql.NullFloat64) models.Observation {
	t.Helper()
	name, ok := models.MonthName(month)
	if !ok {
		t.Fatalf("bad month %d", month)
	}
	return models.Observation{
		ObservedAt:  time.Date(2025, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Month:       month,
		MonthName:   name,
		WindSpeed:   wind,
		WindDir:     180,
		TempIns:     temp,
		HumidityIns: hum,
	}
}

func some(f float64) sql.NullFloat64 { return sql.NullFloat64{Float64: f, Valid: true} }

func setupTestStore(t *testing.T) *ObservationStore {
	t.Helper()
	return New(&ingest.Dataset{
		Columns: []string{"Data", "Hora (UTC)"},
		Observations: []models.Observation{
			observation(t, 3, 1, 2, some(24), some(80)),
			observation(t, 1, 1, 1, some(30), some(60)),
			observation(t, 1, 2, 3, sql.NullFloat64{}, some(70)),
			observation(t, 3, 2, 4, some(26), sql.NullFloat64{}),
		},
		Stats: ingest.LoadStats{Rows: 5, Kept: 4, Dropped: 1},
	})
}

func TestObservationStore_Filter(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		sel  models.Selection
		want int
	}{
		{models.AllMonths, 4},
		{"all", 4},
		{"", 4},
		{"Janeiro", 2},
		{"Março", 2},
		{"Fevereiro", 0},
		{"Marco", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.sel), func(t *testing.T) {
			got := s.Filter(tt.sel)
			if len(got) != tt.want {
				t.Fatalf("len(Filter(%q)) = %d, want %d", tt.sel, len(got), tt.want)
			}
			for _, o := range got {
				if !tt.sel.IsAll() && o.MonthName != string(tt.sel) {
					t.Errorf("row from %s in %s selection", o.MonthName, tt.sel)
				}
			}
		})
	}
}

func TestObservationStore_Months(t *testing.T) {
	s := setupTestStore(t)
	months := s.Months()
	if len(months) != 2 || months[0] != 1 || months[1] != 3 {
		t.Errorf("Months() = %v, want [1 3]", months)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if s.Stats().Dropped != 1 {
		t.Errorf("Stats().Dropped = %d, want 1", s.Stats().Dropped)
	}
}

func TestAggregate(t *testing.T) {
	s := setupTestStore(t)
	rows := Aggregate(s.All()).Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	jan := rows[0]
	if jan.Month != 1 || jan.MonthName != "Janeiro" {
		t.Errorf("rows[0] = %d/%s, want 1/Janeiro", jan.Month, jan.MonthName)
	}
	if jan.WindSpeed != 2 {
		t.Errorf("Janeiro wind = %v, want 2", jan.WindSpeed)
	}
	if !jan.Temperature.Valid || jan.Temperature.Float64 != 30 {
		t.Errorf("Janeiro temperature = %+v, want 30 (missing skipped)", jan.Temperature)
	}
	if jan.Humidity.Float64 != 65 {
		t.Errorf("Janeiro humidity = %v, want 65", jan.Humidity.Float64)
	}

	mar := rows[1]
	if mar.Temperature.Float64 != 25 || mar.Humidity.Float64 != 80 || mar.Count != 2 {
		t.Errorf("Março = %+v", mar)
	}
}

func TestAggregate_MonthNamesRoundTrip(t *testing.T) {
	var obs []models.Observation
	for m := 1; m <= 12; m++ {
		obs = append(obs, observation(t, m, 10, float64(m), some(20), some(50)))
	}
	for _, row := range Aggregate(obs).Rows() {
		n, ok := models.MonthNumber(row.MonthName)
		if !ok || n != row.Month {
			t.Errorf("MonthNumber(%q) = %d, %v; want %d", row.MonthName, n, ok, row.Month)
		}
	}
}

func TestAggregate_AllMissing(t *testing.T) {
	rows := Aggregate([]models.Observation{
		observation(t, 6, 1, 1, sql.NullFloat64{}, sql.NullFloat64{}),
	}).Rows()
	if rows[0].Temperature.Valid || rows[0].Humidity.Valid {
		t.Errorf("expected invalid means, got %+v", rows[0])
	}
	if len(Aggregate(nil).Rows()) != 0 {
		t.Error("Aggregate(nil) should be empty")
	}
}
