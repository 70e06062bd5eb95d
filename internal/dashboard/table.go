package dashboard

import (
	"strconv"

	"github.com/lox/inmetdash/internal/models"
)

const datetimeLayout = "2006-01-02 15:04:05"

// Table is the row-oriented projection of the filtered observations. Cells
// are display strings aligned with Columns; missing measurements are empty.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Records returns one map per row keyed by column name.
func (t Table) Records() []map[string]string {
	out := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for j, col := range t.Columns {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

var measureByColumn = func() map[string]models.Measure {
	m := make(map[string]models.Measure, len(models.Measures))
	for _, measure := range models.Measures {
		m[measure.Column()] = measure
	}
	return m
}()

func projectTable(columns []string, rows []models.Observation) Table {
	t := Table{
		Columns: make([]string, 0, len(columns)+3),
		Rows:    make([][]string, 0, len(rows)),
	}
	t.Columns = append(t.Columns, columns...)
	t.Columns = append(t.Columns, models.ColumnDatetime, models.ColumnMonth, models.ColumnMonthName)

	for _, o := range rows {
		row := make([]string, 0, len(t.Columns))
		for _, col := range columns {
			if m, ok := measureByColumn[col]; ok {
				if v, ok := o.Value(m); ok {
					row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
				} else {
					row = append(row, "")
				}
				continue
			}
			row = append(row, o.Raw[col])
		}
		row = append(row,
			o.ObservedAt.Format(datetimeLayout),
			strconv.Itoa(o.Month),
			o.MonthName,
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}
